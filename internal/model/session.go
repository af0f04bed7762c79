package model

// Session is the client-held record of a signed-in user. There is no
// server-verified token; presence of a session is the whole auth state.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
