package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/store"
)

func newSessions(t *testing.T) *SessionService {
	t.Helper()
	return NewSessionService(store.NewGormKV(newTestDB(t)))
}

func TestLoginDerivesNameFromEmail(t *testing.T) {
	svc := newSessions(t)

	session, err := svc.Login("ada@example.com", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "ada", session.Name)
	assert.Equal(t, "ada@example.com", session.Email)
	assert.NotEmpty(t, session.ID)
	assert.True(t, svc.IsAuthenticated())
}

func TestLoginRequiresEmail(t *testing.T) {
	svc := newSessions(t)

	_, err := svc.Login("", "pw")
	require.Error(t, err)
	assert.False(t, svc.IsAuthenticated())
}

func TestSignupUsesChosenName(t *testing.T) {
	svc := newSessions(t)

	session, err := svc.Signup("Ada Lovelace", "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", session.Name)

	current, err := svc.Current()
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, session.ID, current.ID)
}

func TestLogoutClearsOnlySession(t *testing.T) {
	db := newTestDB(t)
	kv := store.NewGormKV(db)
	sessions := NewSessionService(kv)
	favorites := NewFavoritesService(db)
	prefs := NewPrefsService(kv)

	_, err := sessions.Login("ada@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, favorites.Add(sampleArticle(1)))
	require.NoError(t, prefs.Set("newsapp_fontSize", "large"))

	require.NoError(t, sessions.Logout())

	assert.False(t, sessions.IsAuthenticated())
	count, err := favorites.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "logout must not clear favorites")
	size, err := prefs.Get("newsapp_fontSize")
	require.NoError(t, err)
	assert.Equal(t, "large", size, "logout must not clear preferences")
}

func TestCurrentWithoutSession(t *testing.T) {
	svc := newSessions(t)

	session, err := svc.Current()
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.False(t, svc.IsAuthenticated())
}
