package model

// Source identifies the outlet an article came from.
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article is a single story as the upstream news API reports it.
// Identity is the URL; articles are never mutated after decode.
type Article struct {
	Source      Source `json:"source"`
	Author      string `json:"author,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage,omitempty"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content,omitempty"`
}
