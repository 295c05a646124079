package data

// Author defines a book author.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
