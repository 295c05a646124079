package data

// Category defines a book category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
