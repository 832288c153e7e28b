package domain

// Category is a top-level topic of the lesson taxonomy.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SubCategory belongs to exactly one Category.
type SubCategory struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"categoryId"`
}
