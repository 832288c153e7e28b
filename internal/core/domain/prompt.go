package domain

import "time"

// Prompt is a submitted topic together with the lesson generated for it.
// It is written once and never updated. Category and SubCategory are only
// filled on history reads.
type Prompt struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	CategoryID    int64     `json:"categoryId"`
	SubCategoryID int64     `json:"subCategoryId"`
	PromptText    string    `json:"promptText"`
	ResponseText  string    `json:"responseText"`
	CreatedAt     time.Time `json:"createdAt"`

	Category    *Category    `json:"category,omitempty"`
	SubCategory *SubCategory `json:"subCategory,omitempty"`
}
