package model

type Category struct {
	BaseModel
	Name         string  `db:"name" json:"name"`
	Description  *string `db:"description" json:"description"`
	ProductCount *int    `db:"product_count" json:"productCount,omitempty"` // List only
}

// CategoryDetail is a category with the products it owns.
type CategoryDetail struct {
	Category
	Products []Product `json:"products"`
}
