package dto

type CreateCategoryInput struct {
	Name        string  `json:"name" validate:"min=2" msg:"Category name must be at least 2 characters"`
	Description *string `json:"description"`
}

// UpdateCategoryInput is a partial update; nil fields are left unchanged.
type UpdateCategoryInput struct {
	ID          string  `json:"-"`
	Name        *string `json:"name" validate:"omitempty,min=2" msg:"Category name must be at least 2 characters"`
	Description *string `json:"description"`
}
