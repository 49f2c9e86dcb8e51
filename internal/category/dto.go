package category

// CreateCategoryRequest represents the request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CategoryResponse represents the response for a category
type CategoryResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UserID    *string `json:"user_id,omitempty"`
	Global    bool    `json:"global"`
	CreatedAt string  `json:"created_at"`
}

// ToResponse converts a Category model to a CategoryResponse DTO
func (c *Category) ToResponse() *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		UserID:    c.UserID,
		Global:    c.IsGlobal(),
		CreatedAt: c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
