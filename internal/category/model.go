package category

import "time"

// Category represents an expense category. A category with no user ID is
// global and visible to everyone; otherwise it belongs to a single user.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    *string   `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsGlobal reports whether the category is shared by all users.
func (c *Category) IsGlobal() bool {
	return c.UserID == nil
}
