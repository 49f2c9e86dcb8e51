package category

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles category data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new category repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new category. userID is nil for global categories.
func (r *Repository) Create(ctx context.Context, name string, userID *string) (*Category, error) {
	query := `
		INSERT INTO categories (id, name, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, user_id, created_at
	`

	category := &Category{}
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), name, userID).Scan(
		&category.ID,
		&category.Name,
		&category.UserID,
		&category.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// GetByID retrieves a category by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Category, error) {
	query := `
		SELECT id, name, user_id, created_at
		FROM categories
		WHERE id = $1
	`

	category := &Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.UserID,
		&category.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// ListVisibleToUser retrieves global categories plus the user's own
func (r *Repository) ListVisibleToUser(ctx context.Context, userID string) ([]*Category, error) {
	query := `
		SELECT id, name, user_id, created_at
		FROM categories
		WHERE user_id IS NULL OR user_id = $1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.UserID,
			&category.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, nil
}
