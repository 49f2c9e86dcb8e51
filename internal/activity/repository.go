package activity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles activity data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new activity repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new activity entry
func (r *Repository) Create(ctx context.Context, a *Activity) error {
	query := `
		INSERT INTO activities (id, action, actor_id, target_id, group_id, amount, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		uuid.NewString(), a.Action, a.ActorID, a.TargetID, a.GroupID, a.Amount, a.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// ListByActor retrieves a page of activities performed by a user
func (r *Repository) ListByActor(ctx context.Context, actorID string, limit, offset int) ([]*Activity, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activities WHERE actor_id = $1`, actorID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	query := `
		SELECT id, action, actor_id, target_id, group_id, amount, message, created_at
		FROM activities
		WHERE actor_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, actorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*Activity
	for rows.Next() {
		a := &Activity{}
		if err := rows.Scan(
			&a.ID,
			&a.Action,
			&a.ActorID,
			&a.TargetID,
			&a.GroupID,
			&a.Amount,
			&a.Message,
			&a.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	return activities, total, nil
}
