package settlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/divvyhq/divvy/internal/database"
)

// Repository handles settlement data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListForUserInGroup retrieves every settlement in the group that involves the
// user, through the given Querier so it can run inside an open transaction.
// With lock set, rows are taken FOR UPDATE so concurrent reconciliations
// against the same user/group pair serialize instead of losing updates.
func (r *Repository) ListForUserInGroup(ctx context.Context, q database.Querier, userID, groupID string, lock bool) ([]*Settlement, error) {
	query := `
		SELECT id, group_id, sender_id, receiver_id, amount
		FROM settlements
		WHERE group_id = $1 AND (sender_id = $2 OR receiver_id = $2)
	`
	if lock {
		query += ` FOR UPDATE`
	}

	rows, err := q.QueryContext(ctx, query, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	return scanSettlements(rows, false)
}

// ApplyUpsert persists one resolver result through the given Querier. New
// records get a fresh ID; records carrying an ID update that row in place,
// overwriting sender, receiver and amount.
func (r *Repository) ApplyUpsert(ctx context.Context, q database.Querier, up Upsert) error {
	id := up.ID
	if id == "" {
		id = uuid.NewString()
	}

	query := `
		INSERT INTO settlements (id, group_id, sender_id, receiver_id, amount)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET sender_id = EXCLUDED.sender_id,
		    receiver_id = EXCLUDED.receiver_id,
		    amount = EXCLUDED.amount
	`

	if _, err := q.ExecContext(ctx, query, id, up.GroupID, up.SenderID, up.ReceiverID, up.Amount); err != nil {
		return fmt.Errorf("failed to upsert settlement: %w", err)
	}
	return nil
}

// ListByGroup retrieves all settlements in a group with usernames
func (r *Repository) ListByGroup(ctx context.Context, groupID string) ([]*Settlement, error) {
	query := `
		SELECT s.id, s.group_id, s.sender_id, s.receiver_id, s.amount,
		       snd.username, rcv.username
		FROM settlements s
		JOIN users snd ON s.sender_id = snd.id
		JOIN users rcv ON s.receiver_id = rcv.id
		WHERE s.group_id = $1
		ORDER BY s.amount DESC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	return scanSettlements(rows, true)
}

// ListForUser retrieves all settlements involving the user across groups
func (r *Repository) ListForUser(ctx context.Context, userID string) ([]*Settlement, error) {
	query := `
		SELECT s.id, s.group_id, s.sender_id, s.receiver_id, s.amount,
		       snd.username, rcv.username
		FROM settlements s
		JOIN users snd ON s.sender_id = snd.id
		JOIN users rcv ON s.receiver_id = rcv.id
		WHERE s.sender_id = $1 OR s.receiver_id = $1
		ORDER BY s.group_id, s.amount DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	return scanSettlements(rows, true)
}

func scanSettlements(rows *sql.Rows, withUsernames bool) ([]*Settlement, error) {
	var settlements []*Settlement
	for rows.Next() {
		s := &Settlement{}
		var err error
		if withUsernames {
			err = rows.Scan(&s.ID, &s.GroupID, &s.SenderID, &s.ReceiverID, &s.Amount,
				&s.SenderUsername, &s.ReceiverUsername)
		} else {
			err = rows.Scan(&s.ID, &s.GroupID, &s.SenderID, &s.ReceiverID, &s.Amount)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, s)
	}

	return settlements, rows.Err()
}
