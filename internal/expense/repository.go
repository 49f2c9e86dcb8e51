package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/divvyhq/divvy/internal/database"
	"github.com/divvyhq/divvy/internal/settlement"
)

// Repository handles expense and split persistence, including the
// reconciliation transaction that keeps settlements in step with new
// group expenses.
type Repository struct {
	db          *sql.DB
	settlements *settlement.Repository
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB, settlements *settlement.Repository) *Repository {
	return &Repository{db: db, settlements: settlements}
}

// CreateStandalone inserts a personal expense with no group, splits or
// settlement impact.
func (r *Repository) CreateStandalone(ctx context.Context, payerID string, req *CreateExpenseRequest) (*Expense, error) {
	return insertExpense(ctx, r.db, payerID, req)
}

// CreateWithSplits creates a group expense atomically: the expense row, one
// split row per share, and the settlement upserts the resolver derives from
// them all commit together or not at all. The current settlements for the
// payer in the group are read under row locks inside the same transaction,
// so two concurrent expenses over the same payer/group pair serialize
// instead of losing an update.
func (r *Repository) CreateWithSplits(ctx context.Context, payerID string, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	groupID := *req.GroupID

	var result *ExpenseWithSplits
	err := database.WithinTx(ctx, r.db, func(tx *sql.Tx) error {
		expense, err := insertExpense(ctx, tx, payerID, req)
		if err != nil {
			return err
		}

		splits := make([]*Split, len(req.Splits))
		shares := make([]settlement.Share, len(req.Splits))
		for i, input := range req.Splits {
			split, err := insertSplit(ctx, tx, expense.ID, input)
			if err != nil {
				return err
			}
			splits[i] = split
			shares[i] = settlement.Share{UserID: input.UserID, Amount: input.Amount}
		}

		current, err := r.settlements.ListForUserInGroup(ctx, tx, payerID, groupID, true)
		if err != nil {
			return err
		}

		for _, up := range settlement.Resolve(shares, payerID, groupID, current) {
			if err := r.settlements.ApplyUpsert(ctx, tx, up); err != nil {
				return err
			}
		}

		result = &ExpenseWithSplits{Expense: expense, Splits: splits}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func insertExpense(ctx context.Context, q database.Querier, payerID string, req *CreateExpenseRequest) (*Expense, error) {
	query := `
		INSERT INTO expenses (id, payer_id, group_id, category_id, description, amount, split_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, payer_id, group_id, category_id, description, amount, split_type, created_at, updated_at
	`

	expense := &Expense{}
	err := q.QueryRowContext(ctx, query,
		uuid.NewString(),
		payerID,
		req.GroupID,
		req.CategoryID,
		req.Description,
		req.Amount,
		req.SplitType,
	).Scan(
		&expense.ID,
		&expense.PayerID,
		&expense.GroupID,
		&expense.CategoryID,
		&expense.Description,
		&expense.Amount,
		&expense.SplitType,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return expense, nil
}

func insertSplit(ctx context.Context, q database.Querier, expenseID string, input SplitInput) (*Split, error) {
	query := `
		INSERT INTO splits (id, expense_id, user_id, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, expense_id, user_id, amount
	`

	split := &Split{}
	err := q.QueryRowContext(ctx, query, uuid.NewString(), expenseID, input.UserID, input.Amount).Scan(
		&split.ID,
		&split.ExpenseID,
		&split.UserID,
		&split.Amount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create split: %w", err)
	}

	return split, nil
}

// GetByID retrieves an expense by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Expense, error) {
	query := `
		SELECT e.id, e.payer_id, e.group_id, e.category_id, e.description, e.amount, e.split_type,
		       e.created_at, e.updated_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.PayerID,
		&expense.GroupID,
		&expense.CategoryID,
		&expense.Description,
		&expense.Amount,
		&expense.SplitType,
		&expense.CreatedAt,
		&expense.UpdatedAt,
		&expense.PayerUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetSplitsByExpenseID retrieves all splits for an expense
func (r *Repository) GetSplitsByExpenseID(ctx context.Context, expenseID string) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.user_id, s.amount, u.username
		FROM splits s
		JOIN users u ON s.user_id = u.id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		split := &Split{}
		if err := rows.Scan(
			&split.ID,
			&split.ExpenseID,
			&split.UserID,
			&split.Amount,
			&split.Username,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}

	return splits, nil
}

// ListByGroup retrieves a page of expenses for a group
func (r *Repository) ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]*Expense, int, error) {
	return r.list(ctx, `e.group_id = $1`, groupID, limit, offset)
}

// ListByPayer retrieves a page of expenses paid by a user
func (r *Repository) ListByPayer(ctx context.Context, payerID string, limit, offset int) ([]*Expense, int, error) {
	return r.list(ctx, `e.payer_id = $1`, payerID, limit, offset)
}

func (r *Repository) list(ctx context.Context, where, param string, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses e WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, param).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.payer_id, e.group_id, e.category_id, e.description, e.amount, e.split_type,
		       e.created_at, e.updated_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE ` + where + `
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, param, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.PayerID,
			&expense.GroupID,
			&expense.CategoryID,
			&expense.Description,
			&expense.Amount,
			&expense.SplitType,
			&expense.CreatedAt,
			&expense.UpdatedAt,
			&expense.PayerUsername,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, nil
}

// DeleteStandalone deletes an expense row. Callers must ensure the expense
// has no group; group expenses stay immutable once reconciled.
func (r *Repository) DeleteStandalone(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1 AND group_id IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("expense not found")
	}

	return nil
}
