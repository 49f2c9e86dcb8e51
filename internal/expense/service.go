package expense

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/divvyhq/divvy/internal/auth"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNotPayer        = errors.New("only the payer can delete an expense")
	ErrGroupImmutable  = errors.New("group expenses cannot be deleted once reconciled")
)

// ActivityRecorder receives best-effort activity notifications. Failures are
// logged, never propagated.
type ActivityRecorder interface {
	ExpenseCreated(ctx context.Context, actorID, expenseID string, groupID *string, amount decimal.Decimal)
}

// Service handles expense business logic
type Service struct {
	repo       *Repository
	validator  *Validator
	activities ActivityRecorder
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, validator *Validator, activities ActivityRecorder) *Service {
	return &Service{repo: repo, validator: validator, activities: activities}
}

// Create validates the payload and creates either a standalone expense or a
// group expense with splits and settlement reconciliation, depending on the
// payload shape. Business rejections come back in the Result with OK false;
// the error return is for infrastructure failures only.
func (s *Service) Create(ctx context.Context, principal auth.Principal, req *CreateExpenseRequest) (*ExpenseWithSplits, Result, error) {
	result, err := s.validator.Validate(ctx, req, principal)
	if err != nil {
		return nil, Result{}, err
	}
	if !result.OK {
		return nil, result, nil
	}

	var created *ExpenseWithSplits
	if req.IsGroupSplit() {
		created, err = s.repo.CreateWithSplits(ctx, result.PayerID, req)
	} else {
		var expense *Expense
		expense, err = s.repo.CreateStandalone(ctx, result.PayerID, req)
		if expense != nil {
			created = &ExpenseWithSplits{Expense: expense}
		}
	}
	if err != nil {
		return nil, Result{}, err
	}

	if s.activities != nil {
		s.activities.ExpenseCreated(ctx, principal.UserID, created.Expense.ID,
			created.Expense.GroupID, created.Expense.Amount)
	}
	slog.Info("expense created",
		"expense_id", created.Expense.ID,
		"payer_id", created.Expense.PayerID,
		"group", created.Expense.IsGroupExpense(),
	)

	return created, result, nil
}

// GetByID retrieves an expense with its splits
func (s *Service) GetByID(ctx context.Context, id string) (*ExpenseWithSplits, error) {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	var splits []*Split
	if expense.IsGroupExpense() {
		splits, err = s.repo.GetSplitsByExpenseID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// ListByGroup retrieves a page of a group's expenses
func (s *Service) ListByGroup(ctx context.Context, groupID string, page, perPage int) ([]*Expense, int, error) {
	limit, offset := pagination(page, perPage)
	return s.repo.ListByGroup(ctx, groupID, limit, offset)
}

// ListByPayer retrieves a page of the expenses a user paid for
func (s *Service) ListByPayer(ctx context.Context, payerID string, page, perPage int) ([]*Expense, int, error) {
	limit, offset := pagination(page, perPage)
	return s.repo.ListByPayer(ctx, payerID, limit, offset)
}

// Delete removes a standalone expense. Only the payer may delete it, and
// group expenses are refused because their settlements have already been
// reconciled.
func (s *Service) Delete(ctx context.Context, id, actorID string) error {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}
	if expense.PayerID != actorID {
		return ErrNotPayer
	}
	if expense.IsGroupExpense() {
		return ErrGroupImmutable
	}

	return s.repo.DeleteStandalone(ctx, id)
}

func pagination(page, perPage int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return perPage, (page - 1) * perPage
}
