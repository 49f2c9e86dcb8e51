package expense

import "github.com/shopspring/decimal"

// SplitInput is one member's share in an expense creation request
type SplitInput struct {
	UserID string          `json:"user_id" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0"`
}

// CreateExpenseRequest represents the request to create an expense.
// group_id, split_type and splits together switch the expense into group-split
// mode; leaving all three out creates a standalone expense. payer_id is
// required for admins acting on someone's behalf and defaults to the
// authenticated user otherwise.
type CreateExpenseRequest struct {
	PayerID     *string         `json:"payer_id,omitempty"`
	GroupID     *string         `json:"group_id,omitempty"`
	CategoryID  *string         `json:"category_id,omitempty"`
	Description string          `json:"description" validate:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	SplitType   *SplitType      `json:"split_type,omitempty" validate:"omitempty,oneof=even custom"`
	Splits      []SplitInput    `json:"splits,omitempty"`
}

// IsGroupSplit reports whether the payload asks for group-split reconciliation.
func (r *CreateExpenseRequest) IsGroupSplit() bool {
	return r.GroupID != nil && r.SplitType != nil && len(r.Splits) > 0
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID            string           `json:"id"`
	PayerID       string           `json:"payer_id"`
	PayerUsername string           `json:"payer_username,omitempty"`
	GroupID       *string          `json:"group_id,omitempty"`
	CategoryID    *string          `json:"category_id,omitempty"`
	Description   string           `json:"description"`
	Amount        string           `json:"amount"`
	SplitType     *SplitType       `json:"split_type,omitempty"`
	CreatedAt     string           `json:"created_at"`
	Splits        []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	ID        string `json:"id"`
	ExpenseID string `json:"expense_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username,omitempty"`
	Amount    string `json:"amount"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		PayerID:       e.PayerID,
		PayerUsername: e.PayerUsername,
		GroupID:       e.GroupID,
		CategoryID:    e.CategoryID,
		Description:   e.Description,
		Amount:        e.Amount.StringFixed(2),
		SplitType:     e.SplitType,
		CreatedAt:     e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	return &SplitResponse{
		ID:        s.ID,
		ExpenseID: s.ExpenseID,
		UserID:    s.UserID,
		Username:  s.Username,
		Amount:    s.Amount.StringFixed(2),
	}
}
