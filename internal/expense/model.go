package expense

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SplitType says how a group expense was divided among members.
type SplitType string

const (
	SplitTypeEven   SplitType = "even"
	SplitTypeCustom SplitType = "custom"
)

// ParseSplitType converts a request string into a SplitType.
func ParseSplitType(s string) (SplitType, error) {
	switch SplitType(s) {
	case SplitTypeEven:
		return SplitTypeEven, nil
	case SplitTypeCustom:
		return SplitTypeCustom, nil
	default:
		return "", fmt.Errorf("unknown split type: %q", s)
	}
}

// Expense represents an expense in the system. A standalone expense has no
// group, split type or splits; a group expense has all three.
type Expense struct {
	ID          string          `json:"id"`
	PayerID     string          `json:"payer_id"`
	GroupID     *string         `json:"group_id,omitempty"`
	CategoryID  *string         `json:"category_id,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SplitType   *SplitType      `json:"split_type,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Populated via JOIN
	PayerUsername string `json:"payer_username,omitempty"`
}

// IsGroupExpense reports whether the expense is shared across a group.
func (e *Expense) IsGroupExpense() bool {
	return e.GroupID != nil
}

// Split represents one member's share of a group expense. The payer's own
// share is implicit: it is the expense amount minus the sum of the splits.
type Split struct {
	ID        string          `json:"id"`
	ExpenseID string          `json:"expense_id"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`

	// Populated via JOIN
	Username string `json:"username,omitempty"`
}

// ExpenseWithSplits combines an expense with its splits
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}
