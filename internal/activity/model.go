package activity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Action represents the kind of change an activity records
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Activity is one entry in the audit feed: who did what, to which record,
// in which group, for how much.
type Activity struct {
	ID        string           `json:"id"`
	Action    Action           `json:"action"`
	ActorID   string           `json:"actor_id"`
	TargetID  *string          `json:"target_id,omitempty"`
	GroupID   *string          `json:"group_id,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}
