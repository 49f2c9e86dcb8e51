package settlement

import "github.com/shopspring/decimal"

// Settlement is the standing net debt between two users within a group:
// the sender owes the receiver the amount. For any pair of users in a group
// at most one row exists; the direction flips in place rather than a mirrored
// row being created. An amount of zero means the pair is square — the row is
// kept as a marker, never deleted.
type Settlement struct {
	ID         string          `json:"id"`
	GroupID    string          `json:"group_id"`
	SenderID   string          `json:"sender_id"`
	ReceiverID string          `json:"receiver_id"`
	Amount     decimal.Decimal `json:"amount"`

	// Populated via JOIN
	SenderUsername   string `json:"sender_username,omitempty"`
	ReceiverUsername string `json:"receiver_username,omitempty"`
}

// Involves reports whether the settlement is between the two given users,
// in either direction.
func (s *Settlement) Involves(userA, userB string) bool {
	return (s.SenderID == userA && s.ReceiverID == userB) ||
		(s.SenderID == userB && s.ReceiverID == userA)
}
