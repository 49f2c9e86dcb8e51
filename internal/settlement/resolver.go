package settlement

import "github.com/shopspring/decimal"

// Share is one group member's portion of a new expense.
type Share struct {
	UserID string
	Amount decimal.Decimal
}

// Upsert is a settlement record the resolver wants persisted. An empty ID
// means a new row; a non-empty ID means update that row in place, including
// its sender/receiver when the debt direction flipped.
type Upsert struct {
	ID         string
	GroupID    string
	SenderID   string
	ReceiverID string
	Amount     decimal.Decimal
}

// Resolve folds a new expense's shares into the current settlements between
// the payer and each share's member. It is pure: it reads the snapshot it is
// given and emits one Upsert per share, leaving persistence to the caller.
//
// For each share (member owes the payer the share amount):
//   - no settlement between the pair yet: a new member→payer row for the
//     share amount
//   - member already owes the payer: the amount grows by the share
//   - payer owes the member: the share offsets the debt; if the offset
//     overshoots, the direction flips and the amount is the excess
func Resolve(shares []Share, payerID, groupID string, current []*Settlement) []Upsert {
	upserts := make([]Upsert, 0, len(shares))

	for _, share := range shares {
		existing := findForPair(current, payerID, share.UserID)
		if existing == nil {
			upserts = append(upserts, Upsert{
				GroupID:    groupID,
				SenderID:   share.UserID,
				ReceiverID: payerID,
				Amount:     share.Amount,
			})
			continue
		}

		if existing.SenderID == share.UserID {
			// Member already owes the payer; the new share adds to it.
			upserts = append(upserts, Upsert{
				ID:         existing.ID,
				GroupID:    groupID,
				SenderID:   share.UserID,
				ReceiverID: payerID,
				Amount:     existing.Amount.Add(share.Amount),
			})
			continue
		}

		// Payer owes the member; the share offsets that debt.
		delta := existing.Amount.Sub(share.Amount)
		if delta.IsNegative() {
			upserts = append(upserts, Upsert{
				ID:         existing.ID,
				GroupID:    groupID,
				SenderID:   share.UserID,
				ReceiverID: payerID,
				Amount:     delta.Abs(),
			})
		} else {
			upserts = append(upserts, Upsert{
				ID:         existing.ID,
				GroupID:    groupID,
				SenderID:   payerID,
				ReceiverID: share.UserID,
				Amount:     delta,
			})
		}
	}

	return upserts
}

// findForPair returns the settlement between the two users, if any. The
// snapshot holds at most one row per pair.
func findForPair(settlements []*Settlement, userA, userB string) *Settlement {
	for _, s := range settlements {
		if s.Involves(userA, userB) {
			return s
		}
	}
	return nil
}
