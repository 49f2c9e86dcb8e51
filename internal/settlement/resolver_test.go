package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func share(userID, amount string) Share {
	return Share{UserID: userID, Amount: dec(amount)}
}

// applyUpserts folds resolver output back into a settlement snapshot, the way
// the persistence layer would, so sequences of resolutions can be tested.
func applyUpserts(current []*Settlement, upserts []Upsert) []*Settlement {
	next := make([]*Settlement, len(current))
	copy(next, current)

	for _, up := range upserts {
		if up.ID == "" {
			next = append(next, &Settlement{
				ID:         "generated-" + up.SenderID + "-" + up.ReceiverID,
				GroupID:    up.GroupID,
				SenderID:   up.SenderID,
				ReceiverID: up.ReceiverID,
				Amount:     up.Amount,
			})
			continue
		}
		for i, s := range next {
			if s.ID == up.ID {
				next[i] = &Settlement{
					ID:         up.ID,
					GroupID:    up.GroupID,
					SenderID:   up.SenderID,
					ReceiverID: up.ReceiverID,
					Amount:     up.Amount,
				}
				break
			}
		}
	}

	return next
}

func TestResolve_NewDebt(t *testing.T) {
	// No settlement exists between P and M; P pays a split of 50 for M.
	upserts := Resolve([]Share{share("M", "50")}, "P", "g1", nil)

	require.Len(t, upserts, 1)
	assert.Empty(t, upserts[0].ID, "a fresh pair should insert a new row")
	assert.Equal(t, "M", upserts[0].SenderID)
	assert.Equal(t, "P", upserts[0].ReceiverID)
	assert.Equal(t, "g1", upserts[0].GroupID)
	assert.True(t, upserts[0].Amount.Equal(dec("50")))
}

func TestResolve_GrowsExistingDebt(t *testing.T) {
	// M already owes P 50; P pays another 30 for M.
	current := []*Settlement{
		{ID: "s1", GroupID: "g1", SenderID: "M", ReceiverID: "P", Amount: dec("50")},
	}

	upserts := Resolve([]Share{share("M", "30")}, "P", "g1", current)

	require.Len(t, upserts, 1)
	assert.Equal(t, "s1", upserts[0].ID)
	assert.Equal(t, "M", upserts[0].SenderID)
	assert.Equal(t, "P", upserts[0].ReceiverID)
	assert.True(t, upserts[0].Amount.Equal(dec("80")))
}

func TestResolve_OffsetsAndFlipsDirection(t *testing.T) {
	// P owes M 20; P pays 50 for M. The 20 is consumed and M ends up
	// owing P the 30 excess.
	current := []*Settlement{
		{ID: "s1", GroupID: "g1", SenderID: "P", ReceiverID: "M", Amount: dec("20")},
	}

	upserts := Resolve([]Share{share("M", "50")}, "P", "g1", current)

	require.Len(t, upserts, 1)
	assert.Equal(t, "s1", upserts[0].ID)
	assert.Equal(t, "M", upserts[0].SenderID, "direction should flip")
	assert.Equal(t, "P", upserts[0].ReceiverID)
	assert.True(t, upserts[0].Amount.Equal(dec("30")))
}

func TestResolve_OffsetWithoutFlip(t *testing.T) {
	// P owes M 80; P pays 50 for M. P still owes M 30.
	current := []*Settlement{
		{ID: "s1", GroupID: "g1", SenderID: "P", ReceiverID: "M", Amount: dec("80")},
	}

	upserts := Resolve([]Share{share("M", "50")}, "P", "g1", current)

	require.Len(t, upserts, 1)
	assert.Equal(t, "P", upserts[0].SenderID, "direction should not flip")
	assert.Equal(t, "M", upserts[0].ReceiverID)
	assert.True(t, upserts[0].Amount.Equal(dec("30")))
}

func TestResolve_ExactOffsetLeavesZeroRow(t *testing.T) {
	// P owes M 50; P pays exactly 50 for M. The row stays, at zero, with
	// the payer still recorded as sender.
	current := []*Settlement{
		{ID: "s1", GroupID: "g1", SenderID: "P", ReceiverID: "M", Amount: dec("50")},
	}

	upserts := Resolve([]Share{share("M", "50")}, "P", "g1", current)

	require.Len(t, upserts, 1)
	assert.Equal(t, "P", upserts[0].SenderID)
	assert.True(t, upserts[0].Amount.IsZero())
}

func TestResolve_MultipleShares(t *testing.T) {
	current := []*Settlement{
		{ID: "s1", GroupID: "g1", SenderID: "A", ReceiverID: "P", Amount: dec("10")},
		{ID: "s2", GroupID: "g1", SenderID: "P", ReceiverID: "B", Amount: dec("100")},
	}

	upserts := Resolve([]Share{share("A", "25"), share("B", "25"), share("C", "25")}, "P", "g1", current)

	require.Len(t, upserts, 3)

	// A's debt grows.
	assert.Equal(t, "s1", upserts[0].ID)
	assert.True(t, upserts[0].Amount.Equal(dec("35")))

	// P's debt to B shrinks, direction kept.
	assert.Equal(t, "s2", upserts[1].ID)
	assert.Equal(t, "P", upserts[1].SenderID)
	assert.True(t, upserts[1].Amount.Equal(dec("75")))

	// C is a fresh pair.
	assert.Empty(t, upserts[2].ID)
	assert.Equal(t, "C", upserts[2].SenderID)
	assert.True(t, upserts[2].Amount.Equal(dec("25")))
}

func TestResolve_NetZeroRoundTrip(t *testing.T) {
	// A pays X for B, then B pays X for A: the pair ends square at zero.
	snapshot := applyUpserts(nil, Resolve([]Share{share("B", "42.50")}, "A", "g1", nil))
	require.Len(t, snapshot, 1)

	snapshot = applyUpserts(snapshot, Resolve([]Share{share("A", "42.50")}, "B", "g1", snapshot))

	require.Len(t, snapshot, 1, "the round trip must reuse the row, not add one")
	assert.True(t, snapshot[0].Amount.IsZero())
}

func TestResolve_ConvergesOnRepeat(t *testing.T) {
	// Resolving a share, then resolving the mirrored share against the
	// output, converges to zero in the same direction rather than going
	// negative.
	snapshot := applyUpserts(nil, Resolve([]Share{share("M", "50")}, "P", "g1", nil))

	upserts := Resolve([]Share{share("P", "50")}, "M", "g1", snapshot)
	require.Len(t, upserts, 1)
	assert.True(t, upserts[0].Amount.IsZero())
	assert.False(t, upserts[0].Amount.IsNegative())
	assert.Equal(t, "M", upserts[0].SenderID, "zeroing keeps the direction, it does not flip")
	assert.Equal(t, "P", upserts[0].ReceiverID)
}

func TestResolve_PairUniquenessOverSequence(t *testing.T) {
	// A long alternating sequence of expenses between three members never
	// produces a second row for any pair.
	var snapshot []*Settlement
	sequence := []struct {
		payer string
		share Share
	}{
		{"P", share("A", "30")},
		{"A", share("P", "45")},
		{"P", share("A", "15")},
		{"P", share("B", "20")},
		{"B", share("A", "60")},
		{"A", share("B", "60")},
	}

	for _, step := range sequence {
		upserts := Resolve([]Share{step.share}, step.payer, "g1", snapshot)
		snapshot = applyUpserts(snapshot, upserts)
	}

	seen := make(map[string]int)
	for _, s := range snapshot {
		a, b := s.SenderID, s.ReceiverID
		if a > b {
			a, b = b, a
		}
		seen[a+"/"+b]++
		assert.False(t, s.Amount.IsNegative(), "amounts stay non-negative")
	}
	for pair, count := range seen {
		assert.Equal(t, 1, count, "pair %s must have exactly one row", pair)
	}
}

func TestResolve_IgnoresOtherPairs(t *testing.T) {
	// Settlements not involving the share's member are left untouched.
	current := []*Settlement{
		{ID: "s1", GroupID: "g1", SenderID: "X", ReceiverID: "P", Amount: dec("99")},
	}

	upserts := Resolve([]Share{share("M", "10")}, "P", "g1", current)

	require.Len(t, upserts, 1)
	assert.Empty(t, upserts[0].ID)
	assert.Equal(t, "M", upserts[0].SenderID)
}
