package expense

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divvyhq/divvy/internal/auth"
	"github.com/divvyhq/divvy/internal/category"
	"github.com/divvyhq/divvy/internal/group"
	"github.com/divvyhq/divvy/internal/user"
)

type fakeUsers map[string]*user.User

func (f fakeUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	return f[id], nil
}

type fakeGroups struct {
	groups  map[string]*group.Group
	members map[string][]string
}

func (f *fakeGroups) GetByID(_ context.Context, id string) (*group.Group, error) {
	return f.groups[id], nil
}

func (f *fakeGroups) GetMemberIDs(_ context.Context, groupID string) ([]string, error) {
	return f.members[groupID], nil
}

type fakeCategories map[string]*category.Category

func (f fakeCategories) GetByID(_ context.Context, id string) (*category.Category, error) {
	return f[id], nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string { return &s }

func splitTypePtr(t SplitType) *SplitType { return &t }

func newTestValidator() *Validator {
	users := fakeUsers{
		"payer":   {ID: "payer", Username: "payer"},
		"alice":   {ID: "alice", Username: "alice"},
		"bob":     {ID: "bob", Username: "bob"},
		"outcast": {ID: "outcast", Username: "outcast"},
	}
	groups := &fakeGroups{
		groups: map[string]*group.Group{
			"g1": {ID: "g1", Name: "Trip"},
		},
		members: map[string][]string{
			"g1": {"payer", "alice", "bob"},
		},
	}
	categories := fakeCategories{
		"global": {ID: "global", Name: "Food"},
		"owned":  {ID: "owned", Name: "Gear", UserID: strPtr("payer")},
		"theirs": {ID: "theirs", Name: "Private", UserID: strPtr("alice")},
	}
	return NewValidator(users, groups, categories)
}

func groupSplitRequest(amount string, splits ...SplitInput) *CreateExpenseRequest {
	return &CreateExpenseRequest{
		GroupID:     strPtr("g1"),
		Description: "dinner",
		Amount:      dec(amount),
		SplitType:   splitTypePtr(SplitTypeEven),
		Splits:      splits,
	}
}

func asUser(id string) auth.Principal {
	return auth.Principal{UserID: id, Role: auth.RoleUser}
}

func TestValidate_StandalonePayload(t *testing.T) {
	v := newTestValidator()

	result, err := v.Validate(context.Background(), &CreateExpenseRequest{
		Description: "coffee",
		Amount:      dec("4.50"),
	}, asUser("payer"))

	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "payer", result.PayerID, "payer defaults to the acting user")
}

func TestValidate_AdminMustNamePayer(t *testing.T) {
	v := newTestValidator()

	result, err := v.Validate(context.Background(), &CreateExpenseRequest{
		Description: "coffee",
		Amount:      dec("4.50"),
	}, auth.Principal{UserID: "payer", Role: auth.RoleAdmin})

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, CodeMissingPayer, result.Code)
}

func TestValidate_AdminWithExplicitPayer(t *testing.T) {
	v := newTestValidator()

	result, err := v.Validate(context.Background(), &CreateExpenseRequest{
		PayerID:     strPtr("alice"),
		Description: "coffee",
		Amount:      dec("4.50"),
	}, auth.Principal{UserID: "payer", Role: auth.RoleAdmin})

	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "alice", result.PayerID)
}

func TestValidate_PayerNotFound(t *testing.T) {
	v := newTestValidator()

	result, err := v.Validate(context.Background(), &CreateExpenseRequest{
		PayerID:     strPtr("ghost"),
		Description: "coffee",
		Amount:      dec("4.50"),
	}, asUser("payer"))

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, CodePayerNotFound, result.Code)
}

func TestValidate_RejectsPartialGroupPayloads(t *testing.T) {
	even := SplitTypeEven
	tests := []struct {
		name string
		req  *CreateExpenseRequest
	}{
		{
			// The group rules never run for this shape, so even a
			// nonexistent group must be caught here.
			"group_id alone",
			&CreateExpenseRequest{
				GroupID:     strPtr("no-such-group"),
				Description: "dinner",
				Amount:      dec("90"),
			},
		},
		{
			"splits without split_type",
			&CreateExpenseRequest{
				GroupID:     strPtr("g1"),
				Description: "dinner",
				Amount:      dec("90"),
				Splits:      []SplitInput{{UserID: "alice", Amount: dec("30")}},
			},
		},
		{
			"splits without group_id",
			&CreateExpenseRequest{
				Description: "dinner",
				Amount:      dec("90"),
				SplitType:   &even,
				Splits:      []SplitInput{{UserID: "alice", Amount: dec("30")}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator()

			result, err := v.Validate(context.Background(), tt.req, asUser("payer"))

			require.NoError(t, err)
			assert.False(t, result.OK)
			assert.Equal(t, CodeIncompleteGroupExpense, result.Code)
		})
	}
}

func TestValidate_GroupNotFound(t *testing.T) {
	v := newTestValidator()

	req := groupSplitRequest("90",
		SplitInput{UserID: "alice", Amount: dec("30")},
	)
	req.GroupID = strPtr("nope")

	result, err := v.Validate(context.Background(), req, asUser("payer"))

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, CodeGroupNotFound, result.Code)
}

func TestValidate_SplitUserNotInGroup(t *testing.T) {
	v := newTestValidator()

	req := groupSplitRequest("90",
		SplitInput{UserID: "alice", Amount: dec("30")},
		SplitInput{UserID: "outcast", Amount: dec("30")},
	)

	result, err := v.Validate(context.Background(), req, asUser("payer"))

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, CodeSplitUserNotInGroup, result.Code)
	assert.Contains(t, result.Message, "outcast", "the offending user is named")
}

func TestValidate_EvenSplit(t *testing.T) {
	// 90 across 2 splits plus the payer: each share is 90/3 = 30.
	tests := []struct {
		name   string
		amount string
		ok     bool
	}{
		{"exact share accepted", "30", true},
		{"low share rejected", "29", false},
		{"high share rejected", "31", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator()
			req := groupSplitRequest("90",
				SplitInput{UserID: "alice", Amount: dec(tt.amount)},
				SplitInput{UserID: "bob", Amount: dec("30")},
			)

			result, err := v.Validate(context.Background(), req, asUser("payer"))

			require.NoError(t, err)
			assert.Equal(t, tt.ok, result.OK)
			if !tt.ok {
				assert.Equal(t, CodeUnevenSplitMismatch, result.Code)
			}
		})
	}
}

func TestValidate_EvenSplitRoundsShareToCents(t *testing.T) {
	// 100 across 2 splits plus the payer: 100/3 rounds to 33.33 and the
	// remainder stays with the payer.
	v := newTestValidator()
	req := groupSplitRequest("100",
		SplitInput{UserID: "alice", Amount: dec("33.33")},
		SplitInput{UserID: "bob", Amount: dec("33.33")},
	)

	result, err := v.Validate(context.Background(), req, asUser("payer"))

	require.NoError(t, err)
	assert.True(t, result.OK)
}

func TestValidate_SplitSumExceedsAmount(t *testing.T) {
	v := newTestValidator()
	req := groupSplitRequest("50",
		SplitInput{UserID: "alice", Amount: dec("30")},
		SplitInput{UserID: "bob", Amount: dec("30")},
	)
	req.SplitType = splitTypePtr(SplitTypeCustom)

	result, err := v.Validate(context.Background(), req, asUser("payer"))

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, CodeSplitSumExceedsAmount, result.Code)
}

func TestValidate_CustomSplitWithinAmount(t *testing.T) {
	// Splits may sum to less than the amount; the payer covers the rest.
	v := newTestValidator()
	req := groupSplitRequest("100",
		SplitInput{UserID: "alice", Amount: dec("20")},
		SplitInput{UserID: "bob", Amount: dec("35")},
	)
	req.SplitType = splitTypePtr(SplitTypeCustom)

	result, err := v.Validate(context.Background(), req, asUser("payer"))

	require.NoError(t, err)
	assert.True(t, result.OK)
}

func TestValidate_Category(t *testing.T) {
	tests := []struct {
		name       string
		categoryID string
		ok         bool
		code       Code
	}{
		{"global category accepted", "global", true, ""},
		{"own category accepted", "owned", true, ""},
		{"someone else's category rejected", "theirs", false, CodeCategoryNotOwned},
		{"unknown category rejected", "ghost", false, CodeCategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator()
			req := &CreateExpenseRequest{
				CategoryID:  &tt.categoryID,
				Description: "coffee",
				Amount:      dec("4.50"),
			}

			result, err := v.Validate(context.Background(), req, asUser("payer"))

			require.NoError(t, err)
			assert.Equal(t, tt.ok, result.OK)
			if !tt.ok {
				assert.Equal(t, tt.code, result.Code)
			}
		})
	}
}

func TestValidate_MembershipCheckedBeforeEvenArithmetic(t *testing.T) {
	// A non-member with a wrong share fails on membership first.
	v := newTestValidator()
	req := groupSplitRequest("90",
		SplitInput{UserID: "outcast", Amount: dec("1")},
	)

	result, err := v.Validate(context.Background(), req, asUser("payer"))

	require.NoError(t, err)
	assert.Equal(t, CodeSplitUserNotInGroup, result.Code)
}
