package expense

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/divvyhq/divvy/internal/auth"
	"github.com/divvyhq/divvy/internal/category"
	"github.com/divvyhq/divvy/internal/group"
	"github.com/divvyhq/divvy/internal/user"
)

// Code identifies why an expense payload was rejected.
type Code string

const (
	CodeMissingPayer           Code = "MISSING_PAYER"
	CodePayerNotFound          Code = "PAYER_NOT_FOUND"
	CodeIncompleteGroupExpense Code = "INCOMPLETE_GROUP_EXPENSE"
	CodeGroupNotFound          Code = "GROUP_NOT_FOUND"
	CodeSplitUserNotInGroup    Code = "SPLIT_USER_NOT_IN_GROUP"
	CodeUnevenSplitMismatch    Code = "UNEVEN_SPLIT_MISMATCH"
	CodeSplitSumExceedsAmount  Code = "SPLIT_SUM_EXCEEDS_AMOUNT"
	CodeCategoryNotFound       Code = "CATEGORY_NOT_FOUND"
	CodeCategoryNotOwned       Code = "CATEGORY_NOT_OWNED"
)

// Result is the outcome of validating an expense payload. When OK is false,
// Code and Message say what was wrong; PayerID always carries the resolved
// payer once payer resolution has passed.
type Result struct {
	OK      bool
	Code    Code
	Message string
	PayerID string
}

func reject(code Code, format string, args ...interface{}) Result {
	return Result{Code: code, Message: fmt.Sprintf(format, args...)}
}

// The read-only directories the validator consults. All lookups return
// (nil, nil) when the record does not exist, matching the repositories.

type userDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type groupDirectory interface {
	GetByID(ctx context.Context, id string) (*group.Group, error)
	GetMemberIDs(ctx context.Context, groupID string) ([]string, error)
}

type categoryDirectory interface {
	GetByID(ctx context.Context, id string) (*category.Category, error)
}

// Validator enforces the business rules for expense creation. It only reads;
// nothing is written until the payload has passed every rule.
type Validator struct {
	users      userDirectory
	groups     groupDirectory
	categories categoryDirectory
}

// NewValidator creates a validator over the given read-only directories
func NewValidator(users userDirectory, groups groupDirectory, categories categoryDirectory) *Validator {
	return &Validator{users: users, groups: groups, categories: categories}
}

// Validate checks the payload against the acting principal, stopping at the
// first failed rule. The returned error is reserved for infrastructure
// failures; business rejections come back inside the Result.
//
// Rules, in order: payer resolution (admins must name a payer explicitly),
// payer existence, payload-shape completeness (a payload carrying any of
// group_id, split_type or splits must carry all three), then for group-split
// payloads group existence, split membership, even-split arithmetic and the
// split-sum bound, and finally category existence and ownership.
func (v *Validator) Validate(ctx context.Context, req *CreateExpenseRequest, principal auth.Principal) (Result, error) {
	payerID := principal.UserID
	if req.PayerID != nil && *req.PayerID != "" {
		payerID = *req.PayerID
	} else if principal.Role == auth.RoleAdmin {
		return reject(CodeMissingPayer, "payer_id is required for admin requests"), nil
	}

	payer, err := v.users.GetByID(ctx, payerID)
	if err != nil {
		return Result{}, err
	}
	if payer == nil {
		return reject(CodePayerNotFound, "payer %s not found", payerID), nil
	}

	// A standalone expense carries none of the group fields. Anything in
	// between would persist a group expense the group rules never saw.
	groupShaped := req.GroupID != nil || req.SplitType != nil || len(req.Splits) > 0
	if groupShaped && !req.IsGroupSplit() {
		return reject(CodeIncompleteGroupExpense,
			"a group expense needs group_id, split_type and at least one split"), nil
	}

	if req.IsGroupSplit() {
		if result, err := v.validateGroupSplit(ctx, req); err != nil || !result.OK {
			return result, err
		}
	}

	if req.CategoryID != nil {
		if result, err := v.validateCategory(ctx, *req.CategoryID, payerID); err != nil || !result.OK {
			return result, err
		}
	}

	return Result{OK: true, Message: "Validation success", PayerID: payerID}, nil
}

func (v *Validator) validateGroupSplit(ctx context.Context, req *CreateExpenseRequest) (Result, error) {
	groupID := *req.GroupID

	grp, err := v.groups.GetByID(ctx, groupID)
	if err != nil {
		return Result{}, err
	}
	if grp == nil {
		return reject(CodeGroupNotFound, "group %s not found", groupID), nil
	}

	memberIDs, err := v.groups.GetMemberIDs(ctx, groupID)
	if err != nil {
		return Result{}, err
	}
	members := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}

	// The payer counts as the implicit extra party, so an even split divides
	// the amount across the split users plus one. Shares are cent-rounded;
	// any sub-cent remainder stays with the payer.
	evenShare := req.Amount.DivRound(decimal.NewFromInt(int64(len(req.Splits)+1)), 2)

	for _, split := range req.Splits {
		if !members[split.UserID] {
			return reject(CodeSplitUserNotInGroup, "user %s does not belong to the specified group", split.UserID), nil
		}

		if *req.SplitType == SplitTypeEven && !split.Amount.Equal(evenShare) {
			return reject(CodeUnevenSplitMismatch,
				"split amount %s for user %s does not match the even share %s",
				split.Amount.StringFixed(2), split.UserID, evenShare.StringFixed(2)), nil
		}
	}

	total := decimal.Zero
	for _, split := range req.Splits {
		total = total.Add(split.Amount)
	}
	if total.GreaterThan(req.Amount) {
		return reject(CodeSplitSumExceedsAmount,
			"split total %s is greater than the amount paid %s",
			total.StringFixed(2), req.Amount.StringFixed(2)), nil
	}

	return Result{OK: true}, nil
}

func (v *Validator) validateCategory(ctx context.Context, categoryID, payerID string) (Result, error) {
	cat, err := v.categories.GetByID(ctx, categoryID)
	if err != nil {
		return Result{}, err
	}
	if cat == nil {
		return reject(CodeCategoryNotFound, "category %s not found", categoryID), nil
	}

	if !cat.IsGlobal() && *cat.UserID != payerID {
		return reject(CodeCategoryNotOwned, "category does not belong to the user or the specified payer"), nil
	}

	return Result{OK: true}, nil
}
