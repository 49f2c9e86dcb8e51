package activity

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

// Service records and serves the activity feed. Writes are best-effort:
// a failed insert is logged and swallowed so it never fails the operation
// being recorded.
type Service struct {
	repo *Repository
}

// NewService creates a new activity service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// ExpenseCreated records that an expense was created
func (s *Service) ExpenseCreated(ctx context.Context, actorID, expenseID string, groupID *string, amount decimal.Decimal) {
	s.record(ctx, &Activity{
		Action:   ActionCreate,
		ActorID:  actorID,
		TargetID: &expenseID,
		GroupID:  groupID,
		Amount:   &amount,
		Message:  "expense created",
	})
}

// GroupCreated records that a group was created
func (s *Service) GroupCreated(ctx context.Context, actorID, groupID string) {
	s.record(ctx, &Activity{
		Action:   ActionCreate,
		ActorID:  actorID,
		TargetID: &groupID,
		GroupID:  &groupID,
		Message:  "group created",
	})
}

// GroupDeleted records that a group was deleted
func (s *Service) GroupDeleted(ctx context.Context, actorID, groupID string) {
	s.record(ctx, &Activity{
		Action:   ActionDelete,
		ActorID:  actorID,
		TargetID: &groupID,
		GroupID:  &groupID,
		Message:  "group deleted",
	})
}

func (s *Service) record(ctx context.Context, a *Activity) {
	if err := s.repo.Create(ctx, a); err != nil {
		slog.Warn("failed to record activity", "action", a.Action, "actor_id", a.ActorID, "error", err)
	}
}

// ListByActor retrieves a page of a user's activities
func (s *Service) ListByActor(ctx context.Context, actorID string, page, perPage int) ([]*Activity, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByActor(ctx, actorID, perPage, offset)
}
