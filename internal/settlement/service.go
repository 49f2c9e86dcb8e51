package settlement

import (
	"context"
)

// GroupChecker is the read-only group boundary the service needs.
type GroupChecker interface {
	GetMemberIDs(ctx context.Context, groupID string) ([]string, error)
}

// Service handles settlement read paths. Settlement writes happen only
// through the expense reconciliation transaction.
type Service struct {
	repo   *Repository
	groups GroupChecker
}

// NewService creates a new settlement service with dependencies injected
func NewService(repo *Repository, groups GroupChecker) *Service {
	return &Service{repo: repo, groups: groups}
}

// ListByGroup retrieves all settlements for a group. The group must exist;
// the group boundary reports that with its own error.
func (s *Service) ListByGroup(ctx context.Context, groupID string) ([]*Settlement, error) {
	if _, err := s.groups.GetMemberIDs(ctx, groupID); err != nil {
		return nil, err
	}
	return s.repo.ListByGroup(ctx, groupID)
}

// ListForUser retrieves all settlements the user is part of
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*Settlement, error) {
	return s.repo.ListForUser(ctx, userID)
}
