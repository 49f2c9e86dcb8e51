package group

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrGroupNotFound = errors.New("group not found")
	ErrNotCreator    = errors.New("only the group creator can do this")
	ErrCreatorLeave  = errors.New("the group creator cannot be removed")
)

// ActivityRecorder receives best-effort activity notifications
type ActivityRecorder interface {
	GroupCreated(ctx context.Context, actorID, groupID string)
	GroupDeleted(ctx context.Context, actorID, groupID string)
}

// Service handles group business logic
type Service struct {
	repo       *Repository
	activities ActivityRecorder
}

// NewService creates a new group service with dependencies injected
func NewService(repo *Repository, activities ActivityRecorder) *Service {
	return &Service{repo: repo, activities: activities}
}

// Create creates a group with the creator as its first member
func (s *Service) Create(ctx context.Context, createdBy string, req *CreateGroupRequest) (*Group, error) {
	group, err := s.repo.Create(ctx, req.Name, req.Description, createdBy, req.MemberIDs)
	if err != nil {
		return nil, err
	}

	if s.activities != nil {
		s.activities.GroupCreated(ctx, createdBy, group.ID)
	}

	return group, nil
}

// GetByID retrieves a group with its members
func (s *Service) GetByID(ctx context.Context, id string) (*Group, []*Member, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if group == nil {
		return nil, nil, ErrGroupNotFound
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return group, members, nil
}

// GetMemberIDs retrieves the member user IDs of a group. Returns
// ErrGroupNotFound when the group does not exist.
func (s *Service) GetMemberIDs(ctx context.Context, groupID string) ([]string, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return s.repo.GetMemberIDs(ctx, groupID)
}

// AddMember adds a user to a group
func (s *Service) AddMember(ctx context.Context, groupID, userID string) error {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}

	return s.repo.AddMember(ctx, groupID, userID)
}

// RemoveMember removes a user from a group. The creator cannot be removed.
func (s *Service) RemoveMember(ctx context.Context, groupID, userID string) error {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}
	if group.CreatedBy == userID {
		return ErrCreatorLeave
	}

	return s.repo.RemoveMember(ctx, groupID, userID)
}

// ListForUser retrieves all groups the user belongs to
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*Group, error) {
	return s.repo.ListForUser(ctx, userID)
}

// Delete removes a group. Only the creator may delete it.
func (s *Service) Delete(ctx context.Context, groupID, actorID string) error {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}
	if group.CreatedBy != actorID {
		return ErrNotCreator
	}

	if err := s.repo.Delete(ctx, groupID); err != nil {
		return err
	}

	if s.activities != nil {
		s.activities.GroupDeleted(ctx, actorID, groupID)
	}

	return nil
}
