package category

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrCategoryNotFound = errors.New("category not found")
)

// Service handles category business logic
type Service struct {
	repo *Repository
}

// NewService creates a new category service with dependencies injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a category owned by the actor
func (s *Service) Create(ctx context.Context, actorID string, req *CreateCategoryRequest) (*Category, error) {
	return s.repo.Create(ctx, req.Name, &actorID)
}

// CreateGlobal creates a category visible to every user. The admin gate
// lives on the route, not here.
func (s *Service) CreateGlobal(ctx context.Context, req *CreateCategoryRequest) (*Category, error) {
	return s.repo.Create(ctx, req.Name, nil)
}

// GetByID retrieves a category by ID
func (s *Service) GetByID(ctx context.Context, id string) (*Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// ListVisibleToUser retrieves all categories the user may use
func (s *Service) ListVisibleToUser(ctx context.Context, userID string) ([]*Category, error) {
	return s.repo.ListVisibleToUser(ctx, userID)
}
