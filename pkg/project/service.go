package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/jobsight/jobsight/pkg/user"
)

var ErrInvalidTransition = errors.New("status transition not allowed")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, project Project) (Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if project.Status == "" {
		project.Status = Planning
	}
	if !project.Status.IsValid() {
		return Project{}, fmt.Errorf("unknown project status: %s", project.Status)
	}
	id, err := s.repo.Store(ctx, userId, project)
	if err != nil {
		return Project{}, fmt.Errorf("failed to store project: %w", err)
	}
	project.Id = id
	return project, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *Service) List(ctx context.Context, status Status) ([]Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("unknown project status: %s", status)
	}
	return s.repo.GetAll(ctx, userId, status)
}

// Update persists project changes. A status change is validated against the
// transition table; everything else is caller-owned.
func (s *Service) Update(ctx context.Context, project Project) (Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("failed to get current user: %w", err)
	}
	existing, err := s.repo.Get(ctx, userId, project.Id)
	if err != nil {
		return Project{}, err
	}
	if project.Status != existing.Status && !existing.Status.CanTransitionTo(project.Status) {
		return Project{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, existing.Status, project.Status)
	}
	if err := s.repo.Update(ctx, userId, project); err != nil {
		return Project{}, err
	}
	return project, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, id)
}
