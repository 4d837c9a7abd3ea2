package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/jobsight/jobsight/pkg/user"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if expense.AmountCents < 0 {
		return Expense{}, fmt.Errorf("expense amount must not be negative")
	}
	id, err := s.repo.Store(ctx, userId, expense)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to store expense: %w", err)
	}
	expense.Id = id
	return expense, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *Service) ListByProject(ctx context.Context, projectId int64, from, to time.Time) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetByProject(ctx, userId, projectId, from, to)
}

func (s *Service) ProjectTotal(ctx context.Context, projectId int64) (int64, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ProjectTotal(ctx, userId, projectId)
}

func (s *Service) Update(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if expense.AmountCents < 0 {
		return Expense{}, fmt.Errorf("expense amount must not be negative")
	}
	if err := s.repo.Update(ctx, userId, expense); err != nil {
		return Expense{}, err
	}
	return expense, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, id)
}
