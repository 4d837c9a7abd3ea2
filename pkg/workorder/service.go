package workorder

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

func (s *Service) Create(ctx context.Context, order WorkOrder) (WorkOrder, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return WorkOrder{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if order.Status == "" {
		order.Status = Draft
	}
	if !order.Status.IsValid() {
		return WorkOrder{}, fmt.Errorf("unknown work order status: %s", order.Status)
	}
	id, err := s.repo.Store(ctx, userId, order)
	if err != nil {
		return WorkOrder{}, fmt.Errorf("failed to store work order: %w", err)
	}
	order.Id = id
	return order, nil
}

func (s *Service) Get(ctx context.Context, id int64) (WorkOrder, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return WorkOrder{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *Service) ListByProject(ctx context.Context, projectId int64) ([]WorkOrder, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetByProject(ctx, userId, projectId)
}

// Update persists work order changes. A status change is validated against
// the transition table.
func (s *Service) Update(ctx context.Context, order WorkOrder) (WorkOrder, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return WorkOrder{}, fmt.Errorf("failed to get current user: %w", err)
	}
	existing, err := s.repo.Get(ctx, userId, order.Id)
	if err != nil {
		return WorkOrder{}, err
	}
	if order.Status != existing.Status && !existing.Status.CanTransitionTo(order.Status) {
		return WorkOrder{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, existing.Status, order.Status)
	}
	if err := s.repo.Update(ctx, userId, order); err != nil {
		return WorkOrder{}, err
	}
	return order, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, id)
}
