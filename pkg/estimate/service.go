package estimate

import (
	"context"
	"fmt"

	"github.com/jobsight/jobsight/pkg/user"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, estimate Estimate) (Estimate, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Estimate{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if estimate.Status == "" {
		estimate.Status = Draft
	}
	if !estimate.Status.IsValid() {
		return Estimate{}, fmt.Errorf("unknown estimate status: %s", estimate.Status)
	}

	id, err := s.repo.Store(ctx, userId, estimate)
	if err != nil {
		return Estimate{}, fmt.Errorf("failed to store estimate: %w", err)
	}
	estimate.Id = id

	for i, item := range estimate.LineItems {
		item.Position = i
		itemId, err := s.repo.StoreLineItem(ctx, id, item)
		if err != nil {
			return Estimate{}, fmt.Errorf("failed to store line item: %w", err)
		}
		estimate.LineItems[i].Id = itemId
		estimate.LineItems[i].Position = i
	}
	return estimate, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Estimate, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Estimate{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *Service) ListByProject(ctx context.Context, projectId int64) ([]Estimate, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetByProject(ctx, userId, projectId)
}

// Update persists header fields only; line items have their own operations.
func (s *Service) Update(ctx context.Context, estimate Estimate) (Estimate, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Estimate{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if !estimate.Status.IsValid() {
		return Estimate{}, fmt.Errorf("unknown estimate status: %s", estimate.Status)
	}
	if err := s.repo.Update(ctx, userId, estimate); err != nil {
		return Estimate{}, err
	}
	return s.repo.Get(ctx, userId, estimate.Id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, id)
}

func (s *Service) AddLineItem(ctx context.Context, estimateId int64, item LineItem) (Estimate, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Estimate{}, fmt.Errorf("failed to get current user: %w", err)
	}
	estimate, err := s.repo.Get(ctx, userId, estimateId)
	if err != nil {
		return Estimate{}, err
	}

	item.Position = len(estimate.LineItems)
	if _, err := s.repo.StoreLineItem(ctx, estimateId, item); err != nil {
		return Estimate{}, err
	}
	return s.repo.Get(ctx, userId, estimateId)
}

func (s *Service) UpdateLineItem(ctx context.Context, estimateId int64, item LineItem) (Estimate, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Estimate{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := s.repo.Get(ctx, userId, estimateId); err != nil {
		return Estimate{}, err
	}
	if err := s.repo.UpdateLineItem(ctx, estimateId, item); err != nil {
		return Estimate{}, err
	}
	return s.repo.Get(ctx, userId, estimateId)
}

func (s *Service) DeleteLineItem(ctx context.Context, estimateId, itemId int64) (Estimate, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Estimate{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := s.repo.Get(ctx, userId, estimateId); err != nil {
		return Estimate{}, err
	}
	if err := s.repo.DeleteLineItem(ctx, estimateId, itemId); err != nil {
		return Estimate{}, err
	}
	return s.repo.Get(ctx, userId, estimateId)
}

// ReorderLineItems expects the complete id list in the new order.
func (s *Service) ReorderLineItems(ctx context.Context, estimateId int64, itemIds []int64) (Estimate, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Estimate{}, fmt.Errorf("failed to get current user: %w", err)
	}
	estimate, err := s.repo.Get(ctx, userId, estimateId)
	if err != nil {
		return Estimate{}, err
	}
	if len(itemIds) != len(estimate.LineItems) {
		return Estimate{}, fmt.Errorf("reorder needs all %d line item ids, got %d", len(estimate.LineItems), len(itemIds))
	}
	if err := s.repo.ReorderLineItems(ctx, estimateId, itemIds); err != nil {
		return Estimate{}, err
	}
	return s.repo.Get(ctx, userId, estimateId)
}
