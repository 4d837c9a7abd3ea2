package estimate

import (
	"context"
	"sort"
)

type StubRepository struct {
	nextId     int64
	nextItemId int64
	data       map[int64]Estimate
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int64]Estimate{}}
}

func (s *StubRepository) Store(ctx context.Context, userId int, estimate Estimate) (int64, error) {
	s.nextId++
	estimate.Id = s.nextId
	estimate.LineItems = nil
	s.data[estimate.Id] = estimate
	return estimate.Id, nil
}

func (s *StubRepository) Get(ctx context.Context, userId int, id int64) (Estimate, error) {
	estimate, ok := s.data[id]
	if !ok {
		return Estimate{}, ErrNotFound
	}
	return estimate, nil
}

func (s *StubRepository) GetByProject(ctx context.Context, userId int, projectId int64) ([]Estimate, error) {
	estimates := make([]Estimate, 0, len(s.data))
	for _, e := range s.data {
		if e.ProjectId == projectId {
			estimates = append(estimates, e)
		}
	}
	sort.Slice(estimates, func(i, j int) bool { return estimates[i].Id < estimates[j].Id })
	return estimates, nil
}

func (s *StubRepository) Update(ctx context.Context, userId int, estimate Estimate) error {
	existing, ok := s.data[estimate.Id]
	if !ok {
		return ErrNotFound
	}
	estimate.LineItems = existing.LineItems
	s.data[estimate.Id] = estimate
	return nil
}

func (s *StubRepository) Delete(ctx context.Context, userId int, id int64) error {
	if _, ok := s.data[id]; !ok {
		return ErrNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *StubRepository) StoreLineItem(ctx context.Context, estimateId int64, item LineItem) (int64, error) {
	estimate, ok := s.data[estimateId]
	if !ok {
		return 0, ErrNotFound
	}
	s.nextItemId++
	item.Id = s.nextItemId
	estimate.LineItems = append(estimate.LineItems, item)
	s.data[estimateId] = estimate
	return item.Id, nil
}

func (s *StubRepository) UpdateLineItem(ctx context.Context, estimateId int64, item LineItem) error {
	estimate, ok := s.data[estimateId]
	if !ok {
		return ErrNotFound
	}
	for i, existing := range estimate.LineItems {
		if existing.Id == item.Id {
			item.Position = existing.Position
			estimate.LineItems[i] = item
			s.data[estimateId] = estimate
			return nil
		}
	}
	return ErrLineItemNotFound
}

func (s *StubRepository) DeleteLineItem(ctx context.Context, estimateId, itemId int64) error {
	estimate, ok := s.data[estimateId]
	if !ok {
		return ErrNotFound
	}
	for i, existing := range estimate.LineItems {
		if existing.Id == itemId {
			estimate.LineItems = append(estimate.LineItems[:i], estimate.LineItems[i+1:]...)
			s.data[estimateId] = estimate
			return nil
		}
	}
	return ErrLineItemNotFound
}

func (s *StubRepository) ReorderLineItems(ctx context.Context, estimateId int64, itemIds []int64) error {
	estimate, ok := s.data[estimateId]
	if !ok {
		return ErrNotFound
	}
	byId := make(map[int64]LineItem, len(estimate.LineItems))
	for _, item := range estimate.LineItems {
		byId[item.Id] = item
	}
	reordered := make([]LineItem, 0, len(itemIds))
	for position, itemId := range itemIds {
		item, ok := byId[itemId]
		if !ok {
			return ErrLineItemNotFound
		}
		item.Position = position
		reordered = append(reordered, item)
	}
	estimate.LineItems = reordered
	s.data[estimateId] = estimate
	return nil
}
