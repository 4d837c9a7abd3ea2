package workorder

import (
	"context"
	"sort"
)

type StubRepository struct {
	nextId int64
	data   map[int64]WorkOrder
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int64]WorkOrder{}}
}

func (s *StubRepository) Store(ctx context.Context, userId int, order WorkOrder) (int64, error) {
	s.nextId++
	order.Id = s.nextId
	s.data[order.Id] = order
	return order.Id, nil
}

func (s *StubRepository) Get(ctx context.Context, userId int, id int64) (WorkOrder, error) {
	order, ok := s.data[id]
	if !ok {
		return WorkOrder{}, ErrNotFound
	}
	return order, nil
}

func (s *StubRepository) GetByProject(ctx context.Context, userId int, projectId int64) ([]WorkOrder, error) {
	orders := make([]WorkOrder, 0, len(s.data))
	for _, o := range s.data {
		if o.ProjectId == projectId {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].Id < orders[j].Id })
	return orders, nil
}

func (s *StubRepository) Update(ctx context.Context, userId int, order WorkOrder) error {
	if _, ok := s.data[order.Id]; !ok {
		return ErrNotFound
	}
	s.data[order.Id] = order
	return nil
}

func (s *StubRepository) Delete(ctx context.Context, userId int, id int64) error {
	if _, ok := s.data[id]; !ok {
		return ErrNotFound
	}
	delete(s.data, id)
	return nil
}
