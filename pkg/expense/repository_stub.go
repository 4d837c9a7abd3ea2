package expense

import (
	"context"
	"sort"
	"time"
)

type StubRepository struct {
	nextId int64
	data   map[int64]Expense
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int64]Expense{}}
}

func (s *StubRepository) Store(ctx context.Context, userId int, expense Expense) (int64, error) {
	s.nextId++
	expense.Id = s.nextId
	s.data[expense.Id] = expense
	return expense.Id, nil
}

func (s *StubRepository) Get(ctx context.Context, userId int, id int64) (Expense, error) {
	expense, ok := s.data[id]
	if !ok {
		return Expense{}, ErrNotFound
	}
	return expense, nil
}

func (s *StubRepository) GetByProject(ctx context.Context, userId int, projectId int64, from, to time.Time) ([]Expense, error) {
	expenses := make([]Expense, 0, len(s.data))
	for _, e := range s.data {
		if e.ProjectId != projectId {
			continue
		}
		if !from.IsZero() && e.IncurredDate.Before(from) {
			continue
		}
		if !to.IsZero() && e.IncurredDate.After(to) {
			continue
		}
		expenses = append(expenses, e)
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].IncurredDate.After(expenses[j].IncurredDate) })
	return expenses, nil
}

func (s *StubRepository) ProjectTotal(ctx context.Context, userId int, projectId int64) (int64, error) {
	var total int64
	for _, e := range s.data {
		if e.ProjectId == projectId {
			total += e.AmountCents
		}
	}
	return total, nil
}

func (s *StubRepository) Update(ctx context.Context, userId int, expense Expense) error {
	if _, ok := s.data[expense.Id]; !ok {
		return ErrNotFound
	}
	s.data[expense.Id] = expense
	return nil
}

func (s *StubRepository) Delete(ctx context.Context, userId int, id int64) error {
	if _, ok := s.data[id]; !ok {
		return ErrNotFound
	}
	delete(s.data, id)
	return nil
}
