package timeentry

import (
	"context"
	"sort"
)

type StubRepository struct {
	nextId int64
	data   map[int64]Entry
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int64]Entry{}}
}

func (s *StubRepository) Store(ctx context.Context, userId int, entry Entry) (int64, error) {
	s.nextId++
	entry.Id = s.nextId
	s.data[entry.Id] = entry
	return entry.Id, nil
}

func (s *StubRepository) Get(ctx context.Context, userId int, id int64) (Entry, error) {
	entry, ok := s.data[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

func (s *StubRepository) GetOpenByEmployee(ctx context.Context, userId int, employeeId int64) (Entry, error) {
	for _, entry := range s.data {
		if entry.EmployeeId == employeeId && entry.IsOpen() {
			return entry, nil
		}
	}
	return Entry{}, ErrNotFound
}

func (s *StubRepository) GetAll(ctx context.Context, userId int, filter Filter) ([]Entry, error) {
	entries := make([]Entry, 0, len(s.data))
	for _, entry := range s.data {
		if filter.ProjectId != 0 && entry.ProjectId != filter.ProjectId {
			continue
		}
		if filter.EmployeeId != 0 && entry.EmployeeId != filter.EmployeeId {
			continue
		}
		if !filter.From.IsZero() && entry.Start.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !entry.Start.Before(filter.To) {
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Start.After(entries[j].Start) })
	return entries, nil
}

func (s *StubRepository) Update(ctx context.Context, userId int, entry Entry) error {
	if _, ok := s.data[entry.Id]; !ok {
		return ErrNotFound
	}
	s.data[entry.Id] = entry
	return nil
}

func (s *StubRepository) Delete(ctx context.Context, userId int, id int64) error {
	if _, ok := s.data[id]; !ok {
		return ErrNotFound
	}
	delete(s.data, id)
	return nil
}
