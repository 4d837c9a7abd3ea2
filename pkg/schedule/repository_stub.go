package schedule

import (
	"context"
	"sort"
	"time"
)

type StubRepository struct {
	nextId int64
	data   map[int64]Item
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int64]Item{}}
}

func (s *StubRepository) Store(ctx context.Context, userId int, item Item) (int64, error) {
	s.nextId++
	item.Id = s.nextId
	s.data[item.Id] = item
	return item.Id, nil
}

func (s *StubRepository) Get(ctx context.Context, userId int, id int64) (Item, error) {
	item, ok := s.data[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return item, nil
}

func (s *StubRepository) GetByProject(ctx context.Context, userId int, projectId int64) ([]Item, error) {
	items := make([]Item, 0, len(s.data))
	for _, item := range s.data {
		if item.ProjectId == projectId {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StartTime.Before(items[j].StartTime) })
	return items, nil
}

func (s *StubRepository) GetRange(ctx context.Context, userId int, from, to time.Time) ([]Item, error) {
	items := make([]Item, 0, len(s.data))
	for _, item := range s.data {
		if !item.StartTime.After(to) && (item.EndTime.After(from) || item.Recurrence != nil) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StartTime.Before(items[j].StartTime) })
	return items, nil
}

func (s *StubRepository) FindByGoogleEventId(ctx context.Context, userId int, googleEventId string) (Item, error) {
	for _, item := range s.data {
		if item.GoogleEventId == googleEventId && googleEventId != "" {
			return item, nil
		}
	}
	return Item{}, ErrNotFound
}

func (s *StubRepository) Update(ctx context.Context, userId int, item Item) error {
	if _, ok := s.data[item.Id]; !ok {
		return ErrNotFound
	}
	s.data[item.Id] = item
	return nil
}

func (s *StubRepository) UpdateSyncFields(ctx context.Context, userId int, id int64, googleEventId, inviteStatus, lastSyncError string) error {
	item, ok := s.data[id]
	if !ok {
		return ErrNotFound
	}
	item.GoogleEventId = googleEventId
	item.InviteStatus = inviteStatus
	item.LastSyncError = lastSyncError
	s.data[id] = item
	return nil
}

func (s *StubRepository) Delete(ctx context.Context, userId int, id int64) error {
	if _, ok := s.data[id]; !ok {
		return ErrNotFound
	}
	delete(s.data, id)
	return nil
}
