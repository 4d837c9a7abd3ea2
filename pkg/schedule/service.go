package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jobsight/jobsight/internal/event_bus"
	"github.com/jobsight/jobsight/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service struct {
	repo Repository
	bus  *event_bus.EventBus
}

func NewService(repo Repository, bus *event_bus.EventBus) *Service {
	return &Service{repo: repo, bus: bus}
}

func (s *Service) Create(ctx context.Context, item Item) (*Item, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if item.EndTime.Before(item.StartTime) {
		return nil, fmt.Errorf("schedule item ends before it starts")
	}

	id, err := s.repo.Store(ctx, userId, item)
	if err != nil {
		return nil, fmt.Errorf("failed to store schedule item: %w", err)
	}
	item.Id = id

	s.publish(ctx, event_bus.ScheduleItemCreated, event_bus.ScheduleItemChanged{
		ItemId:    item.Id,
		ProjectId: item.ProjectId,
		Title:     item.Title,
		StartTime: item.StartTime,
		EndTime:   item.EndTime,
	})
	return &item, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Item, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Item{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *Service) ListByProject(ctx context.Context, projectId int64) ([]Item, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetByProject(ctx, userId, projectId)
}

// ListRange returns concrete occurrences between from and to, expanding
// recurring items.
func (s *Service) ListRange(ctx context.Context, from, to time.Time) ([]Item, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	items, err := s.repo.GetRange(ctx, userId, from, to)
	if err != nil {
		return nil, err
	}
	return expandOccurrences(items, from, to), nil
}

func (s *Service) Update(ctx context.Context, item Item) (*Item, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if item.EndTime.Before(item.StartTime) {
		return nil, fmt.Errorf("schedule item ends before it starts")
	}

	// Sync bookkeeping fields are owned by the adapter; carry them over from
	// the stored row so a UI round-trip cannot clobber them.
	existing, err := s.repo.Get(ctx, userId, item.Id)
	if err != nil {
		return nil, err
	}
	item.GoogleEventId = existing.GoogleEventId
	item.InviteStatus = existing.InviteStatus
	item.LastSyncError = existing.LastSyncError

	if err := s.repo.Update(ctx, userId, item); err != nil {
		return nil, err
	}

	s.publish(ctx, event_bus.ScheduleItemUpdated, event_bus.ScheduleItemChanged{
		ItemId:    item.Id,
		ProjectId: item.ProjectId,
		Title:     item.Title,
		StartTime: item.StartTime,
		EndTime:   item.EndTime,
	})
	return &item, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	item, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userId, id); err != nil {
		return err
	}

	s.publish(ctx, event_bus.ScheduleItemDeleted, event_bus.ScheduleItemRemoved{
		ItemId:        item.Id,
		ProjectId:     item.ProjectId,
		GoogleEventId: item.GoogleEventId,
	})
	return nil
}

// UpdateSyncState persists the adapter-owned fields without touching anything
// else and without publishing bus events.
func (s *Service) UpdateSyncState(ctx context.Context, id int64, googleEventId, inviteStatus, lastSyncError string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.UpdateSyncFields(ctx, userId, id, googleEventId, inviteStatus, lastSyncError)
}

func (s *Service) FindByGoogleEventId(ctx context.Context, googleEventId string) (Item, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Item{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.FindByGoogleEventId(ctx, userId, googleEventId)
}

// ApplyRemoteChange merges a partial item produced from a Google webhook into
// storage: update when a row with the same google_event_id exists, insert
// otherwise. It deliberately bypasses bus events so a remote change never
// triggers a write back to Google.
func (s *Service) ApplyRemoteChange(ctx context.Context, partial Item) (Item, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Item{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if partial.GoogleEventId == "" {
		return Item{}, fmt.Errorf("remote change without google event id")
	}

	existing, err := s.repo.FindByGoogleEventId(ctx, userId, partial.GoogleEventId)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Item{}, err
		}
		if partial.ProjectId == 0 {
			return Item{}, fmt.Errorf("remote change for unknown event %s has no project", partial.GoogleEventId)
		}
		partial.CalendarSyncEnabled = true
		id, err := s.repo.Store(ctx, userId, partial)
		if err != nil {
			return Item{}, err
		}
		partial.Id = id
		return partial, nil
	}

	existing.Title = partial.Title
	existing.Description = partial.Description
	existing.StartTime = partial.StartTime
	existing.EndTime = partial.EndTime
	existing.AllDay = partial.AllDay
	existing.Recurrence = partial.Recurrence
	existing.InviteStatus = partial.InviteStatus
	if partial.SendInvite {
		existing.SendInvite = true
	}
	if err := s.repo.Update(ctx, userId, existing); err != nil {
		return Item{}, err
	}
	return existing, nil
}

func (s *Service) publish(ctx context.Context, eventType event_bus.EventType, payload any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, payload)); err != nil {
		// Sync failures are recorded on the item by the subscriber; the CRUD
		// operation itself already succeeded.
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}
