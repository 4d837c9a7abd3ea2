package gcal

import (
	"errors"

	"github.com/jobsight/jobsight/internal/event_bus"
	"github.com/jobsight/jobsight/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

// Subscriber listens for schedule item changes on the event bus and mirrors
// them to Google Calendar. The schedule package stays unaware of Google; the
// coupling lives here.
type Subscriber struct {
	service         Service
	scheduleService *schedule.Service
}

func NewSubscriber(service Service, scheduleService *schedule.Service) *Subscriber {
	return &Subscriber{service: service, scheduleService: scheduleService}
}

// Register wires the subscriber to the bus and returns an unsubscribe
// function that removes all handlers.
func (s *Subscriber) Register(bus *event_bus.EventBus) func() {
	unsubCreated := event_bus.SubscribeTyped[event_bus.ScheduleItemChanged](bus, event_bus.ScheduleItemCreated, s.onItemChanged)
	unsubUpdated := event_bus.SubscribeTyped[event_bus.ScheduleItemChanged](bus, event_bus.ScheduleItemUpdated, s.onItemChanged)
	unsubDeleted := event_bus.SubscribeTyped[event_bus.ScheduleItemRemoved](bus, event_bus.ScheduleItemDeleted, s.onItemDeleted)
	return func() {
		unsubCreated()
		unsubUpdated()
		unsubDeleted()
	}
}

func (s *Subscriber) onItemChanged(e event_bus.EventT[event_bus.ScheduleItemChanged]) error {
	ctx := e.Context()

	item, err := s.scheduleService.Get(ctx, e.Data.ItemId)
	if err != nil {
		return err
	}
	if !item.CalendarSyncEnabled {
		return nil
	}

	adapter, err := s.service.AdapterForCurrentUser(ctx)
	if errors.Is(err, ErrUnauthenticated) {
		log.Debugf("Google Calendar not connected, skipping sync for schedule item %d", item.Id)
		return nil
	} else if err != nil {
		return err
	}

	syncErr := adapter.CreateOrUpdateEvent(ctx, &item, "")
	if err := s.scheduleService.UpdateSyncState(ctx, item.Id, item.GoogleEventId, item.InviteStatus, item.LastSyncError); err != nil {
		log.Errorf("failed to persist sync state for schedule item %d: %v", item.Id, err)
		return err
	}
	return syncErr
}

func (s *Subscriber) onItemDeleted(e event_bus.EventT[event_bus.ScheduleItemRemoved]) error {
	ctx := e.Context()
	if e.Data.GoogleEventId == "" {
		return nil
	}

	adapter, err := s.service.AdapterForCurrentUser(ctx)
	if errors.Is(err, ErrUnauthenticated) {
		return nil
	} else if err != nil {
		return err
	}

	item := schedule.Item{Id: e.Data.ItemId, GoogleEventId: e.Data.GoogleEventId}
	adapter.DeleteEvent(ctx, &item, "")
	return nil
}
