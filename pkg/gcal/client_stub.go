package gcal

import (
	"context"
	"fmt"

	gcal "google.golang.org/api/calendar/v3"
)

// StubCalendarAPI is an in-memory CalendarAPI used by tests. Events are keyed
// by id per calendar, and each method keeps a call counter so tests can verify
// how the adapter talked to the API.
type StubCalendarAPI struct {
	events map[string]map[string]*gcal.Event
	nextId int

	CreateCalls int
	UpdateCalls int
	DeleteCalls int
	GetCalls    int
	SyncCalls   int

	// FailWith makes every call return this error.
	FailWith error
	// CreatedStatus is the status assigned to newly created events.
	CreatedStatus string
}

func NewStubCalendarAPI() *StubCalendarAPI {
	return &StubCalendarAPI{
		events:        make(map[string]map[string]*gcal.Event),
		CreatedStatus: "confirmed",
	}
}

func (s *StubCalendarAPI) CreateEvent(ctx context.Context, calendarId string, event *gcal.Event) (*gcal.Event, error) {
	s.CreateCalls++
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.nextId++
	stored := *event
	stored.Id = fmt.Sprintf("event-%d", s.nextId)
	stored.Status = s.CreatedStatus
	s.calendar(calendarId)[stored.Id] = &stored
	return &stored, nil
}

func (s *StubCalendarAPI) UpdateEvent(ctx context.Context, calendarId, eventId string, event *gcal.Event) (*gcal.Event, error) {
	s.UpdateCalls++
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	existing, ok := s.calendar(calendarId)[eventId]
	if !ok {
		return nil, fmt.Errorf("event %s not found", eventId)
	}
	stored := *event
	stored.Id = eventId
	stored.Status = existing.Status
	s.calendar(calendarId)[eventId] = &stored
	return &stored, nil
}

func (s *StubCalendarAPI) DeleteEvent(ctx context.Context, calendarId, eventId string) error {
	s.DeleteCalls++
	if s.FailWith != nil {
		return s.FailWith
	}
	if _, ok := s.calendar(calendarId)[eventId]; !ok {
		return fmt.Errorf("event %s not found", eventId)
	}
	delete(s.calendar(calendarId), eventId)
	return nil
}

func (s *StubCalendarAPI) GetEvent(ctx context.Context, calendarId, eventId string) (*gcal.Event, error) {
	s.GetCalls++
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	event, ok := s.calendar(calendarId)[eventId]
	if !ok {
		return nil, fmt.Errorf("event %s not found", eventId)
	}
	return event, nil
}

func (s *StubCalendarAPI) SyncEvents(ctx context.Context, calendarId, syncToken string) (*gcal.Events, error) {
	s.SyncCalls++
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	result := &gcal.Events{NextSyncToken: "stub-sync-token"}
	for _, event := range s.calendar(calendarId) {
		result.Items = append(result.Items, event)
	}
	return result, nil
}

// Event returns the stored event or nil.
func (s *StubCalendarAPI) Event(calendarId, eventId string) *gcal.Event {
	return s.calendar(calendarId)[eventId]
}

// Put stores an event directly, for seeding webhook tests.
func (s *StubCalendarAPI) Put(calendarId string, event *gcal.Event) {
	s.calendar(calendarId)[event.Id] = event
}

func (s *StubCalendarAPI) calendar(calendarId string) map[string]*gcal.Event {
	if s.events[calendarId] == nil {
		s.events[calendarId] = make(map[string]*gcal.Event)
	}
	return s.events[calendarId]
}
