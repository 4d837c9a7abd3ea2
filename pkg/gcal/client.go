package gcal

import (
	"context"

	gcal "google.golang.org/api/calendar/v3"
)

// CalendarAPI is the external collaborator contract the sync adapter talks
// to. It mirrors the Google Calendar events surface so tests can substitute a
// fake without touching the network.
type CalendarAPI interface {
	CreateEvent(ctx context.Context, calendarId string, event *gcal.Event) (*gcal.Event, error)
	UpdateEvent(ctx context.Context, calendarId, eventId string, event *gcal.Event) (*gcal.Event, error)
	DeleteEvent(ctx context.Context, calendarId, eventId string) error
	GetEvent(ctx context.Context, calendarId, eventId string) (*gcal.Event, error)
	SyncEvents(ctx context.Context, calendarId, syncToken string) (*gcal.Events, error)
}

type googleCalendarClient struct {
	service *gcal.Service
}

// NewCalendarClient wraps an authenticated calendar service in the
// collaborator interface.
func NewCalendarClient(service *gcal.Service) CalendarAPI {
	return &googleCalendarClient{service: service}
}

func (c *googleCalendarClient) CreateEvent(ctx context.Context, calendarId string, event *gcal.Event) (*gcal.Event, error) {
	return c.service.Events.Insert(calendarId, event).SendUpdates("all").Context(ctx).Do()
}

func (c *googleCalendarClient) UpdateEvent(ctx context.Context, calendarId, eventId string, event *gcal.Event) (*gcal.Event, error) {
	return c.service.Events.Update(calendarId, eventId, event).SendUpdates("all").Context(ctx).Do()
}

func (c *googleCalendarClient) DeleteEvent(ctx context.Context, calendarId, eventId string) error {
	return c.service.Events.Delete(calendarId, eventId).Context(ctx).Do()
}

func (c *googleCalendarClient) GetEvent(ctx context.Context, calendarId, eventId string) (*gcal.Event, error) {
	return c.service.Events.Get(calendarId, eventId).Context(ctx).Do()
}

func (c *googleCalendarClient) SyncEvents(ctx context.Context, calendarId, syncToken string) (*gcal.Events, error) {
	call := c.service.Events.List(calendarId).SingleEvents(false).Context(ctx)
	if syncToken != "" {
		call = call.SyncToken(syncToken)
	}
	return call.Do()
}
