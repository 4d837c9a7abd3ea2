package gcal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobsight/jobsight/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"
)

func newTestAdapter() (*SyncAdapter, *StubCalendarAPI) {
	api := NewStubCalendarAPI()
	adapter := NewSyncAdapter(api, Config{TimeZone: "America/New_York", DefaultCalendarId: "primary"})
	return adapter, api
}

func timedItem() schedule.Item {
	return schedule.Item{
		Id:                  1,
		ProjectId:           10,
		Title:               "Pour foundation",
		Description:         "Block A",
		StartTime:           time.Date(2023, 5, 18, 8, 0, 0, 0, time.UTC),
		EndTime:             time.Date(2023, 5, 18, 16, 0, 0, 0, time.UTC),
		CalendarSyncEnabled: true,
	}
}

func TestCreateOrUpdateEvent_disabledItemIsPassedThrough(t *testing.T) {
	adapter, api := newTestAdapter()
	item := timedItem()
	item.CalendarSyncEnabled = false
	original := item

	err := adapter.CreateOrUpdateEvent(context.Background(), &item, "")

	require.NoError(t, err)
	assert.Equal(t, original, item)
	assert.Equal(t, 0, api.CreateCalls)
	assert.Equal(t, 0, api.UpdateCalls)
}

func TestCreateOrUpdateEvent_createsWhenNoEventId(t *testing.T) {
	adapter, api := newTestAdapter()
	item := timedItem()

	err := adapter.CreateOrUpdateEvent(context.Background(), &item, "")

	require.NoError(t, err)
	assert.Equal(t, 1, api.CreateCalls)
	assert.Equal(t, 0, api.UpdateCalls)
	assert.Equal(t, "event-1", item.GoogleEventId)
	assert.Equal(t, "confirmed", item.InviteStatus)
	assert.Empty(t, item.LastSyncError)
}

func TestCreateOrUpdateEvent_updatesWhenEventIdPresent(t *testing.T) {
	adapter, api := newTestAdapter()
	api.Put("primary", &gcal.Event{Id: "existing-id", Status: "confirmed"})
	item := timedItem()
	item.GoogleEventId = "existing-id"

	err := adapter.CreateOrUpdateEvent(context.Background(), &item, "")

	require.NoError(t, err)
	assert.Equal(t, 0, api.CreateCalls)
	assert.Equal(t, 1, api.UpdateCalls)
	assert.Equal(t, "existing-id", item.GoogleEventId)
}

func TestCreateOrUpdateEvent_failureSetsLastSyncError(t *testing.T) {
	adapter, api := newTestAdapter()
	api.FailWith = errors.New("quota exceeded")
	item := timedItem()

	err := adapter.CreateOrUpdateEvent(context.Background(), &item, "")

	require.Error(t, err)
	assert.Equal(t, "quota exceeded", err.Error())
	assert.Equal(t, "quota exceeded", item.LastSyncError)
	assert.Empty(t, item.GoogleEventId)
}

func TestCreateOrUpdateEvent_successClearsPreviousSyncError(t *testing.T) {
	adapter, _ := newTestAdapter()
	item := timedItem()
	item.LastSyncError = "quota exceeded"

	err := adapter.CreateOrUpdateEvent(context.Background(), &item, "")

	require.NoError(t, err)
	assert.Empty(t, item.LastSyncError)
}

func TestCreateOrUpdateEvent_usesDefaultCalendarWhenNoneGiven(t *testing.T) {
	adapter, api := newTestAdapter()
	item := timedItem()

	err := adapter.CreateOrUpdateEvent(context.Background(), &item, "")

	require.NoError(t, err)
	assert.NotNil(t, api.Event("primary", item.GoogleEventId))
}

func TestDeleteEvent_noEventIdSkipsCall(t *testing.T) {
	adapter, api := newTestAdapter()
	item := timedItem()

	deleted := adapter.DeleteEvent(context.Background(), &item, "")

	assert.False(t, deleted)
	assert.Equal(t, 0, api.DeleteCalls)
}

func TestDeleteEvent_removesRemoteEvent(t *testing.T) {
	adapter, api := newTestAdapter()
	api.Put("primary", &gcal.Event{Id: "existing-id"})
	item := timedItem()
	item.GoogleEventId = "existing-id"

	deleted := adapter.DeleteEvent(context.Background(), &item, "")

	assert.True(t, deleted)
	assert.Nil(t, api.Event("primary", "existing-id"))
}

func TestDeleteEvent_failureReturnsFalse(t *testing.T) {
	adapter, api := newTestAdapter()
	api.FailWith = errors.New("backend unavailable")
	item := timedItem()
	item.GoogleEventId = "existing-id"

	deleted := adapter.DeleteEvent(context.Background(), &item, "")

	assert.False(t, deleted)
	assert.Equal(t, 1, api.DeleteCalls)
}

func TestSyncAllEvents_preservesOrderAndSkipsDisabled(t *testing.T) {
	adapter, api := newTestAdapter()
	first := timedItem()
	first.Id = 1
	first.Title = "Framing"
	disabled := timedItem()
	disabled.Id = 2
	disabled.Title = "Inspection"
	disabled.CalendarSyncEnabled = false
	third := timedItem()
	third.Id = 3
	third.Title = "Roofing"

	result := adapter.SyncAllEvents(context.Background(), []schedule.Item{first, disabled, third}, "")

	require.Len(t, result, 3)
	assert.Equal(t, int64(1), result[0].Id)
	assert.Equal(t, int64(2), result[1].Id)
	assert.Equal(t, int64(3), result[2].Id)
	assert.Equal(t, disabled, result[1])
	assert.NotEmpty(t, result[0].GoogleEventId)
	assert.NotEmpty(t, result[2].GoogleEventId)
	assert.Equal(t, 2, api.CreateCalls)
}

func TestSyncAllEvents_failingItemKeepsOriginalAndContinues(t *testing.T) {
	api := NewStubCalendarAPI()
	adapter := NewSyncAdapter(&failOnceAPI{StubCalendarAPI: api}, Config{DefaultCalendarId: "primary"})
	first := timedItem()
	first.Id = 1
	second := timedItem()
	second.Id = 2

	result := adapter.SyncAllEvents(context.Background(), []schedule.Item{first, second}, "")

	require.Len(t, result, 2)
	assert.Equal(t, first, result[0])
	assert.NotEmpty(t, result[1].GoogleEventId)
}

func TestHandleWebhook_ignoresNonExistsState(t *testing.T) {
	adapter, api := newTestAdapter()

	item := adapter.HandleWebhook(context.Background(), WebhookPayload{
		CalendarId:    "primary",
		EventId:       "existing-id",
		ResourceState: "deleted",
	})

	assert.Nil(t, item)
	assert.Equal(t, 0, api.GetCalls)
}

func TestHandleWebhook_ignoresMissingEventId(t *testing.T) {
	adapter, api := newTestAdapter()

	item := adapter.HandleWebhook(context.Background(), WebhookPayload{
		CalendarId:    "primary",
		ResourceState: "exists",
	})

	assert.Nil(t, item)
	assert.Equal(t, 0, api.GetCalls)
}

func TestHandleWebhook_fetchFailureReturnsNil(t *testing.T) {
	adapter, api := newTestAdapter()
	api.FailWith = errors.New("backend unavailable")

	item := adapter.HandleWebhook(context.Background(), WebhookPayload{
		CalendarId:    "primary",
		EventId:       "existing-id",
		ResourceState: "exists",
	})

	assert.Nil(t, item)
	assert.Equal(t, 1, api.GetCalls)
}

func TestHandleWebhook_mapsFetchedEvent(t *testing.T) {
	adapter, api := newTestAdapter()
	api.Put("primary", &gcal.Event{
		Id:      "existing-id",
		Summary: "Pour foundation",
		Status:  "confirmed",
		Start:   &gcal.EventDateTime{DateTime: "2023-05-18T08:00:00Z"},
		End:     &gcal.EventDateTime{DateTime: "2023-05-18T16:00:00Z"},
	})

	item := adapter.HandleWebhook(context.Background(), WebhookPayload{
		CalendarId:    "primary",
		EventId:       "existing-id",
		ResourceState: "exists",
		ProjectId:     10,
	})

	require.NotNil(t, item)
	assert.Equal(t, "existing-id", item.GoogleEventId)
	assert.Equal(t, "Pour foundation", item.Title)
	assert.Equal(t, int64(10), item.ProjectId)
	assert.Equal(t, "confirmed", item.InviteStatus)
}

// failOnceAPI fails the first create call and delegates afterwards.
type failOnceAPI struct {
	*StubCalendarAPI
	failed bool
}

func (f *failOnceAPI) CreateEvent(ctx context.Context, calendarId string, event *gcal.Event) (*gcal.Event, error) {
	if !f.failed {
		f.failed = true
		return nil, errors.New("quota exceeded")
	}
	return f.StubCalendarAPI.CreateEvent(ctx, calendarId, event)
}
