package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/jobsight/jobsight/internal/event_bus"
	"github.com/jobsight/jobsight/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 1})
}

func testItem() Item {
	return Item{
		ProjectId:           10,
		Title:               "Pour foundation",
		StartTime:           time.Date(2023, 5, 18, 8, 0, 0, 0, time.UTC),
		EndTime:             time.Date(2023, 5, 18, 16, 0, 0, 0, time.UTC),
		CalendarSyncEnabled: true,
	}
}

func TestCreate_publishesCreatedEvent(t *testing.T) {
	bus := event_bus.NewEventBus()
	service := NewService(NewStubRepository(), bus)

	var received event_bus.ScheduleItemChanged
	event_bus.SubscribeTyped[event_bus.ScheduleItemChanged](bus, event_bus.ScheduleItemCreated,
		func(e event_bus.EventT[event_bus.ScheduleItemChanged]) error {
			received = e.Data
			return nil
		})

	created, err := service.Create(userContext(), testItem())

	require.NoError(t, err)
	assert.Equal(t, created.Id, received.ItemId)
	assert.Equal(t, int64(10), received.ProjectId)
	assert.Equal(t, "Pour foundation", received.Title)
}

func TestCreate_rejectsEndBeforeStart(t *testing.T) {
	service := NewService(NewStubRepository(), event_bus.NewEventBus())
	item := testItem()
	item.EndTime = item.StartTime.Add(-time.Hour)

	_, err := service.Create(userContext(), item)

	assert.Error(t, err)
}

func TestCreate_requiresUserContext(t *testing.T) {
	service := NewService(NewStubRepository(), event_bus.NewEventBus())

	_, err := service.Create(context.Background(), testItem())

	assert.ErrorIs(t, err, user.ErrNoUser)
}

func TestUpdate_keepsAdapterOwnedFields(t *testing.T) {
	repo := NewStubRepository()
	service := NewService(repo, event_bus.NewEventBus())
	ctx := userContext()

	created, err := service.Create(ctx, testItem())
	require.NoError(t, err)
	require.NoError(t, service.UpdateSyncState(ctx, created.Id, "event-1", "confirmed", ""))

	// a UI round-trip sends the item back without sync bookkeeping
	modified := *created
	modified.Title = "Pour foundation, block B"
	modified.GoogleEventId = ""
	modified.InviteStatus = ""

	updated, err := service.Update(ctx, modified)

	require.NoError(t, err)
	assert.Equal(t, "event-1", updated.GoogleEventId)
	assert.Equal(t, "confirmed", updated.InviteStatus)
	assert.Equal(t, "Pour foundation, block B", updated.Title)
}

func TestDelete_publishesRemovedEventWithGoogleEventId(t *testing.T) {
	bus := event_bus.NewEventBus()
	repo := NewStubRepository()
	service := NewService(repo, bus)
	ctx := userContext()

	created, err := service.Create(ctx, testItem())
	require.NoError(t, err)
	require.NoError(t, service.UpdateSyncState(ctx, created.Id, "event-1", "confirmed", ""))

	var received event_bus.ScheduleItemRemoved
	event_bus.SubscribeTyped[event_bus.ScheduleItemRemoved](bus, event_bus.ScheduleItemDeleted,
		func(e event_bus.EventT[event_bus.ScheduleItemRemoved]) error {
			received = e.Data
			return nil
		})

	require.NoError(t, service.Delete(ctx, created.Id))

	assert.Equal(t, created.Id, received.ItemId)
	assert.Equal(t, "event-1", received.GoogleEventId)
	_, err = service.Get(ctx, created.Id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplyRemoteChange_updatesExistingByGoogleEventId(t *testing.T) {
	bus := event_bus.NewEventBus()
	service := NewService(NewStubRepository(), bus)
	ctx := userContext()

	published := 0
	bus.Subscribe(event_bus.ScheduleItemUpdated, func(e event_bus.Event) error {
		published++
		return nil
	})

	created, err := service.Create(ctx, testItem())
	require.NoError(t, err)
	require.NoError(t, service.UpdateSyncState(ctx, created.Id, "event-1", "confirmed", ""))

	partial := Item{
		GoogleEventId: "event-1",
		Title:         "Pour foundation (moved)",
		StartTime:     created.StartTime.Add(24 * time.Hour),
		EndTime:       created.EndTime.Add(24 * time.Hour),
	}

	merged, err := service.ApplyRemoteChange(ctx, partial)

	require.NoError(t, err)
	assert.Equal(t, created.Id, merged.Id)
	assert.Equal(t, "Pour foundation (moved)", merged.Title)
	assert.Equal(t, int64(10), merged.ProjectId)
	// remote changes never echo back onto the bus
	assert.Equal(t, 0, published)
}

func TestApplyRemoteChange_insertsUnknownEventWithProject(t *testing.T) {
	service := NewService(NewStubRepository(), event_bus.NewEventBus())
	ctx := userContext()

	partial := testItem()
	partial.GoogleEventId = "event-9"

	merged, err := service.ApplyRemoteChange(ctx, partial)

	require.NoError(t, err)
	assert.NotZero(t, merged.Id)
	assert.True(t, merged.CalendarSyncEnabled)

	found, err := service.FindByGoogleEventId(ctx, "event-9")
	require.NoError(t, err)
	assert.Equal(t, merged.Id, found.Id)
}

func TestApplyRemoteChange_unknownEventWithoutProjectFails(t *testing.T) {
	service := NewService(NewStubRepository(), event_bus.NewEventBus())

	partial := testItem()
	partial.ProjectId = 0
	partial.GoogleEventId = "event-9"

	_, err := service.ApplyRemoteChange(userContext(), partial)

	assert.Error(t, err)
}

func TestListRange_expandsRecurringItems(t *testing.T) {
	service := NewService(NewStubRepository(), event_bus.NewEventBus())
	ctx := userContext()

	item := testItem()
	item.Recurrence = &RecurrencePattern{Frequency: Daily, Count: 3}
	_, err := service.Create(ctx, item)
	require.NoError(t, err)

	from := time.Date(2023, 5, 18, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 5, 25, 0, 0, 0, 0, time.UTC)
	occurrences, err := service.ListRange(ctx, from, to)

	require.NoError(t, err)
	require.Len(t, occurrences, 3)
	assert.Equal(t, time.Date(2023, 5, 19, 8, 0, 0, 0, time.UTC), occurrences[1].StartTime)
	assert.Equal(t, time.Date(2023, 5, 20, 8, 0, 0, 0, time.UTC), occurrences[2].StartTime)
}
