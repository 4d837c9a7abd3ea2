package gcal

import (
	"testing"
	"time"

	"github.com/jobsight/jobsight/pkg/schedule"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"
)

func TestEventFromItem_timedRoundTrip(t *testing.T) {
	item := timedItem()

	event := eventFromItem(item, "America/New_York")
	back := itemFromEvent(event)

	assert.Equal(t, item.Title, back.Title)
	assert.Equal(t, item.Description, back.Description)
	assert.True(t, back.StartTime.Equal(item.StartTime))
	assert.True(t, back.EndTime.Equal(item.EndTime))
	assert.False(t, back.AllDay)
}

func TestEventFromItem_timedCarriesTimeZone(t *testing.T) {
	event := eventFromItem(timedItem(), "America/New_York")

	require.NotNil(t, event.Start)
	require.NotNil(t, event.End)
	assert.Equal(t, "America/New_York", event.Start.TimeZone)
	assert.Equal(t, "America/New_York", event.End.TimeZone)
	assert.Empty(t, event.Start.Date)
	assert.Empty(t, event.End.Date)
}

func TestEventFromItem_allDayUsesDateOnlyFields(t *testing.T) {
	item := timedItem()
	item.AllDay = true
	item.StartTime = time.Date(2023, 5, 18, 0, 0, 0, 0, time.UTC)
	item.EndTime = time.Date(2023, 5, 18, 23, 59, 59, 0, time.UTC)

	event := eventFromItem(item, "America/New_York")

	require.NotNil(t, event.Start)
	require.NotNil(t, event.End)
	assert.Equal(t, "2023-05-18", event.Start.Date)
	assert.Equal(t, "2023-05-18", event.End.Date)
	assert.Empty(t, event.Start.DateTime)
	assert.Empty(t, event.End.DateTime)
}

func TestItemFromEvent_allDaySynthesizesDayBounds(t *testing.T) {
	event := &gcal.Event{
		Id:      "event-1",
		Summary: "Site walk",
		Start:   &gcal.EventDateTime{Date: "2023-05-18"},
		End:     &gcal.EventDateTime{Date: "2023-05-18"},
	}

	item := itemFromEvent(event)

	assert.True(t, item.AllDay)
	assert.Equal(t, time.Date(2023, 5, 18, 0, 0, 0, 0, time.UTC), item.StartTime)
	assert.Equal(t, time.Date(2023, 5, 18, 23, 59, 59, 0, time.UTC), item.EndTime)
}

func TestEventFromItem_attendeesRequireSendInvite(t *testing.T) {
	item := timedItem()
	item.AssigneeId = "employee@example.com"
	item.SendInvite = true

	event := eventFromItem(item, "UTC")

	require.Len(t, event.Attendees, 1)
	assert.Equal(t, "employee@example.com", event.Attendees[0].Email)
	assert.Equal(t, "needsAction", event.Attendees[0].ResponseStatus)

	item.SendInvite = false
	event = eventFromItem(item, "UTC")
	assert.Empty(t, event.Attendees)
}

func TestItemFromEvent_unparseableDateTimeIsWarnedAbout(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	item := itemFromEvent(&gcal.Event{
		Id:    "evt-bad",
		Start: &gcal.EventDateTime{DateTime: "not-a-timestamp"},
		End:   &gcal.EventDateTime{DateTime: "2023-05-18T09:00:00Z"},
	})

	assert.True(t, item.StartTime.IsZero())
	assert.Equal(t, time.Date(2023, 5, 18, 9, 0, 0, 0, time.UTC), item.EndTime)
	require.NotEmpty(t, hook.Entries)
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "evt-bad")
}

func TestItemFromEvent_attendeePresenceSetsSendInvite(t *testing.T) {
	event := &gcal.Event{
		Id:        "event-1",
		Start:     &gcal.EventDateTime{DateTime: "2023-05-18T08:00:00Z"},
		End:       &gcal.EventDateTime{DateTime: "2023-05-18T16:00:00Z"},
		Attendees: []*gcal.EventAttendee{{Email: "employee@example.com"}},
	}

	item := itemFromEvent(event)

	assert.True(t, item.SendInvite)
	assert.Empty(t, item.AssigneeId)
}

func TestBuildRecurrenceRule(t *testing.T) {
	tests := []struct {
		name    string
		pattern schedule.RecurrencePattern
		want    string
	}{
		{
			name:    "daily open-ended",
			pattern: schedule.RecurrencePattern{Frequency: schedule.Daily},
			want:    "RRULE:FREQ=DAILY",
		},
		{
			name:    "weekly with days and count",
			pattern: schedule.RecurrencePattern{Frequency: schedule.Weekly, WeekDays: []string{"TU"}, Count: 10},
			want:    "RRULE:FREQ=WEEKLY;BYDAY=TU;COUNT=10",
		},
		{
			name:    "weekly multiple days",
			pattern: schedule.RecurrencePattern{Frequency: schedule.Weekly, WeekDays: []string{"MO", "WE", "FR"}},
			want:    "RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR",
		},
		{
			name:    "monthly by day with interval",
			pattern: schedule.RecurrencePattern{Frequency: schedule.Monthly, MonthDay: 15, Interval: 2},
			want:    "RRULE:FREQ=MONTHLY;BYMONTHDAY=15;INTERVAL=2",
		},
		{
			name:    "end date takes precedence over count",
			pattern: schedule.RecurrencePattern{Frequency: schedule.Daily, EndDate: "2023-12-31", Count: 5},
			want:    "RRULE:FREQ=DAILY;UNTIL=20231231T235959Z",
		},
		{
			name:    "unknown frequency",
			pattern: schedule.RecurrencePattern{Frequency: "hourly"},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildRecurrenceRule(tt.pattern))
		})
	}
}

func TestParseRecurrenceRule(t *testing.T) {
	pattern := parseRecurrenceRule("RRULE:FREQ=WEEKLY;BYDAY=TU;COUNT=10")

	assert.Equal(t, schedule.Weekly, pattern.Frequency)
	assert.Equal(t, []string{"TU"}, pattern.WeekDays)
	assert.Equal(t, 10, pattern.Count)
}

func TestParseRecurrenceRule_untilBecomesEndDate(t *testing.T) {
	pattern := parseRecurrenceRule("RRULE:FREQ=DAILY;UNTIL=20231231T235959Z")

	assert.Equal(t, schedule.Daily, pattern.Frequency)
	assert.Equal(t, "2023-12-31", pattern.EndDate)
	assert.Zero(t, pattern.Count)
}

func TestParseRecurrenceRule_unknownFrequencyLeftUnset(t *testing.T) {
	pattern := parseRecurrenceRule("RRULE:FREQ=HOURLY;INTERVAL=3")

	assert.Empty(t, pattern.Frequency)
	assert.Equal(t, 3, pattern.Interval)
}

func TestRecurrenceRoundTrip(t *testing.T) {
	original := schedule.RecurrencePattern{Frequency: schedule.Weekly, WeekDays: []string{"TU"}, Count: 10}

	rule := buildRecurrenceRule(original)
	parsed := parseRecurrenceRule(rule)

	assert.Equal(t, original, parsed)
}
