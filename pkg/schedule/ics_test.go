package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/jobsight/jobsight/internal/event_bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportProjectICS(t *testing.T) {
	service := NewService(NewStubRepository(), event_bus.NewEventBus())
	ctx := userContext()

	timed := testItem()
	timed.Recurrence = &RecurrencePattern{Frequency: Weekly, WeekDays: []string{"TH"}, Count: 4}
	_, err := service.Create(ctx, timed)
	require.NoError(t, err)

	allDay := testItem()
	allDay.Title = "Site inspection"
	allDay.AllDay = true
	allDay.StartTime = time.Date(2023, 5, 22, 0, 0, 0, 0, time.UTC)
	allDay.EndTime = time.Date(2023, 5, 22, 23, 59, 59, 0, time.UTC)
	_, err = service.Create(ctx, allDay)
	require.NoError(t, err)

	data, err := service.ExportProjectICS(ctx, 10)

	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Pour foundation")
	assert.Contains(t, out, "RRULE:FREQ=WEEKLY;BYDAY=TH;COUNT=4")
	assert.Contains(t, out, "SUMMARY:Site inspection")
	// all-day DTEND is the day after the inclusive end date
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20230522")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20230523")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
}

func TestExportProjectICS_emptyProject(t *testing.T) {
	service := NewService(NewStubRepository(), event_bus.NewEventBus())

	data, err := service.ExportProjectICS(userContext(), 42)

	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
	assert.NotContains(t, string(data), "BEGIN:VEVENT")
}
