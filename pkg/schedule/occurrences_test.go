package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2023, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandOccurrences_nonRecurringPassThrough(t *testing.T) {
	inside := testItem()
	outside := testItem()
	outside.StartTime = time.Date(2023, 6, 10, 8, 0, 0, 0, time.UTC)
	outside.EndTime = time.Date(2023, 6, 10, 16, 0, 0, 0, time.UTC)

	result := expandOccurrences([]Item{inside, outside}, day(15), day(25))

	require.Len(t, result, 1)
	assert.Equal(t, inside.Title, result[0].Title)
}

func TestExpandOccurrences_windowEdgesAreInclusive(t *testing.T) {
	// The repository fetches with inclusive bounds; an item that exactly
	// touches a window edge must survive expansion too.
	endsAtFrom := testItem()
	endsAtFrom.Title = "Ends at window start"
	endsAtFrom.StartTime = day(14)
	endsAtFrom.EndTime = day(15)

	startsAtTo := testItem()
	startsAtTo.Title = "Starts at window end"
	startsAtTo.StartTime = day(25)
	startsAtTo.EndTime = day(26)

	result := expandOccurrences([]Item{endsAtFrom, startsAtTo}, day(15), day(25))

	require.Len(t, result, 2)
	assert.Equal(t, "Ends at window start", result[0].Title)
	assert.Equal(t, "Starts at window end", result[1].Title)
}

func TestExpandOccurrences_weeklyKeepsDuration(t *testing.T) {
	item := testItem()
	item.Recurrence = &RecurrencePattern{Frequency: Weekly, WeekDays: []string{"TH"}}

	result := expandOccurrences([]Item{item}, day(15), day(29))

	require.Len(t, result, 2)
	assert.Equal(t, time.Date(2023, 5, 18, 8, 0, 0, 0, time.UTC), result[0].StartTime)
	assert.Equal(t, time.Date(2023, 5, 25, 8, 0, 0, 0, time.UTC), result[1].StartTime)
	for _, occurrence := range result {
		assert.Equal(t, 8*time.Hour, occurrence.EndTime.Sub(occurrence.StartTime))
	}
}

func TestExpandOccurrences_endDateStopsSeries(t *testing.T) {
	item := testItem()
	item.Recurrence = &RecurrencePattern{Frequency: Daily, EndDate: "2023-05-19"}

	result := expandOccurrences([]Item{item}, day(15), day(29))

	require.Len(t, result, 2)
	assert.Equal(t, time.Date(2023, 5, 19, 8, 0, 0, 0, time.UTC), result[1].StartTime)
}

func TestExpandOccurrences_monthlyByMonthDay(t *testing.T) {
	item := testItem()
	item.StartTime = time.Date(2023, 5, 15, 9, 0, 0, 0, time.UTC)
	item.EndTime = time.Date(2023, 5, 15, 10, 0, 0, 0, time.UTC)
	item.Recurrence = &RecurrencePattern{Frequency: Monthly, MonthDay: 15, Count: 3}

	result := expandOccurrences([]Item{item}, day(1), time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, result, 3)
	assert.Equal(t, time.Date(2023, 6, 15, 9, 0, 0, 0, time.UTC), result[1].StartTime)
	assert.Equal(t, time.Date(2023, 7, 15, 9, 0, 0, 0, time.UTC), result[2].StartTime)
}

func TestExpandOccurrences_brokenPatternKeptAsSingleOccurrence(t *testing.T) {
	item := testItem()
	item.Recurrence = &RecurrencePattern{Frequency: "hourly"}

	result := expandOccurrences([]Item{item}, day(15), day(25))

	require.Len(t, result, 1)
	assert.Equal(t, item.StartTime, result[0].StartTime)
}
