package schedule

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/teambition/rrule-go"
)

var weekdayCodes = map[string]rrule.Weekday{
	"MO": rrule.MO,
	"TU": rrule.TU,
	"WE": rrule.WE,
	"TH": rrule.TH,
	"FR": rrule.FR,
	"SA": rrule.SA,
	"SU": rrule.SU,
}

var frequencies = map[Frequency]rrule.Frequency{
	Daily:   rrule.DAILY,
	Weekly:  rrule.WEEKLY,
	Monthly: rrule.MONTHLY,
	Yearly:  rrule.YEARLY,
}

// recurrenceRule builds an rrule anchored at the item's start time.
func recurrenceRule(item Item) (*rrule.RRule, error) {
	pattern := item.Recurrence
	freq, ok := frequencies[pattern.Frequency]
	if !ok {
		return nil, fmt.Errorf("unknown recurrence frequency: %q", pattern.Frequency)
	}

	opt := rrule.ROption{
		Freq:    freq,
		Dtstart: item.StartTime,
	}
	if pattern.Interval > 1 {
		opt.Interval = pattern.Interval
	}
	if pattern.Frequency == Weekly {
		for _, code := range pattern.WeekDays {
			day, ok := weekdayCodes[code]
			if !ok {
				return nil, fmt.Errorf("unknown weekday code: %q", code)
			}
			opt.Byweekday = append(opt.Byweekday, day)
		}
	}
	if pattern.Frequency == Monthly && pattern.MonthDay > 0 {
		opt.Bymonthday = []int{pattern.MonthDay}
	}
	if pattern.EndDate != "" {
		until, err := time.Parse("2006-01-02", pattern.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid recurrence end date %q: %w", pattern.EndDate, err)
		}
		opt.Until = until.Add(24*time.Hour - time.Second)
	} else if pattern.Count > 0 {
		opt.Count = pattern.Count
	}

	return rrule.NewRRule(opt)
}

// inWindow reports whether [start, end] touches [from, to]. Bounds are
// inclusive on both sides, matching the repository's range query.
func inWindow(start, end, from, to time.Time) bool {
	return !start.After(to) && !end.Before(from)
}

// expandOccurrences turns a list of items into the concrete occurrences that
// fall inside [from, to]. Non-recurring items pass through when they overlap
// the window; recurring items contribute one copy per occurrence, keeping the
// original duration. An item with a broken pattern is kept as a single
// occurrence so a bad rule never hides the underlying entry.
func expandOccurrences(items []Item, from, to time.Time) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Recurrence == nil {
			if inWindow(item.StartTime, item.EndTime, from, to) {
				result = append(result, item)
			}
			continue
		}

		rule, err := recurrenceRule(item)
		if err != nil {
			log.Warnf("could not expand recurrence for schedule item %d: %v", item.Id, err)
			if inWindow(item.StartTime, item.EndTime, from, to) {
				result = append(result, item)
			}
			continue
		}

		duration := item.EndTime.Sub(item.StartTime)
		for _, start := range rule.Between(from.Add(-duration), to, true) {
			occurrence := item
			occurrence.StartTime = start
			occurrence.EndTime = start.Add(duration)
			if inWindow(occurrence.StartTime, occurrence.EndTime, from, to) {
				result = append(result, occurrence)
			}
		}
	}
	return result
}
