package gcal

import (
	"strconv"
	"strings"
	"time"

	"github.com/jobsight/jobsight/pkg/schedule"
	log "github.com/sirupsen/logrus"
	gcal "google.golang.org/api/calendar/v3"
)

const dateLayout = "2006-01-02"

var frequencyCodes = map[schedule.Frequency]string{
	schedule.Daily:   "DAILY",
	schedule.Weekly:  "WEEKLY",
	schedule.Monthly: "MONTHLY",
	schedule.Yearly:  "YEARLY",
}

var frequencyNames = map[string]schedule.Frequency{
	"DAILY":   schedule.Daily,
	"WEEKLY":  schedule.Weekly,
	"MONTHLY": schedule.Monthly,
	"YEARLY":  schedule.Yearly,
}

// eventFromItem builds the Google representation of a schedule item. All-day
// items carry date-only start/end (end date inclusive); timed items carry
// RFC3339 timestamps in the adapter's time zone.
func eventFromItem(item schedule.Item, timeZone string) *gcal.Event {
	event := &gcal.Event{
		Summary:     item.Title,
		Description: item.Description,
	}

	if item.AllDay {
		event.Start = &gcal.EventDateTime{Date: item.StartTime.Format(dateLayout)}
		event.End = &gcal.EventDateTime{Date: item.EndTime.Format(dateLayout)}
	} else {
		event.Start = &gcal.EventDateTime{
			DateTime: item.StartTime.Format(time.RFC3339),
			TimeZone: timeZone,
		}
		event.End = &gcal.EventDateTime{
			DateTime: item.EndTime.Format(time.RFC3339),
			TimeZone: timeZone,
		}
	}

	if item.Recurrence != nil {
		if rule := buildRecurrenceRule(*item.Recurrence); rule != "" {
			event.Recurrence = []string{rule}
		}
	}

	if item.AssigneeId != "" && item.SendInvite {
		event.Attendees = []*gcal.EventAttendee{
			{Email: item.AssigneeId, ResponseStatus: "needsAction"},
		}
	}

	return event
}

// itemFromEvent maps a Google event back to a partial schedule item. The
// assignee reference is not recovered from the attendee list; resolving an
// email back to a contact needs a lookup the adapter does not own.
func itemFromEvent(event *gcal.Event) schedule.Item {
	item := schedule.Item{
		Title:         event.Summary,
		Description:   event.Description,
		GoogleEventId: event.Id,
		InviteStatus:  event.Status,
	}

	if event.Start != nil && event.Start.Date != "" {
		item.AllDay = true
		if start, err := time.Parse(dateLayout, event.Start.Date); err == nil {
			item.StartTime = start
		}
		if event.End != nil && event.End.Date != "" {
			if end, err := time.Parse(dateLayout, event.End.Date); err == nil {
				item.EndTime = end.Add(24*time.Hour - time.Second)
			}
		}
	} else {
		if event.Start != nil {
			start, err := time.Parse(time.RFC3339, event.Start.DateTime)
			if err != nil {
				log.Warnf("could not parse start time of Google event %s: %v", event.Id, err)
			} else {
				item.StartTime = start
			}
		}
		if event.End != nil {
			end, err := time.Parse(time.RFC3339, event.End.DateTime)
			if err != nil {
				log.Warnf("could not parse end time of Google event %s: %v", event.Id, err)
			} else {
				item.EndTime = end
			}
		}
	}

	if len(event.Attendees) > 0 {
		item.SendInvite = true
	}

	for _, rule := range event.Recurrence {
		if strings.HasPrefix(rule, "RRULE") {
			pattern := parseRecurrenceRule(rule)
			item.Recurrence = &pattern
			break
		}
	}

	return item
}

// buildRecurrenceRule renders the pattern as an RFC 5545 RRULE string. An
// unknown frequency yields an empty string. EndDate takes precedence over
// Count; with neither the rule is open-ended.
func buildRecurrenceRule(p schedule.RecurrencePattern) string {
	freq, ok := frequencyCodes[p.Frequency]
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString("RRULE:FREQ=" + freq)

	if p.Frequency == schedule.Weekly && len(p.WeekDays) > 0 {
		b.WriteString(";BYDAY=" + strings.Join(p.WeekDays, ","))
	}
	if p.Frequency == schedule.Monthly && p.MonthDay > 0 {
		b.WriteString(";BYMONTHDAY=" + strconv.Itoa(p.MonthDay))
	}
	if p.Interval > 1 {
		b.WriteString(";INTERVAL=" + strconv.Itoa(p.Interval))
	}
	if p.EndDate != "" {
		b.WriteString(";UNTIL=" + strings.ReplaceAll(p.EndDate, "-", "") + "T235959Z")
	} else if p.Count > 0 {
		b.WriteString(";COUNT=" + strconv.Itoa(p.Count))
	}

	return b.String()
}

// parseRecurrenceRule does the reverse translation. Clauses it does not emit
// are ignored, and an unrecognized FREQ code leaves the frequency unset
// rather than failing the caller, so a foreign rule cannot abort a webhook.
func parseRecurrenceRule(rule string) schedule.RecurrencePattern {
	var pattern schedule.RecurrencePattern

	rule = strings.TrimPrefix(rule, "RRULE:")
	for _, clause := range strings.Split(rule, ";") {
		name, value, found := strings.Cut(clause, "=")
		if !found {
			continue
		}
		switch name {
		case "FREQ":
			pattern.Frequency = frequencyNames[value]
		case "BYDAY":
			pattern.WeekDays = strings.Split(value, ",")
		case "BYMONTHDAY":
			pattern.MonthDay, _ = strconv.Atoi(value)
		case "INTERVAL":
			pattern.Interval, _ = strconv.Atoi(value)
		case "UNTIL":
			if len(value) >= 8 {
				pattern.EndDate = value[0:4] + "-" + value[4:6] + "-" + value[6:8]
			}
		case "COUNT":
			pattern.Count, _ = strconv.Atoi(value)
		}
	}

	return pattern
}
