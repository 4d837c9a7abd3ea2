package schedule

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"
)

// ExportProjectICS renders a project's schedule as an iCalendar document so
// crews can subscribe from their own calendar apps.
func (s *Service) ExportProjectICS(ctx context.Context, projectId int64) ([]byte, error) {
	items, err := s.ListByProject(ctx, projectId)
	if err != nil {
		return nil, err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//Jobsight//Schedule//EN")

	now := time.Now().UTC()
	for _, item := range items {
		vevent := ical.NewComponent(ical.CompEvent)
		vevent.Props.SetText(ical.PropUID, fmt.Sprintf("schedule-%d@jobsight", item.Id))
		vevent.Props.SetText(ical.PropSummary, item.Title)
		if item.Description != "" {
			vevent.Props.SetText(ical.PropDescription, item.Description)
		}

		if item.AllDay {
			dtstart := ical.NewProp("DTSTART")
			dtstart.SetDate(item.StartTime)
			vevent.Props.Set(dtstart)
			// DTEND is exclusive for all-day entries
			dtend := ical.NewProp("DTEND")
			dtend.SetDate(item.EndTime.Add(24 * time.Hour))
			vevent.Props.Set(dtend)
		} else {
			vevent.Props.SetDateTime("DTSTART", item.StartTime)
			vevent.Props.SetDateTime("DTEND", item.EndTime)
		}

		if item.Recurrence != nil {
			if rule := icsRecurrenceRule(*item.Recurrence); rule != "" {
				// raw value, SetText would escape the semicolons
				rruleProp := ical.NewProp("RRULE")
				rruleProp.Value = rule
				vevent.Props.Set(rruleProp)
			}
		}

		vevent.Props.SetDateTime(ical.PropDateTimeStamp, now)
		cal.Children = append(cal.Children, vevent)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

// icsRecurrenceRule renders the pattern as an RRULE value (without the
// leading "RRULE:" marker, which is the property name).
func icsRecurrenceRule(p RecurrencePattern) string {
	freq := map[Frequency]string{
		Daily:   "DAILY",
		Weekly:  "WEEKLY",
		Monthly: "MONTHLY",
		Yearly:  "YEARLY",
	}[p.Frequency]
	if freq == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("FREQ=" + freq)
	if p.Frequency == Weekly && len(p.WeekDays) > 0 {
		b.WriteString(";BYDAY=" + strings.Join(p.WeekDays, ","))
	}
	if p.Frequency == Monthly && p.MonthDay > 0 {
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
