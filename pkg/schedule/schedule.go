package schedule

import "time"

type AssigneeType string

const (
	AssigneeEmployee      AssigneeType = "employee"
	AssigneeSubcontractor AssigneeType = "subcontractor"
)

type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// RecurrencePattern is a value type embedded in Item; it is not persisted on
// its own. EndDate and Count are mutually exclusive termination clauses;
// EndDate wins when both are set.
type RecurrencePattern struct {
	Frequency Frequency
	Interval  int
	// WeekDays holds two-letter day codes (MO..SU), only meaningful for weekly patterns.
	WeekDays []string
	MonthDay int
	// EndDate is a calendar date formatted YYYY-MM-DD.
	EndDate string
	Count   int
}

// Item is a scheduled block of work on a project. The Google sync adapter
// owns only GoogleEventId, InviteStatus, and LastSyncError; every other field
// belongs to the scheduling UI.
type Item struct {
	Id          int64
	ProjectId   int64
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	AllDay      bool

	AssigneeType AssigneeType
	AssigneeId   string
	SendInvite   bool

	Recurrence *RecurrencePattern

	CalendarSyncEnabled bool
	GoogleEventId       string
	InviteStatus        string
	LastSyncError       string
}
