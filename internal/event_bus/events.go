package event_bus

import "time"

// Event types published by the schedule service and consumed by the Google
// Calendar sync subscriber.
const (
	ScheduleItemCreated EventType = "schedule.item.created"
	ScheduleItemUpdated EventType = "schedule.item.updated"
	ScheduleItemDeleted EventType = "schedule.item.deleted"
)

// ScheduleItemChanged is the payload for schedule item create/update events.
type ScheduleItemChanged struct {
	ItemId    int64
	ProjectId int64
	Title     string
	StartTime time.Time
	EndTime   time.Time
}

// ScheduleItemRemoved is the payload for schedule item delete events. The
// Google event id travels with it so the subscriber can remove the remote
// event after the local row is gone.
type ScheduleItemRemoved struct {
	ItemId        int64
	ProjectId     int64
	GoogleEventId string
}
