package project

import "time"

type Status string

const (
	Planning  Status = "planning"
	Active    Status = "active"
	OnHold    Status = "on_hold"
	Completed Status = "completed"
	Cancelled Status = "cancelled"
)

// allowedTransitions lists the statuses each status may move to.
// Completed and cancelled are terminal.
var allowedTransitions = map[Status][]Status{
	Planning: {Active, Cancelled},
	Active:   {OnHold, Completed, Cancelled},
	OnHold:   {Active, Cancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) IsValid() bool {
	switch s {
	case Planning, Active, OnHold, Completed, Cancelled:
		return true
	}
	return false
}

type Project struct {
	Id         int64
	CustomerId int64
	Name       string
	Address    string
	Status     Status
	StartDate  *time.Time
	EndDate    *time.Time
	Notes      string
	CreatedAt  time.Time
}
