package workorder

import "time"

type Status string

const (
	Draft      Status = "draft"
	Issued     Status = "issued"
	InProgress Status = "in_progress"
	Completed  Status = "completed"
	Cancelled  Status = "cancelled"
)

// allowedTransitions lists the statuses each status may move to. A work order
// can be cancelled from any non-terminal state.
var allowedTransitions = map[Status][]Status{
	Draft:      {Issued, Cancelled},
	Issued:     {InProgress, Cancelled},
	InProgress: {Completed, Cancelled},
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
	case Draft, Issued, InProgress, Completed, Cancelled:
		return true
	}
	return false
}

type WorkOrder struct {
	Id          int64
	ProjectId   int64
	Number      string
	Title       string
	Description string
	AssigneeId  int64
	Status      Status
	DueDate     *time.Time
	CreatedAt   time.Time
}
