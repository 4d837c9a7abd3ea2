package timeentry

import "time"

// Entry is a single block of tracked labor. End stays nil while the entry is
// running.
type Entry struct {
	Id         int64
	EmployeeId int64
	ProjectId  int64
	Start      time.Time
	End        *time.Time
	Notes      string
}

func (e Entry) IsOpen() bool {
	return e.End == nil
}
