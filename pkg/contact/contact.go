package contact

import "time"

type Type string

const (
	Customer      Type = "customer"
	Employee      Type = "employee"
	Subcontractor Type = "subcontractor"
)

func (t Type) IsValid() bool {
	switch t {
	case Customer, Employee, Subcontractor:
		return true
	}
	return false
}

type Contact struct {
	Id        int64
	Type      Type
	Name      string
	Email     string
	Phone     string
	Company   string
	Notes     string
	Archived  bool
	CreatedAt time.Time
}
