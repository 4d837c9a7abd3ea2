package expense

import "time"

type Expense struct {
	Id        int64
	ProjectId int64
	Vendor    string
	// AmountCents keeps money integral.
	AmountCents  int64
	Category     string
	IncurredDate time.Time
	ReceiptUrl   string
	Notes        string
	CreatedAt    time.Time
}
