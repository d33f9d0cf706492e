package domain

import "time"

type ProcessStage string

const (
	StageReceived  ProcessStage = "RECEIVED"
	StagePreparing ProcessStage = "PREPARING"
	StageReady     ProcessStage = "READY"
	StageCompleted ProcessStage = "COMPLETED"
)

func (s ProcessStage) Valid() bool {
	switch s {
	case StageReceived, StagePreparing, StageReady, StageCompleted:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

type Order struct {
	ID            uint
	CustomerID    int
	ProcessStage  ProcessStage
	PaymentStatus PaymentStatus
	TotalAmount   float64
	Lines         []OrderLine
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderLine is owned by its Order and immutable after creation. UnitPrice is
// the price at order time, never re-fetched from the catalog.
type OrderLine struct {
	ID        uint
	OrderID   uint
	ProductID int
	Quantity  int
	UnitPrice float64
}

// LinesTotal is the authoritative order total: any client-declared total is
// replaced by this value on creation.
func LinesTotal(lines []OrderLine) float64 {
	total := 0.0
	for _, l := range lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}
