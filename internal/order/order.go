package order

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies what kind of work an order represents.
type Type string

const (
	TypeService    Type = "service"
	TypeAgency     Type = "agency"
	TypeCorrection Type = "correction"
	TypeEGreeting  Type = "e-greeting"
)

// ServiceCycle is the billing cadence inferred from the order's text fields.
type ServiceCycle string

const (
	CycleInstant ServiceCycle = "Instant"
	CycleMonthly ServiceCycle = "Monthly"
	CycleYearly  ServiceCycle = "Yearly"
)

// Status is the normalized workflow state of an order.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

// MediaType is the deliverable format inferred from the service name.
type MediaType string

const (
	MediaImage MediaType = "Image"
	MediaVideo MediaType = "Video"
)

// Order is an upstream order document normalized at the ingestion boundary.
// Amounts are in paise. RawStatus keeps the upstream text as-is; the
// normalized state is derived, never stored.
type Order struct {
	ID          uuid.UUID
	SourceID    string // upstream document id
	DisplayID   string
	ServiceName string
	Duration    string
	Correction  bool // explicit correction flag some producers set
	AdminPrice  int64
	PaidAmount  int64
	RawStatus   string
	PartnerID   string
	PartnerName string
	AssignedTo  string
	Payments    []Payment
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

// Payment is a single entry of an order's append-only payment history.
type Payment struct {
	ID         uuid.UUID
	Amount     int64
	Note       string
	VerifiedBy string
	CreatedAt  time.Time
}

// View is the derived, render-ready shape of an order. Views are recomputed
// from the raw order on every refresh and never persisted.
type View struct {
	Order

	Type      Type
	Cycle     ServiceCycle
	Media     MediaType
	Status    Status
	DueAmount int64
}

// Derive computes the full derived view for an order. It is a pure function
// of the order's fields: deriving twice from the same order yields the same
// view.
func Derive(o Order) View {
	typ, cycle := Classify(o.ServiceName, o.Duration, o.Correction)

	return View{
		Order:     o,
		Type:      typ,
		Cycle:     cycle,
		Media:     MediaFor(o.ServiceName),
		Status:    NormalizeStatus(o.RawStatus),
		DueAmount: Due(o.AdminPrice, o.PaidAmount),
	}
}

// DeriveAll maps Derive over a slice, preserving order.
func DeriveAll(orders []Order) []View {
	views := make([]View, len(orders))
	for i, o := range orders {
		views[i] = Derive(o)
	}

	return views
}
