package ingest_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarinho/orderdesk/internal/ingest"
	"github.com/dmarinho/orderdesk/internal/order"
)

func TestSnapshotParser(t *testing.T) {
	snapshot := `[
		{
			"id": "doc-1",
			"displayId": "ORD-001",
			"service": {"name": "E-Greeting Yearly Pack"},
			"Duration": "1 Year",
			"pricing": {"priceToAdmin": 5000},
			"paidAmount": "2000",
			"status": "in progress",
			"partnerId": "p1",
			"partnerName": "Sharma Prints",
			"assignedTo": {"name": "Anita"},
			"createdAt": "2026-08-10T09:30:00Z",
			"paymentHistory": [
				{"amount": 2000, "note": "advance", "verifiedBy": "manager-1", "at": "2026-08-10T10:00:00Z"}
			]
		},
		{
			"id": "doc-2",
			"service": {"name": "Logo Correction"},
			"amount": "₹500",
			"paidAmount": 500,
			"status": "completed",
			"isCorrection": true,
			"createdAt": 1754820000000
		}
	]`

	p := ingest.NewSnapshotParser()
	orders, err := p.Parse(strings.NewReader(snapshot))
	require.NoError(t, err)
	require.Len(t, orders, 2)

	o := orders[0]
	assert.Equal(t, "doc-1", o.SourceID)
	assert.Equal(t, "ORD-001", o.DisplayID)
	assert.Equal(t, "E-Greeting Yearly Pack", o.ServiceName)
	assert.Equal(t, "1 Year", o.Duration)
	assert.Equal(t, int64(500000), o.AdminPrice)
	assert.Equal(t, int64(200000), o.PaidAmount)
	assert.Equal(t, "Anita", o.AssignedTo)
	assert.Equal(t, time.Date(2026, 8, 10, 9, 30, 0, 0, time.UTC), o.CreatedAt)
	require.Len(t, o.Payments, 1)
	assert.Equal(t, int64(200000), o.Payments[0].Amount)
	assert.Equal(t, "manager-1", o.Payments[0].VerifiedBy)

	// The derived view matches what the dashboards expect end to end.
	v := order.Derive(*o)
	assert.Equal(t, order.TypeEGreeting, v.Type)
	assert.Equal(t, order.CycleYearly, v.Cycle)
	assert.Equal(t, int64(300000), v.DueAmount)

	o = orders[1]
	assert.Equal(t, "doc-2", o.SourceID)
	assert.True(t, o.Correction)
	// Legacy flat "amount" field, rupee-symbol string.
	assert.Equal(t, int64(50000), o.AdminPrice)
	assert.False(t, o.CreatedAt.IsZero())

	v = order.Derive(*o)
	assert.Equal(t, order.TypeCorrection, v.Type)
	assert.Equal(t, int64(0), v.DueAmount)
	assert.Equal(t, order.StatusCompleted, v.Status)
}

func TestSnapshotParser_FirestoreTimestamp(t *testing.T) {
	snapshot := `[{"id": "doc-3", "service": {"name": "Logo"}, "createdAt": {"_seconds": 1754820000}}]`

	p := ingest.NewSnapshotParser()
	orders, err := p.Parse(strings.NewReader(snapshot))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, time.Unix(1754820000, 0), orders[0].CreatedAt)
}

func TestSnapshotParser_MissingID(t *testing.T) {
	p := ingest.NewSnapshotParser()
	_, err := p.Parse(strings.NewReader(`[{"service": {"name": "Logo"}}]`))
	require.Error(t, err)
}

func TestSnapshotParser_Garbage(t *testing.T) {
	p := ingest.NewSnapshotParser()
	_, err := p.Parse(strings.NewReader(`{"not": "an array"`))
	require.Error(t, err)
}

func TestService_UnknownFormat(t *testing.T) {
	s := ingest.NewService()
	_, err := s.Parse(ingest.Format("xml"), strings.NewReader(""))
	require.Error(t, err)
}
