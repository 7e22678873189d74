package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarinho/orderdesk/internal/order"
)

func TestDerive(t *testing.T) {
	t.Run("yearly pack", func(t *testing.T) {
		v := order.Derive(order.Order{
			ServiceName: "E-Greeting Yearly Pack",
			Duration:    "1 Year",
			AdminPrice:  500000,
			PaidAmount:  200000,
		})

		assert.Equal(t, order.TypeEGreeting, v.Type)
		assert.Equal(t, order.CycleYearly, v.Cycle)
		assert.Equal(t, int64(300000), v.DueAmount)
	})

	t.Run("settled correction", func(t *testing.T) {
		v := order.Derive(order.Order{
			ServiceName: "Logo Correction",
			Duration:    "",
			AdminPrice:  50000,
			PaidAmount:  50000,
			RawStatus:   "completed",
		})

		assert.Equal(t, order.TypeCorrection, v.Type)
		assert.Equal(t, order.CycleInstant, v.Cycle)
		assert.Equal(t, int64(0), v.DueAmount)
		assert.Equal(t, order.StatusCompleted, v.Status)
	})

	t.Run("idempotent", func(t *testing.T) {
		o := order.Order{ServiceName: "Agency Setup", Duration: "Monthly", AdminPrice: 100, PaidAmount: 300}
		assert.Equal(t, order.Derive(o), order.Derive(o))
	})
}

func TestAggregateByPartner(t *testing.T) {
	orders := []order.Order{
		{PartnerID: "p1", PartnerName: "Sharma Prints", AdminPrice: 500000, PaidAmount: 200000},
		{PartnerID: "p1", PartnerName: "Sharma Prints", AdminPrice: 100000, PaidAmount: 100000},
		{PartnerID: "p2", PartnerName: "Desai Media", AdminPrice: 300000, PaidAmount: 0},
		{PartnerID: "", AdminPrice: 999900, PaidAmount: 0}, // walk-in, excluded
	}

	totals := order.AggregateByPartner(orders)
	require.Len(t, totals, 2)

	p1 := totals["p1"]
	require.NotNil(t, p1)
	assert.Equal(t, "Sharma Prints", p1.PartnerName)
	assert.Equal(t, int64(300000), p1.TotalPaid)
	assert.Equal(t, int64(300000), p1.CurrentDue)
	assert.Len(t, p1.History, 2)

	p2 := totals["p2"]
	require.NotNil(t, p2)
	assert.Equal(t, int64(0), p2.TotalPaid)
	assert.Equal(t, int64(300000), p2.CurrentDue)
}

// The dues summed across partners must equal the dues summed over exactly
// the input orders that carry a partner id.
func TestAggregateByPartner_Conservation(t *testing.T) {
	orders := []order.Order{
		{PartnerID: "p1", AdminPrice: 10000, PaidAmount: 2500},
		{PartnerID: "p2", AdminPrice: 20000, PaidAmount: 30000}, // overpaid
		{PartnerID: "p1", AdminPrice: 5000},
		{PartnerID: "p3", AdminPrice: 7500, PaidAmount: 7500},
		{PartnerID: "", AdminPrice: 100000},
	}

	var wantDue int64

	for _, o := range orders {
		if o.PartnerID == "" {
			continue
		}

		wantDue += order.Due(o.AdminPrice, o.PaidAmount)
	}

	var gotDue int64
	for _, pt := range order.AggregateByPartner(orders) {
		gotDue += pt.CurrentDue
	}

	assert.Equal(t, wantDue, gotDue)
}

func TestInWindow(t *testing.T) {
	// Wednesday.
	now := time.Date(2026, 8, 19, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		w    order.Window
		want bool
	}{
		{name: "same day", t: time.Date(2026, 8, 19, 1, 0, 0, 0, time.UTC), w: order.WindowToday, want: true},
		{name: "yesterday", t: time.Date(2026, 8, 18, 23, 59, 0, 0, time.UTC), w: order.WindowToday, want: false},
		{name: "monday of week", t: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC), w: order.WindowWeek, want: true},
		{name: "sunday of week", t: time.Date(2026, 8, 23, 23, 0, 0, 0, time.UTC), w: order.WindowWeek, want: true},
		{name: "previous sunday", t: time.Date(2026, 8, 16, 12, 0, 0, 0, time.UTC), w: order.WindowWeek, want: false},
		{name: "start of month", t: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), w: order.WindowMonth, want: true},
		{name: "previous month", t: time.Date(2026, 7, 31, 23, 0, 0, 0, time.UTC), w: order.WindowMonth, want: false},
		{name: "same month last year", t: time.Date(2025, 8, 19, 0, 0, 0, 0, time.UTC), w: order.WindowMonth, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, order.InWindow(tt.t, tt.w, now))
		})
	}
}

func TestAggregateByWindow(t *testing.T) {
	now := time.Date(2026, 8, 19, 15, 0, 0, 0, time.UTC)
	today := time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, 7, 2, 9, 0, 0, 0, time.UTC)

	orders := []order.Order{
		{AdminPrice: 500000, PaidAmount: 200000, RawStatus: "in progress", CreatedAt: today},
		{AdminPrice: 100000, PaidAmount: 50000, RawStatus: "CANCELLED_BY_USER", CreatedAt: today},
		{AdminPrice: 900000, PaidAmount: 900000, RawStatus: "completed", CreatedAt: lastMonth},
	}

	got := order.AggregateByWindow(orders, order.WindowToday, now)

	assert.Equal(t, 2, got.Orders)
	assert.Equal(t, int64(250000), got.Revenue)
	// Cancelled order: its payment drops out of net revenue and its balance
	// is written off entirely.
	assert.Equal(t, int64(200000), got.NetRevenue)
	assert.Equal(t, int64(300000), got.DueTotal)

	month := order.AggregateByWindow(orders, order.WindowMonth, now)
	assert.Equal(t, 2, month.Orders)

	var all order.WindowTotals
	assert.Equal(t, all.DueTotal, order.AggregateByWindow(nil, order.WindowWeek, now).DueTotal)
}
