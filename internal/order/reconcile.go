package order

import "time"

// PartnerTotals is the reconciled position of a single partner.
type PartnerTotals struct {
	PartnerID   string
	PartnerName string
	TotalPaid   int64
	CurrentDue  int64
	History     []View
}

// AggregateByPartner groups orders by partner and sums paid and due amounts.
// Orders without a partner id are walk-in sales, not errors; they are simply
// left out of the result. Each order lands in exactly one bucket.
func AggregateByPartner(orders []Order) map[string]*PartnerTotals {
	totals := make(map[string]*PartnerTotals)

	for _, o := range orders {
		if o.PartnerID == "" {
			continue
		}

		t, ok := totals[o.PartnerID]
		if !ok {
			t = &PartnerTotals{PartnerID: o.PartnerID, PartnerName: o.PartnerName}
			totals[o.PartnerID] = t
		}

		if t.PartnerName == "" {
			t.PartnerName = o.PartnerName
		}

		v := Derive(o)
		t.TotalPaid += v.PaidAmount
		t.CurrentDue += v.DueAmount
		t.History = append(t.History, v)
	}

	return totals
}

// Window is a calendar time window anchored at the aggregation instant.
type Window int

const (
	WindowToday Window = iota
	WindowWeek
	WindowMonth
)

func (w Window) String() string {
	switch w {
	case WindowToday:
		return "Today"
	case WindowWeek:
		return "This Week"
	case WindowMonth:
		return "This Month"
	}

	return "Unknown"
}

// WindowTotals holds reconciled sums for one calendar window.
type WindowTotals struct {
	Revenue    int64 // all payments received
	NetRevenue int64 // payments excluding cancelled orders
	DueTotal   int64 // outstanding balance, cancelled orders excluded
	Orders     int
}

// InWindow reports whether t falls inside the window containing now, using
// calendar boundaries in now's location. The week starts on Monday.
func InWindow(t time.Time, w Window, now time.Time) bool {
	t = t.In(now.Location())

	switch w {
	case WindowToday:
		return t.Year() == now.Year() && t.Month() == now.Month() && t.Day() == now.Day()
	case WindowWeek:
		start := weekStart(now)
		return !t.Before(start) && t.Before(start.AddDate(0, 0, 7))
	case WindowMonth:
		return t.Year() == now.Year() && t.Month() == now.Month()
	}

	return false
}

// weekStart returns midnight Monday of the week containing now.
func weekStart(now time.Time) time.Time {
	offset := int(now.Weekday())
	if offset == 0 {
		offset = 7 // Sunday belongs to the week that started the previous Monday
	}

	day := now.AddDate(0, 0, -offset+1)

	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
}

// AggregateByWindow sums revenue and dues for orders created inside the
// window. A cancelled order's payments still count as received money, but
// its balance is written off: it contributes nothing to DueTotal and is
// excluded from NetRevenue.
func AggregateByWindow(orders []Order, w Window, now time.Time) WindowTotals {
	var totals WindowTotals

	for _, o := range orders {
		if !InWindow(o.CreatedAt, w, now) {
			continue
		}

		v := Derive(o)
		totals.Orders++
		totals.Revenue += v.PaidAmount

		if v.Status == StatusCancelled {
			continue
		}

		totals.NetRevenue += v.PaidAmount
		totals.DueTotal += v.DueAmount
	}

	return totals
}
