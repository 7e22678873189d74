package report

import (
	"fmt"
	"time"

	"github.com/dmarinho/orderdesk/internal/order"
)

// Bucket is one labeled point of a revenue chart series.
type Bucket struct {
	Label string
	Paise int64
}

// WeeklyRevenue buckets payments received this week by day of week, Monday
// first. The series always has seven buckets so the chart axis is stable;
// days without orders report zero rather than being omitted.
func WeeklyRevenue(orders []order.Order, now time.Time) []Bucket {
	buckets := []Bucket{
		{Label: "Mon"}, {Label: "Tue"}, {Label: "Wed"}, {Label: "Thu"},
		{Label: "Fri"}, {Label: "Sat"}, {Label: "Sun"},
	}

	for _, o := range orders {
		if !order.InWindow(o.CreatedAt, order.WindowWeek, now) {
			continue
		}

		idx := int(o.CreatedAt.In(now.Location()).Weekday())
		if idx == 0 {
			idx = 7 // Sunday is the last bucket
		}

		buckets[idx-1].Paise += o.PaidAmount
	}

	return buckets
}

// MonthlyRevenue buckets payments received this month by week of month,
// where week N covers days (N-1)*7+1 through N*7. The bucket count depends
// only on the month's length, never on the data.
func MonthlyRevenue(orders []order.Order, now time.Time) []Bucket {
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	weeks := (daysInMonth-1)/7 + 1

	buckets := make([]Bucket, weeks)
	for i := range buckets {
		buckets[i].Label = fmt.Sprintf("Week %d", i+1)
	}

	for _, o := range orders {
		if !order.InWindow(o.CreatedAt, order.WindowMonth, now) {
			continue
		}

		idx := (o.CreatedAt.In(now.Location()).Day() - 1) / 7
		buckets[idx].Paise += o.PaidAmount
	}

	return buckets
}
