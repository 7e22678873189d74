package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmarinho/orderdesk/internal/order"
)

func TestParsePaise(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int64
	}{
		{name: "nil", raw: nil, want: 0},
		{name: "empty string", raw: "", want: 0},
		{name: "plain int", raw: 500, want: 50000},
		{name: "int64", raw: int64(500), want: 50000},
		{name: "json float", raw: 499.5, want: 49950},
		{name: "numeric string", raw: "500", want: 50000},
		{name: "decimal string", raw: "1234.50", want: 123450},
		{name: "rupee symbol and commas", raw: "₹1,234.50", want: 123450},
		{name: "negative", raw: "-250", want: -25000},
		{name: "garbage", raw: "call for price", want: 0},
		{name: "symbols only", raw: "₹,", want: 0},
		{name: "unsupported type", raw: []string{"500"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, order.ParsePaise(tt.raw))
		})
	}
}

// Formatting an amount and parsing it back must not change its value.
func TestParsePaise_RoundTrip(t *testing.T) {
	for _, paise := range []int64{0, 1, 99, 100, 123450, 500000, 123456789} {
		formatted := order.FormatINR(paise)
		assert.Equal(t, paise, order.ParsePaise(formatted), "round trip of %s", formatted)
	}
}

func TestDue(t *testing.T) {
	tests := []struct {
		name  string
		price int64
		paid  int64
		want  int64
	}{
		{name: "unpaid", price: 500000, paid: 0, want: 500000},
		{name: "partially paid", price: 500000, paid: 200000, want: 300000},
		{name: "fully paid", price: 50000, paid: 50000, want: 0},
		{name: "overpaid clamps to zero", price: 50000, paid: 75000, want: 0},
		{name: "zero price", price: 0, paid: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, order.Due(tt.price, tt.paid))
			assert.GreaterOrEqual(t, order.Due(tt.price, tt.paid), int64(0))
		})
	}
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		name  string
		paise int64
		want  string
	}{
		{name: "zero", paise: 0, want: "₹0"},
		{name: "whole rupees", paise: 50000, want: "₹500"},
		{name: "thousands separator", paise: 500000, want: "₹5,000"},
		{name: "fractional", paise: 123450, want: "₹1,234.50"},
		{name: "single paisa", paise: 1, want: "₹0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, order.FormatINR(tt.paise))
		})
	}
}
