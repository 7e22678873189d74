package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmarinho/orderdesk/internal/order"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		duration    string
		correction  bool
		wantType    order.Type
		wantCycle   order.ServiceCycle
	}{
		{
			name:        "plain service",
			serviceName: "Logo Design",
			wantType:    order.TypeService,
			wantCycle:   order.CycleInstant,
		},
		{
			name:        "correction keyword",
			serviceName: "Logo Correction",
			wantType:    order.TypeCorrection,
			wantCycle:   order.CycleInstant,
		},
		{
			name:        "explicit correction flag",
			serviceName: "Logo Design",
			correction:  true,
			wantType:    order.TypeCorrection,
			wantCycle:   order.CycleInstant,
		},
		{
			name:        "agency keyword",
			serviceName: "Agency Setup",
			wantType:    order.TypeAgency,
			wantCycle:   order.CycleInstant,
		},
		{
			name:        "greeting keyword",
			serviceName: "Diwali Greeting Post",
			wantType:    order.TypeEGreeting,
			wantCycle:   order.CycleInstant,
		},
		{
			name:        "festival keyword",
			serviceName: "Festival Post Pack",
			wantType:    order.TypeEGreeting,
			wantCycle:   order.CycleInstant,
		},
		{
			name:        "yearly duration",
			serviceName: "E-Greeting Yearly Pack",
			duration:    "1 Year",
			wantType:    order.TypeEGreeting,
			wantCycle:   order.CycleYearly,
		},
		{
			name:        "monthly duration",
			serviceName: "Social Media Posts",
			duration:    "Monthly",
			wantType:    order.TypeEGreeting,
			wantCycle:   order.CycleMonthly,
		},
		{
			// Cadence precedence: a yearly agency package still classifies
			// as e-greeting, keyword order wins over the name.
			name:        "yearly agency package",
			serviceName: "Agency Setup",
			duration:    "1 Year",
			wantType:    order.TypeEGreeting,
			wantCycle:   order.CycleYearly,
		},
		{
			name:        "year in service name",
			serviceName: "1 Year Branding",
			wantType:    order.TypeEGreeting,
			wantCycle:   order.CycleYearly,
		},
		{
			name:        "case insensitive",
			serviceName: "LOGO CORRECTION",
			duration:    "",
			wantType:    order.TypeCorrection,
			wantCycle:   order.CycleInstant,
		},
		{
			name:      "empty everything",
			wantType:  order.TypeService,
			wantCycle: order.CycleInstant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, cycle := order.Classify(tt.serviceName, tt.duration, tt.correction)
			assert.Equal(t, tt.wantType, typ)
			assert.Equal(t, tt.wantCycle, cycle)

			// Deterministic: same inputs, same answer.
			typ2, cycle2 := order.Classify(tt.serviceName, tt.duration, tt.correction)
			assert.Equal(t, typ, typ2)
			assert.Equal(t, cycle, cycle2)
		})
	}
}

func TestMediaFor(t *testing.T) {
	assert.Equal(t, order.MediaImage, order.MediaFor("Logo Design"))
	assert.Equal(t, order.MediaImage, order.MediaFor(""))
	assert.Equal(t, order.MediaVideo, order.MediaFor("Promo Video"))
	assert.Equal(t, order.MediaVideo, order.MediaFor("Instagram REEL"))
	assert.Equal(t, order.MediaVideo, order.MediaFor("Logo Animation"))
}
