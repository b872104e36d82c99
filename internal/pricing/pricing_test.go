package pricing

import (
	"testing"

	"evaluo/server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPriceProperty(t *testing.T) {
	tests := []struct {
		name     string
		city     string
		zone     models.Zone
		rush     bool
		expected models.PriceBreakdown
	}{
		{
			name: "Toronto zone C with rush",
			city: "toronto",
			zone: models.ZoneC,
			rush: true,
			expected: models.PriceBreakdown{
				BasePrice:    30,
				ProximityFee: 6,
				RushFee:      7,
				Total:        43,
			},
		},
		{
			name: "Toronto zone A no rush",
			city: "toronto",
			zone: models.ZoneA,
			rush: false,
			expected: models.PriceBreakdown{
				BasePrice:    30,
				ProximityFee: 0,
				RushFee:      0,
				Total:        30,
			},
		},
		{
			name: "Hamilton zone D no rush",
			city: "hamilton",
			zone: models.ZoneD,
			rush: false,
			expected: models.PriceBreakdown{
				BasePrice:    24,
				ProximityFee: 9,
				RushFee:      0,
				Total:        33,
			},
		},
		{
			name: "Unknown city falls back to default",
			city: "atlantis",
			zone: models.ZoneB,
			rush: false,
			expected: models.PriceBreakdown{
				BasePrice:    30,
				ProximityFee: 3,
				RushFee:      0,
				Total:        33,
			},
		},
		{
			name: "Display-cased city name",
			city: "Oakville",
			zone: models.ZoneB,
			rush: true,
			expected: models.PriceBreakdown{
				BasePrice:    32,
				ProximityFee: 3,
				RushFee:      7,
				Total:        42,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown := PriceProperty(tt.city, tt.zone, tt.rush)
			assert.Equal(t, tt.expected, breakdown)
		})
	}
}

func TestPriceProperty_TotalIsSumOfParts(t *testing.T) {
	zones := []models.Zone{models.ZoneA, models.ZoneB, models.ZoneC, models.ZoneD}
	for _, city := range []string{"toronto", "mississauga", "ottawa", "nowhere"} {
		for _, zone := range zones {
			for _, rush := range []bool{false, true} {
				breakdown := PriceProperty(city, zone, rush)
				assert.Equal(t, breakdown.BasePrice+breakdown.ProximityFee+breakdown.RushFee, breakdown.Total)
				if !rush {
					assert.Zero(t, breakdown.RushFee)
				}
			}
		}
	}
}

func TestPriceOrder(t *testing.T) {
	tests := []struct {
		name     string
		totals   []float64
		surge    bool
		expected models.OrderPricing
	}{
		{
			name:   "Single property no surge",
			totals: []float64{43},
			surge:  false,
			expected: models.OrderPricing{
				Subtotal: 43,
				Discount: 0,
				SurgeFee: 0,
				Total:    43,
			},
		},
		{
			name:   "Three properties below bulk threshold",
			totals: []float64{30, 30, 30},
			surge:  false,
			expected: models.OrderPricing{
				Subtotal: 90,
				Discount: 0,
				SurgeFee: 0,
				Total:    90,
			},
		},
		{
			name:   "Five properties are bulk eligible",
			totals: []float64{30, 30, 30, 30, 30},
			surge:  false,
			expected: models.OrderPricing{
				Subtotal: 150,
				Discount: 15,
				SurgeFee: 0,
				Total:    135,
			},
		},
		{
			name:   "Exactly four properties trigger the discount",
			totals: []float64{10, 10, 10, 10},
			surge:  false,
			expected: models.OrderPricing{
				Subtotal: 40,
				Discount: 4,
				SurgeFee: 0,
				Total:    36,
			},
		},
		{
			name:   "Surge applies once per order",
			totals: []float64{30, 30},
			surge:  true,
			expected: models.OrderPricing{
				Subtotal: 60,
				Discount: 0,
				SurgeFee: 10,
				Total:    70,
			},
		},
		{
			name:   "Empty order",
			totals: nil,
			surge:  false,
			expected: models.OrderPricing{
				Subtotal: 0,
				Discount: 0,
				SurgeFee: 0,
				Total:    0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pricing := PriceOrder(tt.totals, tt.surge)
			assert.Equal(t, tt.expected, pricing)
		})
	}
}

func TestPriceOrder_DiscountNeverExceedsSubtotal(t *testing.T) {
	for n := 0; n <= 10; n++ {
		totals := make([]float64, n)
		for i := range totals {
			totals[i] = 25
		}
		pricing := PriceOrder(totals, true)
		assert.LessOrEqual(t, pricing.Discount, pricing.Subtotal)
		assert.GreaterOrEqual(t, pricing.Total, 0.0)
	}
}
