package pricing

import (
	"evaluo/server/config"
	"evaluo/server/internal/models"
)

const (
	// RushFee is the flat surcharge for a rush booking, per property
	RushFee = 7.0

	// SurgeFee is the flat high-demand surcharge, applied once per order
	SurgeFee = 10.0

	// BulkThreshold is the minimum property count for the bulk discount
	BulkThreshold = 4

	// BulkDiscountRate is the fraction of the subtotal discounted for
	// bulk-eligible orders
	BulkDiscountRate = 0.10
)

var proximityFees = map[models.Zone]float64{
	models.ZoneA: 0,
	models.ZoneB: 3,
	models.ZoneC: 6,
	models.ZoneD: 9,
}

// PriceProperty computes the cost breakdown for evaluating a single
// property. Unknown cities price as the default city rather than
// erroring; unknown zones price as zone A.
func PriceProperty(city string, zone models.Zone, rushBooking bool) models.PriceBreakdown {
	base := config.GetCityOrDefault(city).BasePrice
	proximity := proximityFees[zone]

	var rush float64
	if rushBooking {
		rush = RushFee
	}

	return models.PriceBreakdown{
		BasePrice:    base,
		ProximityFee: proximity,
		RushFee:      rush,
		Total:        base + proximity + rush,
	}
}

// PriceOrder computes the order-level cost from the per-property totals.
// Orders with at least BulkThreshold properties get the bulk discount;
// the surge fee applies once per order, never per property.
func PriceOrder(propertyTotals []float64, surgeActive bool) models.OrderPricing {
	var subtotal float64
	for _, total := range propertyTotals {
		subtotal += total
	}

	var discount float64
	if len(propertyTotals) >= BulkThreshold {
		discount = subtotal * BulkDiscountRate
	}

	var surge float64
	if surgeActive {
		surge = SurgeFee
	}

	return models.OrderPricing{
		Subtotal: subtotal,
		Discount: discount,
		SurgeFee: surge,
		Total:    subtotal - discount + surge,
	}
}
