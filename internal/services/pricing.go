// internal/services/pricing.go
package services

import (
	"math"

	"github.com/trendora/storefront-api/internal/models"
)

// Pricing rules applied at checkout. Shipping is waived strictly above the
// threshold; an order of exactly 500 still pays the flat fee.
const (
	TaxRate               = 0.18
	FreeShippingThreshold = 500.0
	FlatShippingFee       = 50.0
)

// OrderTotals is the breakdown persisted immutably on each order.
type OrderTotals struct {
	Subtotal     float64 `json:"subtotal"`
	Tax          float64 `json:"tax"`
	ShippingCost float64 `json:"shipping_cost"`
	Total        float64 `json:"total"`
}

// Tax returns the tax due on a subtotal, rounded to two decimal places.
func Tax(subtotal float64) float64 {
	return round2(subtotal * TaxRate)
}

// Shipping returns the shipping cost for a subtotal.
func Shipping(subtotal float64) float64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// DiscountPercent returns the rounded percentage saved when buying at the
// discounted price. Returns 0 for a non-positive original price.
func DiscountPercent(original, discounted float64) int {
	if original <= 0 {
		return 0
	}
	return int(math.Round((original - discounted) / original * 100))
}

// CartSubtotal sums effective unit price times quantity over the cart.
// Items must have their Product loaded.
func CartSubtotal(items []models.CartItem) float64 {
	var subtotal float64
	for i := range items {
		subtotal += items[i].LineTotal()
	}
	return round2(subtotal)
}

// ComputeTotals derives the full order breakdown from cart contents.
func ComputeTotals(items []models.CartItem) OrderTotals {
	subtotal := CartSubtotal(items)
	tax := Tax(subtotal)
	shipping := Shipping(subtotal)

	return OrderTotals{
		Subtotal:     subtotal,
		Tax:          tax,
		ShippingCost: shipping,
		Total:        round2(subtotal + tax + shipping),
	}
}

// MinorUnits converts a rupee amount to paise for the payment gateway.
// Rounding, not truncation: a two-decimal total whose float64 representation
// sits just below the true value (64.07 stores as 64.06999...) must still
// charge the full amount.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
