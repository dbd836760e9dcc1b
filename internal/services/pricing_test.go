// internal/services/pricing_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trendora/storefront-api/internal/models"
)

func cartItem(price float64, discount *float64, quantity int) models.CartItem {
	return models.CartItem{
		Quantity: quantity,
		Product: models.Product{
			Price:         price,
			DiscountPrice: discount,
		},
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestTax(t *testing.T) {
	assert.Equal(t, 81.0, Tax(450))
	assert.Equal(t, 108.0, Tax(600))
	assert.Equal(t, 0.0, Tax(0))
	assert.Equal(t, 18.0, Tax(100))
}

func TestShipping(t *testing.T) {
	assert.Equal(t, 50.0, Shipping(450))
	assert.Equal(t, 0.0, Shipping(600))

	// Exactly at the threshold still pays the flat fee
	assert.Equal(t, 50.0, Shipping(500))
	assert.Equal(t, 0.0, Shipping(500.01))
}

func TestDiscountPercent(t *testing.T) {
	assert.Equal(t, 20, DiscountPercent(1000, 800))
	assert.Equal(t, 50, DiscountPercent(200, 100))
	assert.Equal(t, 0, DiscountPercent(0, 100))
	assert.Equal(t, 0, DiscountPercent(-10, 5))
	assert.Equal(t, 0, DiscountPercent(100, 100))

	// Rounds to nearest whole percent
	assert.Equal(t, 33, DiscountPercent(300, 200))
	assert.Equal(t, 67, DiscountPercent(300, 100))
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		items    []models.CartItem
		expected OrderTotals
	}{
		{
			name:  "below free shipping threshold",
			items: []models.CartItem{cartItem(450, nil, 1)},
			expected: OrderTotals{
				Subtotal:     450,
				Tax:          81,
				ShippingCost: 50,
				Total:        581,
			},
		},
		{
			name:  "above free shipping threshold",
			items: []models.CartItem{cartItem(600, nil, 1)},
			expected: OrderTotals{
				Subtotal:     600,
				Tax:          108,
				ShippingCost: 0,
				Total:        708,
			},
		},
		{
			name:  "empty cart",
			items: nil,
			expected: OrderTotals{
				Subtotal:     0,
				Tax:          0,
				ShippingCost: 50,
				Total:        50,
			},
		},
		{
			name: "discount price drives the subtotal",
			items: []models.CartItem{
				cartItem(1000, floatPtr(300), 2),
			},
			expected: OrderTotals{
				Subtotal:     600,
				Tax:          108,
				ShippingCost: 0,
				Total:        708,
			},
		},
		{
			name: "multiple lines sum before tax and shipping",
			items: []models.CartItem{
				cartItem(100, nil, 2),
				cartItem(250, nil, 1),
			},
			expected: OrderTotals{
				Subtotal:     450,
				Tax:          81,
				ShippingCost: 50,
				Total:        581,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeTotals(tt.items))
		})
	}
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(58100), MinorUnits(581))
	assert.Equal(t, int64(0), MinorUnits(0))

	// 64.07 and 10.01 store as 64.0699... and 10.0099... in float64;
	// truncation would undercharge by one paisa
	assert.Equal(t, int64(6407), MinorUnits(64.07))
	assert.Equal(t, int64(1001), MinorUnits(10.01))
}

func TestCheckoutAmountMatchesOrderTotalInPaise(t *testing.T) {
	// A single item at 11.92 totals 64.07 (tax 2.15, shipping 50), one of
	// the many paise-valued totals that sit just below their true value
	// in float64.
	totals := ComputeTotals([]models.CartItem{cartItem(11.92, nil, 1)})

	assert.Equal(t, 64.07, totals.Total)
	assert.Equal(t, int64(6407), MinorUnits(totals.Total))
}

func TestCartSubtotalUsesEffectivePrice(t *testing.T) {
	items := []models.CartItem{
		cartItem(899, nil, 1),
		cartItem(1500, floatPtr(999), 1),
	}

	assert.Equal(t, 1898.0, CartSubtotal(items))
}
