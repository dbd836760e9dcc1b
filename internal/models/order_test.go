// internal/models/order_test.go
package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// A replayed payment confirm must not be able to create a second order for
// the same intent. The read-before-insert check in the payment flow is racy
// on its own; the schema-level unique index is what closes the window, so
// its declaration is load-bearing.
func TestOrderPaymentReferenceIsUniquelyIndexed(t *testing.T) {
	field, ok := reflect.TypeOf(Order{}).FieldByName("PaymentReference")
	assert.True(t, ok)

	tag := field.Tag.Get("gorm")
	assert.Contains(t, tag, "uniqueIndex")

	// Orders without a gateway reference stay out of the constraint
	assert.Contains(t, tag, "where:payment_reference <> ''")
}

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{UnitPrice: 299.5, Quantity: 3}
	assert.Equal(t, 898.5, item.LineTotal())
}

func TestCartItemUniqueIndexCoversUserAndProduct(t *testing.T) {
	typ := reflect.TypeOf(CartItem{})

	userField, ok := typ.FieldByName("UserID")
	assert.True(t, ok)
	productField, ok := typ.FieldByName("ProductID")
	assert.True(t, ok)

	assert.True(t, strings.Contains(userField.Tag.Get("gorm"), "idx_cart_user_product"))
	assert.True(t, strings.Contains(productField.Tag.Get("gorm"), "idx_cart_user_product"))
}
