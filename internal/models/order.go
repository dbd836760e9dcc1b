// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	UserID           uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	Subtotal         float64       `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	Tax              float64       `json:"tax" gorm:"type:decimal(10,2);not null"`
	ShippingCost     float64       `json:"shipping_cost" gorm:"type:decimal(10,2);not null"`
	Total            float64       `json:"total" gorm:"type:decimal(10,2);not null"`
	Status           OrderStatus   `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentStatus    PaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentReference string        `json:"payment_reference,omitempty" gorm:"size:255;uniqueIndex:idx_orders_payment_reference,where:payment_reference <> ''"`
	ShippingAddress  JSONB         `json:"shipping_address,omitempty" gorm:"type:jsonb"`
	PaidAt           *time.Time    `json:"paid_at"`

	// Relationships
	User  User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem is an immutable snapshot of the product and its effective price
// at purchase time. Later catalog edits never touch these rows.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	ProductName string    `json:"product_name" gorm:"size:255;not null"`
	UnitPrice   float64   `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`

	// Relationships
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (oi *OrderItem) LineTotal() float64 {
	return oi.UnitPrice * float64(oi.Quantity)
}
