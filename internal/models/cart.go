// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
)

// CartItem is one (user, product) row with a quantity. The composite unique
// index is the authoritative guard against duplicate rows; the service layer
// merges quantities before writing but does not serialize concurrent adds.
type CartItem struct {
	BaseModel
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_cart_user_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`

	// Relationships
	User    User    `json:"-" gorm:"foreignKey:UserID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// LineTotal is the effective unit price times quantity.
func (ci *CartItem) LineTotal() float64 {
	return ci.Product.EffectivePrice() * float64(ci.Quantity)
}
