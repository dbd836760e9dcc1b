// internal/models/price_alert.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// PriceAlert fires when a product's effective price drops to or below the
// target. At most one alert exists per (user, product) pair.
type PriceAlert struct {
	BaseModel
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_alert_user_product"`
	ProductID   uuid.UUID  `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_alert_user_product"`
	TargetPrice float64    `json:"target_price" gorm:"type:decimal(10,2);not null"`
	TriggeredAt *time.Time `json:"triggered_at"`

	// Relationships
	User    User    `json:"-" gorm:"foreignKey:UserID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (a *PriceAlert) Triggered() bool {
	return a.TriggeredAt != nil
}
