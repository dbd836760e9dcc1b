// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Category struct {
	BaseModel
	Name        string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Slug        string `json:"slug" gorm:"size:100;not null;uniqueIndex"`
	Description string `json:"description,omitempty" gorm:"type:text"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

type Product struct {
	BaseModel
	Name             string         `json:"name" gorm:"size:255;not null"`
	Description      string         `json:"description" gorm:"type:text"`
	ShortDescription string         `json:"short_description" gorm:"size:500"`
	CategoryID       *uuid.UUID     `json:"category_id" gorm:"type:uuid;index"`
	Price            float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	DiscountPrice    *float64       `json:"discount_price,omitempty" gorm:"type:decimal(10,2)"`
	StockQuantity    int            `json:"stock_quantity" gorm:"default:0"`
	Rating           float64        `json:"rating" gorm:"type:decimal(3,2);default:0"`
	ReviewCount      int64          `json:"review_count" gorm:"default:0"`
	IsFlashSale      bool           `json:"is_flash_sale" gorm:"default:false"`
	Images           pq.StringArray `json:"images" gorm:"type:text[]"`
	Tags             pq.StringArray `json:"tags" gorm:"type:text[]"`
	Status           ProductStatus  `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	SalesCount       int64          `json:"sales_count" gorm:"default:0"`

	// Relationships
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Reviews  []Review  `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}

// EffectivePrice returns the discount price when one is set, else the list
// price. All cart, order and filter arithmetic works on this value.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}
