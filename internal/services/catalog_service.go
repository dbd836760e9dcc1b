// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendora/storefront-api/internal/models"
	"github.com/trendora/storefront-api/internal/utils"
)

const (
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
)

// ProductFilter holds the storefront browse controls. All set filters are
// conjunctive; zero values match everything.
type ProductFilter struct {
	Search     string     `json:"search"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	PriceMin   *float64   `json:"price_min,omitempty"`
	PriceMax   *float64   `json:"price_max,omitempty"`
	SortBy     string     `json:"sort_by"`
}

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// FilterProducts applies the browse filters over an in-memory catalog and
// returns a new slice. The input is never mutated, and the whole result is
// recomputed on every call; catalogs are small enough that an O(n) pass per
// keystroke is fine. Equal sort keys keep catalog order (stable sort).
func FilterProducts(products []models.Product, filter ProductFilter) []models.Product {
	query := strings.ToLower(strings.TrimSpace(filter.Search))

	result := make([]models.Product, 0, len(products))
	for _, p := range products {
		if query != "" && !matchesQuery(&p, query) {
			continue
		}
		if filter.CategoryID != nil {
			if p.CategoryID == nil || *p.CategoryID != *filter.CategoryID {
				continue
			}
		}
		price := p.EffectivePrice()
		if filter.PriceMin != nil && price < *filter.PriceMin {
			continue
		}
		if filter.PriceMax != nil && price > *filter.PriceMax {
			continue
		}
		result = append(result, p)
	}

	sortProducts(result, filter.SortBy)
	return result
}

func matchesQuery(p *models.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.ShortDescription), query)
}

func sortProducts(products []models.Product, sortBy string) {
	switch sortBy {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice() < products[j].EffectivePrice()
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice() > products[j].EffectivePrice()
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	default: // SortNewest
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

// ListProducts loads the active catalog and runs it through the filter
// pipeline.
func (s *CatalogService) ListProducts(filter ProductFilter) ([]models.Product, error) {
	products, err := s.activeProducts()
	if err != nil {
		return nil, err
	}
	return FilterProducts(products, filter), nil
}

func (s *CatalogService) activeProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("status = ?", models.ProductStatusActive).
		Preload("Category").
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Category").Preload("Reviews").Preload("Reviews.User").
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *CatalogService) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) GetFlashSaleProducts(limit int) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("status = ? AND is_flash_sale = ?", models.ProductStatusActive, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch flash sale products: %w", err)
	}
	return products, nil
}

// Admin-side catalog management.

type CreateProductRequest struct {
	Name             string     `json:"name" validate:"required,min=3,max=255"`
	Description      string     `json:"description" validate:"required,min=10"`
	ShortDescription string     `json:"short_description,omitempty" validate:"omitempty,max=500"`
	CategoryID       *uuid.UUID `json:"category_id,omitempty"`
	Price            float64    `json:"price" validate:"required,gt=0"`
	DiscountPrice    *float64   `json:"discount_price,omitempty" validate:"omitempty,gt=0"`
	StockQuantity    int        `json:"stock_quantity" validate:"min=0"`
	IsFlashSale      bool       `json:"is_flash_sale"`
	Images           []string   `json:"images,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
	Status           string     `json:"status,omitempty"`
}

type UpdateProductRequest struct {
	Name             string     `json:"name,omitempty" validate:"omitempty,min=3,max=255"`
	Description      string     `json:"description,omitempty" validate:"omitempty,min=10"`
	ShortDescription string     `json:"short_description,omitempty" validate:"omitempty,max=500"`
	CategoryID       *uuid.UUID `json:"category_id,omitempty"`
	Price            *float64   `json:"price,omitempty" validate:"omitempty,gt=0"`
	DiscountPrice    *float64   `json:"discount_price,omitempty"`
	StockQuantity    *int       `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	IsFlashSale      *bool      `json:"is_flash_sale,omitempty"`
	Images           []string   `json:"images,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
	Status           string     `json:"status,omitempty"`
}

func (s *CatalogService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	status := models.ProductStatusDraft
	if req.Status != "" {
		status = models.ProductStatus(req.Status)
	}

	product := &models.Product{
		Name:             req.Name,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		CategoryID:       req.CategoryID,
		Price:            req.Price,
		DiscountPrice:    req.DiscountPrice,
		StockQuantity:    req.StockQuantity,
		IsFlashSale:      req.IsFlashSale,
		Images:           req.Images,
		Tags:             req.Tags,
		Status:           status,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.db.Preload("Category").First(product, product.ID)
	return product, nil
}

func (s *CatalogService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.ShortDescription != "" {
		updates["short_description"] = req.ShortDescription
	}
	if req.CategoryID != nil {
		updates["category_id"] = req.CategoryID
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.DiscountPrice != nil {
		updates["discount_price"] = req.DiscountPrice
	}
	if req.StockQuantity != nil {
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.IsFlashSale != nil {
		updates["is_flash_sale"] = *req.IsFlashSale
	}
	if req.Images != nil {
		updates["images"] = req.Images
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.db.Preload("Category").First(&product, id)
	return &product, nil
}

func (s *CatalogService) DeleteProduct(id uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	// Check if the product appears in any order before removing it
	var orderCount int64
	if err := s.db.Model(&models.OrderItem{}).
		Where("product_id = ?", id).
		Count(&orderCount).Error; err != nil {
		return fmt.Errorf("failed to check orders: %w", err)
	}

	if orderCount > 0 {
		// Keep the row for order history; archive instead of deleting
		return s.db.Model(&product).Update("status", models.ProductStatusArchived).Error
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
