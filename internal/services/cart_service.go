// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendora/storefront-api/internal/models"
)

// ErrNotAuthenticated is returned when a cart mutation arrives without a
// user session. Handlers map it to a sign-in prompt.
var ErrNotAuthenticated = errors.New("authentication required")

var ErrCartItemNotFound = errors.New("cart item not found")

// CartStore is the narrow persistence contract the aggregator depends on.
// The production implementation is GORM over Postgres; tests swap in an
// in-memory store.
type CartStore interface {
	ListByUser(userID uuid.UUID) ([]models.CartItem, error)
	FindByID(id uuid.UUID) (*models.CartItem, error)
	FindByUserAndProduct(userID, productID uuid.UUID) (*models.CartItem, error)
	Save(item *models.CartItem) error
	DeleteByID(id uuid.UUID) error
	DeleteByUser(userID uuid.UUID) error
}

type CartService struct {
	store CartStore
}

func NewCartService(store CartStore) *CartService {
	return &CartService{store: store}
}

// AddToCart merges quantity into the user's existing row for the product,
// or creates a new row, then reloads the cart from the store so totals
// always reflect persisted state. Two near-simultaneous adds for the same
// product can read the same existing quantity and lose one update; the
// unique (user, product) index keeps the row count correct regardless.
func (s *CartService) AddToCart(userID uuid.UUID, product *models.Product, quantity int) ([]models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	if quantity < 1 {
		return nil, errors.New("quantity must be at least 1")
	}

	existing, err := s.store.FindByUserAndProduct(userID, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	if existing != nil {
		existing.Quantity += quantity
		if err := s.store.Save(existing); err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	} else {
		item := &models.CartItem{
			UserID:    userID,
			ProductID: product.ID,
			Quantity:  quantity,
		}
		if err := s.store.Save(item); err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	}

	return s.store.ListByUser(userID)
}

// UpdateQuantity sets an item's quantity. A quantity of zero or less is a
// removal.
func (s *CartService) UpdateQuantity(userID, itemID uuid.UUID, quantity int) ([]models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	if quantity <= 0 {
		return s.RemoveFromCart(userID, itemID)
	}

	item, err := s.store.FindByID(itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart item: %w", err)
	}
	if item == nil || item.UserID != userID {
		return nil, ErrCartItemNotFound
	}

	item.Quantity = quantity
	if err := s.store.Save(item); err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return s.store.ListByUser(userID)
}

func (s *CartService) RemoveFromCart(userID, itemID uuid.UUID) ([]models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	item, err := s.store.FindByID(itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart item: %w", err)
	}
	if item == nil || item.UserID != userID {
		return nil, ErrCartItemNotFound
	}

	if err := s.store.DeleteByID(itemID); err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return s.store.ListByUser(userID)
}

// ClearCart deletes every row for the user. The result is known to be empty,
// so no reload round trip is made.
func (s *CartService) ClearCart(userID uuid.UUID) ([]models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	if err := s.store.DeleteByUser(userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	return []models.CartItem{}, nil
}

func (s *CartService) GetCart(userID uuid.UUID) ([]models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	return s.store.ListByUser(userID)
}

// GetCartWithTotals returns the cart plus its checkout breakdown.
func (s *CartService) GetCartWithTotals(userID uuid.UUID) ([]models.CartItem, OrderTotals, error) {
	items, err := s.GetCart(userID)
	if err != nil {
		return nil, OrderTotals{}, err
	}
	return items, ComputeTotals(items), nil
}

// gormCartStore is the Postgres-backed CartStore.
type gormCartStore struct {
	db *gorm.DB
}

func NewGormCartStore(db *gorm.DB) CartStore {
	return &gormCartStore{db: db}
}

func (s *gormCartStore) ListByUser(userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *gormCartStore) FindByID(id uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.Preload("Product").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *gormCartStore) FindByUserAndProduct(userID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *gormCartStore) Save(item *models.CartItem) error {
	return s.db.Save(item).Error
}

func (s *gormCartStore) DeleteByID(id uuid.UUID) error {
	return s.db.Delete(&models.CartItem{}, id).Error
}

func (s *gormCartStore) DeleteByUser(userID uuid.UUID) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
