// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/trendora/storefront-api/internal/models"
)

// memCartStore is an in-memory CartStore for exercising the aggregator
// without a database.
type memCartStore struct {
	items map[uuid.UUID]*models.CartItem
	order []uuid.UUID
}

func newMemCartStore() *memCartStore {
	return &memCartStore{items: make(map[uuid.UUID]*models.CartItem)}
}

func (s *memCartStore) ListByUser(userID uuid.UUID) ([]models.CartItem, error) {
	result := []models.CartItem{}
	for _, id := range s.order {
		if item, ok := s.items[id]; ok && item.UserID == userID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (s *memCartStore) FindByID(id uuid.UUID) (*models.CartItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (s *memCartStore) FindByUserAndProduct(userID, productID uuid.UUID) (*models.CartItem, error) {
	for _, item := range s.items {
		if item.UserID == userID && item.ProductID == productID {
			copied := *item
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memCartStore) Save(item *models.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
		s.order = append(s.order, item.ID)
	} else if _, ok := s.items[item.ID]; !ok {
		s.order = append(s.order, item.ID)
	}
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

func (s *memCartStore) DeleteByID(id uuid.UUID) error {
	delete(s.items, id)
	return nil
}

func (s *memCartStore) DeleteByUser(userID uuid.UUID) error {
	for id, item := range s.items {
		if item.UserID == userID {
			delete(s.items, id)
		}
	}
	return nil
}

func testProduct(name string, price float64) *models.Product {
	p := &models.Product{Name: name, Price: price, StockQuantity: 10}
	p.ID = uuid.New()
	return p
}

func TestAddToCartCreatesSingleRowPerProduct(t *testing.T) {
	svc := NewCartService(newMemCartStore())
	userID := uuid.New()
	hoodie := testProduct("Hoodie", 899)

	items, err := svc.AddToCart(userID, hoodie, 1)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	// Adding the same product again merges into the existing row
	items, err = svc.AddToCart(userID, hoodie, 2)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddToCartDistinctProductsGetDistinctRows(t *testing.T) {
	svc := NewCartService(newMemCartStore())
	userID := uuid.New()

	_, err := svc.AddToCart(userID, testProduct("Hoodie", 899), 1)
	assert.NoError(t, err)

	items, err := svc.AddToCart(userID, testProduct("Shoes", 1999), 1)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestAddToCartRequiresAuthentication(t *testing.T) {
	svc := NewCartService(newMemCartStore())

	_, err := svc.AddToCart(uuid.Nil, testProduct("Hoodie", 899), 1)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	svc := NewCartService(newMemCartStore())

	_, err := svc.AddToCart(uuid.New(), testProduct("Hoodie", 899), 0)
	assert.Error(t, err)
}

func TestAddToCartDoesNotMergeAcrossUsers(t *testing.T) {
	store := newMemCartStore()
	svc := NewCartService(store)
	hoodie := testProduct("Hoodie", 899)

	alice := uuid.New()
	bob := uuid.New()

	aliceItems, err := svc.AddToCart(alice, hoodie, 1)
	assert.NoError(t, err)
	bobItems, err := svc.AddToCart(bob, hoodie, 5)
	assert.NoError(t, err)

	assert.Len(t, aliceItems, 1)
	assert.Len(t, bobItems, 1)
	assert.Equal(t, 5, bobItems[0].Quantity)

	refreshed, err := svc.GetCart(alice)
	assert.NoError(t, err)
	assert.Equal(t, 1, refreshed[0].Quantity)
}

func TestUpdateQuantitySetsNewValue(t *testing.T) {
	svc := NewCartService(newMemCartStore())
	userID := uuid.New()

	items, err := svc.AddToCart(userID, testProduct("Hoodie", 899), 1)
	assert.NoError(t, err)

	items, err = svc.UpdateQuantity(userID, items[0].ID, 7)
	assert.NoError(t, err)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestUpdateQuantityZeroRemovesItem(t *testing.T) {
	svc := NewCartService(newMemCartStore())
	userID := uuid.New()

	items, err := svc.AddToCart(userID, testProduct("Hoodie", 899), 2)
	assert.NoError(t, err)

	items, err = svc.UpdateQuantity(userID, items[0].ID, 0)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateQuantityOtherUsersItemNotFound(t *testing.T) {
	svc := NewCartService(newMemCartStore())
	owner := uuid.New()

	items, err := svc.AddToCart(owner, testProduct("Hoodie", 899), 1)
	assert.NoError(t, err)

	_, err = svc.UpdateQuantity(uuid.New(), items[0].ID, 3)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestRemoveFromCartUnknownItem(t *testing.T) {
	svc := NewCartService(newMemCartStore())

	_, err := svc.RemoveFromCart(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestClearCartReturnsEmptyWithoutReload(t *testing.T) {
	svc := NewCartService(newMemCartStore())
	userID := uuid.New()

	_, err := svc.AddToCart(userID, testProduct("Hoodie", 899), 1)
	assert.NoError(t, err)
	_, err = svc.AddToCart(userID, testProduct("Shoes", 1999), 1)
	assert.NoError(t, err)

	items, err := svc.ClearCart(userID)
	assert.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	refreshed, err := svc.GetCart(userID)
	assert.NoError(t, err)
	assert.Empty(t, refreshed)
}

func TestClearCartOnlyAffectsOwner(t *testing.T) {
	svc := NewCartService(newMemCartStore())
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.AddToCart(alice, testProduct("Hoodie", 899), 1)
	assert.NoError(t, err)
	_, err = svc.AddToCart(bob, testProduct("Shoes", 1999), 1)
	assert.NoError(t, err)

	_, err = svc.ClearCart(alice)
	assert.NoError(t, err)

	bobItems, err := svc.GetCart(bob)
	assert.NoError(t, err)
	assert.Len(t, bobItems, 1)
}

func TestGetCartWithTotals(t *testing.T) {
	store := newMemCartStore()
	svc := NewCartService(store)
	userID := uuid.New()

	hoodie := testProduct("Hoodie", 450)
	item := &models.CartItem{
		UserID:    userID,
		ProductID: hoodie.ID,
		Quantity:  1,
		Product:   *hoodie,
	}
	assert.NoError(t, store.Save(item))

	_, totals, err := svc.GetCartWithTotals(userID)
	assert.NoError(t, err)
	assert.Equal(t, 450.0, totals.Subtotal)
	assert.Equal(t, 81.0, totals.Tax)
	assert.Equal(t, 50.0, totals.ShippingCost)
	assert.Equal(t, 581.0, totals.Total)
}
