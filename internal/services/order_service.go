// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendora/storefront-api/internal/models"
	"github.com/trendora/storefront-api/internal/utils"
)

var ErrEmptyCart = errors.New("cart is empty")

type OrderService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

func NewOrderService(db *gorm.DB, notificationService *NotificationService) *OrderService {
	return &OrderService{
		db:                  db,
		notificationService: notificationService,
	}
}

// PlaceOrder turns the user's cart into an order. It is called exactly once
// per successful payment callback and never on failure or dismissal. The
// order row, its price-at-purchase item snapshots, the stock decrements and
// the cart wipe happen in one DB transaction.
func (s *OrderService) PlaceOrder(userID uuid.UUID, paymentReference string, shippingAddress models.JSONB) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).
			Preload("Product").
			Order("created_at ASC").
			Find(&items).Error; err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}

		if len(items) == 0 {
			return ErrEmptyCart
		}

		for i := range items {
			if items[i].Product.StockQuantity < items[i].Quantity {
				return fmt.Errorf("insufficient stock for %s", items[i].Product.Name)
			}
		}

		totals := ComputeTotals(items)
		now := time.Now()

		order = &models.Order{
			UserID:           userID,
			Subtotal:         totals.Subtotal,
			Tax:              totals.Tax,
			ShippingCost:     totals.ShippingCost,
			Total:            totals.Total,
			Status:           models.OrderStatusConfirmed,
			PaymentStatus:    models.PaymentStatusPaid,
			PaymentReference: paymentReference,
			ShippingAddress:  shippingAddress,
			PaidAt:           &now,
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			orderItem := models.OrderItem{
				OrderID:     order.ID,
				ProductID:   items[i].ProductID,
				ProductName: items[i].Product.Name,
				UnitPrice:   items[i].Product.EffectivePrice(),
				Quantity:    items[i].Quantity,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}

			if err := tx.Model(&models.Product{}).Where("id = ?", items[i].ProductID).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", items[i].Quantity)).Error; err != nil {
				return fmt.Errorf("failed to update stock: %w", err)
			}
			if err := tx.Model(&models.Product{}).Where("id = ?", items[i].ProductID).
				UpdateColumn("sales_count", gorm.Expr("sales_count + ?", items[i].Quantity)).Error; err != nil {
				return fmt.Errorf("failed to update sales count: %w", err)
			}
		}

		// Bulk-delete the cart; the caller's next read sees an empty cart
		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// Reload with items and user for the response and notifications
	s.db.Preload("Items").Preload("User").First(order, order.ID)

	if s.notificationService != nil {
		go s.notificationService.SendOrderConfirmation(order)
		go s.notificationService.NotifyAdminNewOrder(order)
	}

	return order, nil
}

func (s *OrderService) GetOrder(userID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.UserID != userID {
		return nil, errors.New("order not found")
	}

	return &order, nil
}

func (s *OrderService) GetUserOrders(userID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("user_id = ?", userID).Preload("Items")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "total", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}
