// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"
	"gorm.io/gorm"

	"github.com/trendora/storefront-api/internal/config"
	"github.com/trendora/storefront-api/internal/models"
)

// ErrPaymentNotCompleted is returned when a confirm callback arrives for an
// intent that did not succeed. No order is created in that case.
var ErrPaymentNotCompleted = errors.New("payment was not completed")

// ErrPaymentAlreadyProcessed is returned when a confirm is replayed against
// an intent that already produced an order.
var ErrPaymentAlreadyProcessed = errors.New("payment already processed")

type PaymentService struct {
	db           *gorm.DB
	config       *config.Config
	orderService *OrderService
}

type CheckoutIntentResponse struct {
	ClientSecret string      `json:"client_secret"`
	PaymentID    string      `json:"payment_id"`
	Amount       int64       `json:"amount"` // minor currency units
	Currency     string      `json:"currency"`
	Totals       OrderTotals `json:"totals"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string       `json:"payment_intent_id" validate:"required"`
	ShippingAddress models.JSONB `json:"shipping_address,omitempty"`
}

type RefundRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
	Amount  float64   `json:"amount,omitempty"`
	Reason  string    `json:"reason" validate:"required"`
}

func NewPaymentService(db *gorm.DB, config *config.Config, orderService *OrderService) *PaymentService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		db:           db,
		config:       config,
		orderService: orderService,
	}
}

// CreateCheckoutIntent opens a payment for the user's current cart total.
// The gateway is configured with the amount in minor units; the order itself
// is created only when ConfirmPayment sees a succeeded intent.
func (s *PaymentService) CreateCheckoutIntent(userID uuid.UUID) (*CheckoutIntentResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	var items []models.CartItem
	if err := s.db.Where("user_id = ?", userID).
		Preload("Product").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	totals := ComputeTotals(items)
	amountMinor := MinorUnits(totals.Total)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(s.config.Payment.Currency),
	}
	params.AddMetadata("user_id", userID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &CheckoutIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Amount:       amountMinor,
		Currency:     s.config.Payment.Currency,
		Totals:       totals,
	}, nil
}

// ConfirmPayment checks the intent with the gateway. A succeeded intent is
// the sole trigger for order creation; anything else returns
// ErrPaymentNotCompleted and leaves the cart untouched.
func (s *PaymentService) ConfirmPayment(userID uuid.UUID, req *ConfirmPaymentRequest) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, ErrPaymentNotCompleted
	}

	// Reject confirms replayed against an already-consumed intent. The read
	// is a fast path; two concurrent confirms can both pass it, so the
	// unique index on payment_reference backstops the race and fails the
	// second insert inside PlaceOrder's transaction.
	var existing models.Order
	if err := s.db.Where("payment_reference = ?", pi.ID).First(&existing).Error; err == nil {
		return nil, ErrPaymentAlreadyProcessed
	}

	order, err := s.orderService.PlaceOrder(userID, pi.ID, req.ShippingAddress)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPaymentAlreadyProcessed
		}
		return nil, err
	}

	return order, nil
}

func (s *PaymentService) ProcessRefund(req *RefundRequest) error {
	var order models.Order
	if err := s.db.First(&order, req.OrderID).Error; err != nil {
		return fmt.Errorf("order not found: %w", err)
	}

	if order.PaymentStatus != models.PaymentStatusPaid {
		return errors.New("can only refund paid orders")
	}

	refundAmount := req.Amount
	if refundAmount <= 0 || refundAmount > order.Total {
		refundAmount = order.Total
	}

	if order.PaymentReference != "" {
		params := &stripe.RefundParams{
			PaymentIntent: stripe.String(order.PaymentReference),
			Amount:        stripe.Int64(MinorUnits(refundAmount)),
			Reason:        stripe.String("requested_by_customer"),
		}

		if _, err := refund.New(params); err != nil {
			return fmt.Errorf("failed to process refund: %w", err)
		}
	}

	now := time.Now()
	order.PaymentStatus = models.PaymentStatusRefunded
	order.Status = models.OrderStatusCancelled
	order.UpdatedAt = now

	if err := s.db.Save(&order).Error; err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}
