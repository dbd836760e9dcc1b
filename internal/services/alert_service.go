// internal/services/alert_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/trendora/storefront-api/internal/models"
)

type AlertService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type SetAlertRequest struct {
	ProductID   uuid.UUID `json:"product_id" validate:"required"`
	TargetPrice float64   `json:"target_price" validate:"required,gt=0"`
}

func NewAlertService(db *gorm.DB, notificationService *NotificationService) *AlertService {
	return &AlertService{
		db:                  db,
		notificationService: notificationService,
	}
}

// SetAlert creates or replaces the single alert a user holds on a product.
// Replacing resets the triggered marker so the new target fires again.
func (s *AlertService) SetAlert(userID uuid.UUID, req *SetAlertRequest) (*models.PriceAlert, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	var product models.Product
	if err := s.db.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	var alert models.PriceAlert
	err := s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&alert).Error
	switch {
	case err == nil:
		alert.TargetPrice = req.TargetPrice
		alert.TriggeredAt = nil
		if err := s.db.Save(&alert).Error; err != nil {
			return nil, fmt.Errorf("failed to update alert: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		alert = models.PriceAlert{
			UserID:      userID,
			ProductID:   req.ProductID,
			TargetPrice: req.TargetPrice,
		}
		if err := s.db.Create(&alert).Error; err != nil {
			return nil, fmt.Errorf("failed to create alert: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to check existing alert: %w", err)
	}

	return &alert, nil
}

func (s *AlertService) RemoveAlert(userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrNotAuthenticated
	}

	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.PriceAlert{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove alert: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("alert not found")
	}

	return nil
}

func (s *AlertService) GetUserAlerts(userID uuid.UUID) ([]models.PriceAlert, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	var alerts []models.PriceAlert
	if err := s.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at DESC").
		Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch alerts: %w", err)
	}

	return alerts, nil
}

// SweepProductAlerts fires pending alerts whose target the product's effective
// price now meets. Called after any price change; each alert fires once until
// its target is reset.
func (s *AlertService) SweepProductAlerts(productID uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}

	currentPrice := product.EffectivePrice()

	var pending []models.PriceAlert
	if err := s.db.Where("product_id = ? AND triggered_at IS NULL AND target_price >= ?", productID, currentPrice).
		Find(&pending).Error; err != nil {
		return fmt.Errorf("failed to fetch pending alerts: %w", err)
	}

	now := time.Now()
	for i := range pending {
		alert := &pending[i]
		alert.TriggeredAt = &now

		if err := s.db.Save(alert).Error; err != nil {
			logrus.WithError(err).WithField("alert_id", alert.ID).Error("Failed to mark alert triggered")
			continue
		}

		go func(a models.PriceAlert) {
			if err := s.notificationService.SendPriceAlertEmail(&a, &product); err != nil {
				logrus.WithError(err).WithField("alert_id", a.ID).Error("Failed to send price alert email")
			}
		}(*alert)
	}

	return nil
}
