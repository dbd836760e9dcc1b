// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendora/storefront-api/internal/config"
	"github.com/trendora/storefront-api/internal/models"
)

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

type NotificationRequest struct {
	UserID    uuid.UUID              `json:"user_id" validate:"required"`
	Type      string                 `json:"type" validate:"required"`
	Title     string                 `json:"title" validate:"required"`
	Message   string                 `json:"message" validate:"required"`
	Data      map[string]interface{} `json:"data,omitempty"`
	SendEmail bool                   `json:"send_email,omitempty"`
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

// Authentication notifications
func (s *NotificationService) SendWelcomeEmail(user *models.User) error {
	template := s.getEmailTemplate("welcome")

	data := map[string]interface{}{
		"FullName":  user.FullName,
		"StoreName": s.config.Store.Name,
		"StoreURL":  s.config.Frontend.BaseURL,
	}

	subject := "Welcome to " + s.config.Store.Name
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

func (s *NotificationService) SendPasswordResetEmail(user *models.User, resetToken string) error {
	template := s.getEmailTemplate("password_reset")

	data := map[string]interface{}{
		"FullName":  user.FullName,
		"ResetURL":  fmt.Sprintf("%s/reset-password?token=%s", s.config.Frontend.BaseURL, resetToken),
		"ExpiresIn": "1 hour",
	}

	subject := "Password Reset Request"
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

// Order notifications
func (s *NotificationService) SendOrderConfirmation(order *models.Order) error {
	var user models.User
	if err := s.db.First(&user, order.UserID).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	data := map[string]interface{}{
		"FullName":     user.FullName,
		"OrderID":      order.ID,
		"Subtotal":     fmt.Sprintf("%.2f", order.Subtotal),
		"Tax":          fmt.Sprintf("%.2f", order.Tax),
		"ShippingCost": fmt.Sprintf("%.2f", order.ShippingCost),
		"Total":        fmt.Sprintf("%.2f", order.Total),
		"ItemCount":    len(order.Items),
		"OrderURL":     fmt.Sprintf("%s/orders/%s", s.config.Frontend.BaseURL, order.ID),
	}

	subject := fmt.Sprintf("Order Confirmed - %s", order.ID)
	template := s.getEmailTemplate("order_confirmation")
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

func (s *NotificationService) SendOrderStatusUpdate(order *models.Order) error {
	var user models.User
	if err := s.db.First(&user, order.UserID).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	data := map[string]interface{}{
		"FullName": user.FullName,
		"OrderID":  order.ID,
		"Status":   order.Status,
		"OrderURL": fmt.Sprintf("%s/orders/%s", s.config.Frontend.BaseURL, order.ID),
	}

	subject := fmt.Sprintf("Order Update - %s", order.ID)
	template := s.getEmailTemplate("order_status")
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

func (s *NotificationService) SendRefundNotification(order *models.Order, reason string) error {
	var user models.User
	if err := s.db.First(&user, order.UserID).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	data := map[string]interface{}{
		"FullName": user.FullName,
		"OrderID":  order.ID,
		"Amount":   fmt.Sprintf("%.2f", order.Total),
		"Reason":   reason,
	}

	subject := fmt.Sprintf("Refund Processed - %s", order.ID)
	template := s.getEmailTemplate("refund_notification")
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

// Price alert notifications
func (s *NotificationService) SendPriceAlertEmail(alert *models.PriceAlert, product *models.Product) error {
	var user models.User
	if err := s.db.First(&user, alert.UserID).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	data := map[string]interface{}{
		"FullName":     user.FullName,
		"ProductName":  product.Name,
		"TargetPrice":  fmt.Sprintf("%.2f", alert.TargetPrice),
		"CurrentPrice": fmt.Sprintf("%.2f", product.EffectivePrice()),
		"ProductURL":   fmt.Sprintf("%s/products/%s", s.config.Frontend.BaseURL, product.ID),
	}

	subject := "Price Drop Alert - " + product.Name
	template := s.getEmailTemplate("price_alert")
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

// Admin notifications
func (s *NotificationService) NotifyAdminNewOrder(order *models.Order) error {
	notification := &models.AdminNotification{
		Type:                "new_order",
		Title:               "New Order Placed",
		Message:             fmt.Sprintf("Order %s placed for %.2f", order.ID, order.Total),
		Priority:            "medium",
		RelatedResourceType: "order",
		RelatedResourceID:   &order.ID,
	}

	if err := s.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (s *NotificationService) NotifyAdminLowStock(product *models.Product) error {
	notification := &models.AdminNotification{
		Type:                "low_stock",
		Title:               "Low Stock Warning",
		Message:             fmt.Sprintf("Product '%s' is down to %d units", product.Name, product.StockQuantity),
		Priority:            "high",
		RelatedResourceType: "product",
		RelatedResourceID:   &product.ID,
	}

	if err := s.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (s *NotificationService) SendUserStatusChangeNotification(user *models.User, oldStatus models.UserStatus, reason string) error {
	data := map[string]interface{}{
		"FullName":  user.FullName,
		"NewStatus": user.Status,
		"OldStatus": oldStatus,
		"Reason":    reason,
	}

	subject := "Account Status Update"
	template := s.getEmailTemplate("user_status_change")
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

// Generic notification methods
func (s *NotificationService) SendCustomNotification(req *NotificationRequest) error {
	notification := &models.AdminNotification{
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
	}

	if err := s.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if req.SendEmail {
		var user models.User
		if err := s.db.First(&user, req.UserID).Error; err != nil {
			return fmt.Errorf("user not found: %w", err)
		}

		return s.sendEmail(user.Email, req.Title, req.Message)
	}

	return nil
}

// Helper methods
func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		fmt.Printf("Email would be sent to %s: %s\n", to, subject)
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	// In a real implementation, these would be loaded from files or database
	templates := map[string]EmailTemplate{
		"welcome": {
			Subject: "Welcome",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Welcome {{.FullName}}!</h2>
	<p>Thank you for joining {{.StoreName}}. Start exploring our catalog:</p>
	<a href="{{.StoreURL}}">Browse Products</a>
	<p>Best regards,<br>{{.StoreName}} Team</p>
</body>
</html>`,
		},
		"order_confirmation": {
			Subject: "Order Confirmed",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thank you for your order, {{.FullName}}!</h2>
	<p>Your order <strong>{{.OrderID}}</strong> has been confirmed.</p>
	<table>
		<tr><td>Subtotal</td><td>{{.Subtotal}}</td></tr>
		<tr><td>Tax (GST)</td><td>{{.Tax}}</td></tr>
		<tr><td>Shipping</td><td>{{.ShippingCost}}</td></tr>
		<tr><td><strong>Total</strong></td><td><strong>{{.Total}}</strong></td></tr>
	</table>
	<a href="{{.OrderURL}}">View Order Details</a>
</body>
</html>`,
		},
		"price_alert": {
			Subject: "Price Drop Alert",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Good news, {{.FullName}}!</h2>
	<p>"{{.ProductName}}" has dropped to <strong>{{.CurrentPrice}}</strong>, at or below your target of {{.TargetPrice}}.</p>
	<a href="{{.ProductURL}}">Buy Now</a>
</body>
</html>`,
		},
		// Add more templates as needed...
	}

	if template, exists := templates[templateType]; exists {
		return template
	}

	// Default template
	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
