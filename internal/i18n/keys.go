// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Products
	KeyProductCreated    = "product.created"
	KeyProductUpdated    = "product.updated"
	KeyProductDeleted    = "product.deleted"
	KeyProductNotFound   = "product.not_found"
	KeyProductOutOfStock = "product.out_of_stock"

	// Cart
	KeyCartItemAdded    = "cart.item_added"
	KeyCartItemUpdated  = "cart.item_updated"
	KeyCartItemRemoved  = "cart.item_removed"
	KeyCartCleared      = "cart.cleared"
	KeyCartItemNotFound = "cart.not_found"

	// Orders
	KeyOrderPlaced   = "order.placed"
	KeyOrderNotFound = "order.not_found"
	KeyOrderUpdated  = "order.updated"

	// Payments
	KeyPaymentSuccess = "payment.success"
	KeyPaymentFailed  = "payment.failed"

	// Wishlist
	KeyWishlistUpdated = "wishlist.updated"
	KeyWishlistCleared = "wishlist.cleared"

	// Reviews
	KeyReviewCreated  = "review.created"
	KeyReviewNotFound = "review.not_found"

	// Price alerts
	KeyAlertSet      = "alert.set"
	KeyAlertRemoved  = "alert.removed"
	KeyAlertNotFound = "alert.not_found"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"
	KeyUserNotFound      = "user.not_found"
	KeyUserUpdated       = "user.updated"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// File upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
)
