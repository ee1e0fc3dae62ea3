// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"
	KeyAuthTokenExpired = "auth.token_expired"

	// Ledger
	KeyLedgerUnavailable = "ledger.unavailable"
	KeyLedgerRejected    = "ledger.rejected"

	// Profile
	KeyProfileUpdated  = "profile.updated"
	KeyProfileNotFound = "profile.not_found"

	// Products
	KeyProductCreated       = "product.created"
	KeyProductUpdated       = "product.updated"
	KeyProductDeleted       = "product.deleted"
	KeyProductNotFound      = "product.not_found"
	KeyProductInvalidFields = "product.invalid_fields"

	// Certificates
	KeyCertificateMinted   = "certificate.minted"
	KeyCertificateNotFound = "certificate.not_found"

	// Orders
	KeyOrderPlaced        = "order.placed"
	KeyOrderStatusUpdated = "order.status_updated"
	KeyOrderNotFound      = "order.not_found"

	// Hubs
	KeyHubApplied     = "hub.applied"
	KeyHubSubmitted   = "hub.submitted"
	KeyHubUpdated     = "hub.updated"
	KeyHubApproved    = "hub.approved"
	KeyHubRejected    = "hub.rejected"
	KeyHubSuspended   = "hub.suspended"
	KeyHubReactivated = "hub.reactivated"
	KeyHubDeleted     = "hub.deleted"
	KeyHubNotFound    = "hub.not_found"

	// Inventory
	KeyInventoryAssigned  = "inventory.assigned"
	KeyInventoryRemoved   = "inventory.removed"
	KeyInventoryUpdated   = "inventory.updated"
	KeyInventoryRestocked = "inventory.restocked"

	// Tours
	KeyTourCreated  = "tour.created"
	KeyTourUpdated  = "tour.updated"
	KeyTourDeleted  = "tour.deleted"
	KeyTourNotFound = "tour.not_found"

	// Payments
	KeyPaymentIntentCreated = "payment.intent_created"
	KeyPaymentNotConfigured = "payment.not_configured"
	KeyPaymentInvalidAmount = "payment.invalid_amount"
	KeyStripeConfigured     = "payment.stripe_configured"

	// Admin
	KeyAdminAccessDenied    = "admin.access_denied"
	KeyNotificationRead     = "notification.read"
	KeyNotificationNotFound = "notification.not_found"
	KeyReportFormatInvalid  = "report.invalid_format"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
)
