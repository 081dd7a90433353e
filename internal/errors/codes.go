package errors

// Error code constants, CATEGORY_SPECIFIC_DETAIL. The frontend maps these
// codes to display messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzStaffOnly    = "AUTHZ_STAFF_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput    = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID       = "VALIDATION_INVALID_ID"
	ValidationInvalidQuantity = "VALIDATION_INVALID_QUANTITY"
	ValidationRequired        = "VALIDATION_REQUIRED"

	// ==================== Pricing (PRICING_) ====================
	PricingMissingSize    = "PRICING_MISSING_SIZE"
	PricingCutExceedsRoll = "PRICING_CUT_EXCEEDS_ROLL"

	// ==================== Catalog (CATALOG_) ====================
	CatalogProductNotFound = "CATALOG_PRODUCT_NOT_FOUND"
	CatalogRollNotFound    = "CATALOG_ROLL_NOT_FOUND"
	CatalogInvalidOption   = "CATALOG_INVALID_OPTION"

	// ==================== Cart (CART_) ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND"
	CartEmpty        = "CART_EMPTY"

	// ==================== Order (ORDER_) ====================
	OrderNotFound             = "ORDER_NOT_FOUND"
	OrderItemNotFound         = "ORDER_ITEM_NOT_FOUND"
	OrderLocked               = "ORDER_LOCKED"
	OrderAlreadyLocked        = "ORDER_ALREADY_LOCKED"
	OrderNotLocked            = "ORDER_NOT_LOCKED"
	OrderUnlockReasonRequired = "ORDER_UNLOCK_REASON_REQUIRED"

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExportError   = "INTERNAL_EXPORT_ERROR"
)
