package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a low-level error into a code and message safe to show
// to users. Sensitive detail stays out of the response; the caller is
// expected to have logged the raw error already.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStrLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations

	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		if strings.Contains(errStrLower, "order_number") {
			return ErrorInfo{Code: ResourceAlreadyExists, Message: "Order number already in use"}
		}
		if strings.Contains(errStrLower, "email") {
			return ErrorInfo{Code: ResourceAlreadyExists, Message: "Email already registered"}
		}
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Record already exists"}
	}

	if strings.Contains(errStrLower, "foreign key constraint") {
		if strings.Contains(errStrLower, "still referenced") {
			return ErrorInfo{Code: ResourceConflict, Message: "Record is referenced by other data and cannot be removed"}
		}
		if strings.Contains(errStrLower, "product_id") {
			return ErrorInfo{Code: CatalogProductNotFound, Message: "Referenced product does not exist"}
		}
		if strings.Contains(errStrLower, "roll_id") {
			return ErrorInfo{Code: CatalogRollNotFound, Message: "Referenced roll does not exist"}
		}
		return ErrorInfo{Code: ResourceNotFound, Message: "Referenced record does not exist"}
	}

	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	}

	// Connectivity

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Service temporarily unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "product"):
		return "Product not found"
	case strings.Contains(contextLower, "roll"):
		return "Roll option not found"
	case strings.Contains(contextLower, "order"):
		return "Order not found"
	case strings.Contains(contextLower, "cart"):
		return "Cart item not found"
	case strings.Contains(contextLower, "design"):
		return "Design not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	}
	return "Requested record not found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Failed to create record. Please try again later"
	case strings.Contains(contextLower, "update"):
		return "Failed to update record. Please try again later"
	case strings.Contains(contextLower, "delete"):
		return "Failed to delete record. Please try again later"
	case strings.Contains(contextLower, "export"):
		return "Failed to generate export. Please try again later"
	}
	return "Something went wrong. Please try again later"
}
