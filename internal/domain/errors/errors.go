// Package errors defines the application error taxonomy. Errors carry a kind
// and a business code; protocol-specific mapping (HTTP status codes) belongs
// to the delivery layer, not here.
package errors

import (
	"storefront/internal/errors"
)

// Kind classifies an application error for boundary-layer dispatch.
type Kind string

const (
	// KindNotFound means a referenced entity does not exist.
	KindNotFound Kind = "not_found"
	// KindInvalidArgument means malformed input (non-positive quantity,
	// unrecognized status or discount type).
	KindInvalidArgument Kind = "invalid_argument"
	// KindInvalidState means the operation is not permitted given current
	// entity state.
	KindInvalidState Kind = "invalid_state"
	// KindConflict means the operation collides with existing state, such as
	// a duplicate promotion application.
	KindConflict Kind = "conflict"
	// KindInvalidTransition means an order status change is not allowed by
	// the state machine's transition table.
	KindInvalidTransition Kind = "invalid_transition"
	// KindBusinessRule means a domain policy violation.
	KindBusinessRule Kind = "business_rule"
	// KindInternal means an unexpected infrastructure failure.
	KindInternal Kind = "internal"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	Kind() Kind        // Error classification for boundary dispatch
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	kind      Kind
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(kind Kind, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the error classification.
func (e *BaseError) Kind() Kind {
	return e.kind
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy of the error carrying detailed information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches errors carrying the same business code, so detail-enriched
// copies still compare equal to their predefined value.
func (e *BaseError) Is(target error) bool {
	var other *BaseError
	if !errors.As(target, &other) {
		return false
	}

	return e.errorCode == other.errorCode
}

// Predefined error types
var (
	// Lookup errors
	ErrCartNotFound = NewBaseError(
		KindNotFound,
		"CART_NOT_FOUND",
		"cart does not exist",
		"",
	)

	ErrCartItemNotFound = NewBaseError(
		KindNotFound,
		"CART_ITEM_NOT_FOUND",
		"cart item does not exist",
		"",
	)

	ErrProductNotFound = NewBaseError(
		KindNotFound,
		"PRODUCT_NOT_FOUND",
		"product does not exist",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		KindNotFound,
		"ORDER_NOT_FOUND",
		"order does not exist",
		"",
	)

	ErrAddressNotFound = NewBaseError(
		KindNotFound,
		"ADDRESS_NOT_FOUND",
		"address does not exist",
		"",
	)

	ErrPaymentMethodNotFound = NewBaseError(
		KindNotFound,
		"PAYMENT_METHOD_NOT_FOUND",
		"payment method does not exist",
		"",
	)

	ErrPromotionNotFound = NewBaseError(
		KindNotFound,
		"PROMOTION_NOT_FOUND",
		"promotion does not exist",
		"",
	)

	ErrRevenueReportNotFound = NewBaseError(
		KindNotFound,
		"REVENUE_REPORT_NOT_FOUND",
		"revenue report does not exist for this period",
		"",
	)

	// Input errors
	ErrInvalidQuantity = NewBaseError(
		KindInvalidArgument,
		"INVALID_QUANTITY",
		"quantity must be greater than zero",
		"",
	)

	ErrInvalidOrderStatus = NewBaseError(
		KindInvalidArgument,
		"INVALID_ORDER_STATUS",
		"unrecognized order status",
		"",
	)

	ErrInvalidReportType = NewBaseError(
		KindInvalidArgument,
		"INVALID_REPORT_TYPE",
		"unrecognized report type",
		"",
	)

	ErrUnknownShippingMethod = NewBaseError(
		KindInvalidArgument,
		"UNKNOWN_SHIPPING_METHOD",
		"shipping method is not configured",
		"",
	)

	// State errors
	ErrCartNotActive = NewBaseError(
		KindInvalidState,
		"CART_NOT_ACTIVE",
		"cart is not active and cannot be checked out",
		"",
	)

	ErrInvalidDiscountType = NewBaseError(
		KindInvalidState,
		"INVALID_DISCOUNT_TYPE",
		"promotion carries an unrecognized discount type",
		"",
	)

	ErrActiveCartExists = NewBaseError(
		KindConflict,
		"ACTIVE_CART_EXISTS",
		"customer already has an active cart",
		"",
	)

	ErrPromotionAlreadyApplied = NewBaseError(
		KindConflict,
		"PROMOTION_ALREADY_APPLIED",
		"promotion has already been applied",
		"",
	)

	ErrOrderTransitionNotAllowed = NewBaseError(
		KindInvalidTransition,
		"ORDER_TRANSITION_NOT_ALLOWED",
		"order status transition is not allowed",
		"",
	)

	// Business rule errors
	ErrEmptyCart = NewBaseError(
		KindBusinessRule,
		"EMPTY_CART",
		"cart has no selected items to check out",
		"",
	)

	ErrAddressOwnership = NewBaseError(
		KindBusinessRule,
		"ADDRESS_NOT_OWNED",
		"address is not owned by the cart's customer",
		"",
	)

	ErrPaymentMethodOwnership = NewBaseError(
		KindBusinessRule,
		"PAYMENT_METHOD_NOT_OWNED",
		"payment method is not owned by the cart's customer",
		"",
	)

	ErrPromotionUsageLimitReached = NewBaseError(
		KindBusinessRule,
		"PROMOTION_USAGE_LIMIT_REACHED",
		"promotion has reached its usage limit",
		"",
	)

	ErrPromotionNotApplicable = NewBaseError(
		KindBusinessRule,
		"PROMOTION_NOT_APPLICABLE",
		"promotion is not active for this date",
		"",
	)

	ErrInvalidDiscountValue = NewBaseError(
		KindBusinessRule,
		"INVALID_DISCOUNT_VALUE",
		"discount value is out of range",
		"",
	)

	ErrInvalidPromotionWindow = NewBaseError(
		KindBusinessRule,
		"INVALID_PROMOTION_WINDOW",
		"promotion end date precedes its start date",
		"",
	)

	// General errors
	ErrTransactionFailed = NewBaseError(
		KindInternal,
		"TRANSACTION_FAILED",
		"database transaction failed",
		"",
	)

	ErrInternalError = NewBaseError(
		KindInternal,
		"INTERNAL_ERROR",
		"internal system error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing
// the AppError interface.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error.
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface.
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Kind returns the error classification.
func (e *DatabaseExecuteError) Kind() Kind {
	return KindInternal
}

// ErrorCode returns the business error code.
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message.
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information.
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
