package custom_error

import (
	"fmt"
	"net/http"
)

type CustomError interface {
	Error() string
}

type UniqueViolationError struct {
	message string
	code    string // PostgreSQL error code (e.g., "23505")
}

type ForeignKeyViolationError struct {
	message string
	code    string // PostgreSQL error code (e.g., "23503")
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.message, e.code)
}

func (f *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", f.message, f.code)
}

func WrapDBError(message, code string) CustomError {
	switch code {
	case "23505":
		return &UniqueViolationError{
			message: message,
			code:    code,
		}
	case "23503":
		return &ForeignKeyViolationError{
			message: "Value is already used by other resources " + message,
			code:    code,
		}
	default:
		return fmt.Errorf("uncategorized error occurred with code %s: %s", code, message)
	}
}

// ValidationError covers malformed or missing input rejected before any write.
type ValidationError struct {
	Message  string `json:"message"`
	Property string `json:"property,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message, property string) *ValidationError {
	return &ValidationError{Message: message, Property: property}
}

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id interface{}) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ForbiddenError signals that the caller's role does not permit the action.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

// ConflictError covers state conflicts: already assigned assets, already
// returned assignments, duplicate keys surfaced at the service layer.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// InvariantError signals an attempted write that would break a data invariant
// (exclusive ownership, negative quantity, date ordering).
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return e.Message
}

func NewInvariantError(message string) *InvariantError {
	return &InvariantError{Message: message}
}

// InvalidTransitionError is returned for order status edges outside the
// transition table, including self-loops and moves out of terminal states.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transition from '%s' to '%s' is not allowed", e.From, e.To)
}

// InsufficientStockError carries the requested vs available amounts so the
// caller can render a useful message.
type InsufficientStockError struct {
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

// HTTPStatus maps the error taxonomy to a response status code.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ValidationError, *InvariantError, *InvalidTransitionError, *InsufficientStockError:
		return http.StatusBadRequest
	case *ForbiddenError:
		return http.StatusForbidden
	case *NotFoundError:
		return http.StatusNotFound
	case *ConflictError, *UniqueViolationError, *ForeignKeyViolationError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
