package utils

import (
	"errors"
	"fmt"
)

// Error codes shared by the service layer and the HTTP handlers
const (
	CodeInsufficientStock       = "INSUFFICIENT_STOCK"
	CodeTechnicianUnavailable   = "TECHNICIAN_UNAVAILABLE"
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeNotFound                = "NOT_FOUND"
	CodeValidation              = "VALIDATION_ERROR"
)

// AppError represents a business-rule or input error raised by the order core.
// Two AppErrors match under errors.Is when their codes are equal, so callers can
// test against the sentinel values below regardless of the detailed message.
type AppError struct {
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// Is reports whether target is an AppError with the same code
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrInsufficientStock       = &AppError{Code: CodeInsufficientStock, Message: "insufficient stock"}
	ErrTechnicianUnavailable   = &AppError{Code: CodeTechnicianUnavailable, Message: "technician is not available"}
	ErrInvalidStatusTransition = &AppError{Code: CodeInvalidStatusTransition, Message: "invalid status transition"}
	ErrNotFound                = &AppError{Code: CodeNotFound, Message: "not found"}
	ErrValidation              = &AppError{Code: CodeValidation, Message: "validation failed"}
)

// InsufficientStockError reports a stock mutation that would take a product below zero
func InsufficientStockError(product string, requested, available int) error {
	return &AppError{
		Code:    CodeInsufficientStock,
		Message: fmt.Sprintf("Insufficient stock for %s: requested %d, available %d", product, requested, available),
	}
}

// TechnicianUnavailableError reports a service date outside the technician's active weekdays
func TechnicianUnavailableError(technicianID uint, weekday int) error {
	return &AppError{
		Code:    CodeTechnicianUnavailable,
		Message: fmt.Sprintf("Technician %d has no active schedule on weekday %d", technicianID, weekday),
	}
}

// InvalidStatusTransitionError reports a mutation attempted on an order in a terminal status
func InvalidStatusTransitionError(kind string, id uint, from, to string) error {
	msg := fmt.Sprintf("%s %d is %s and can no longer be modified", kind, id, from)
	if to != "" {
		msg = fmt.Sprintf("%s %d cannot move from %s to %s", kind, id, from, to)
	}
	return &AppError{Code: CodeInvalidStatusTransition, Message: msg}
}

// NotFoundError reports a referenced record that does not exist
func NotFoundError(kind string, id interface{}) error {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %v not found", kind, id),
	}
}

// ValidationError reports malformed input
func ValidationError(format string, args ...interface{}) error {
	return &AppError{
		Code:    CodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the AppError code carried by err, or "" for any other error
func ErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
