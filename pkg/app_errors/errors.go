package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrProductNotFound       = errors.New("product not found")
	ErrMasterProductNotFound = errors.New("master product not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrEmptyOrder            = errors.New("order must have items")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidOrderStatus    = errors.New("invalid order status")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrStockBelowSold        = errors.New("initial stock below sold quantity")
	ErrWrongCredentials      = errors.New("wrong credentials")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrStorage               = errors.New("storage error")
)

// InsufficientStockError names the product that could not be reserved.
// errors.Is(err, ErrInsufficientStock) matches it.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product: %s", e.ProductName)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// StorageError wraps a transaction or driver failure. Callers treat it as
// retryable; the wrapped driver message stays out of HTTP responses.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
