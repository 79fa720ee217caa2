package domain

import "fmt"

// Common domain errors.
var (
	ErrNotFound      = notFoundError("not found")
	ErrValidation    = validationError("invalid data")
	ErrNoItems       = validationError("order has no line items")
	ErrDuplicateName = conflictError("product name already registered")
	ErrInvalidStock  = validationError("stock quantity must be positive")

	ErrCredentialMissing = authError("credential missing")
	ErrCredentialInvalid = authError("credential invalid")
	ErrCredentialExpired = authError("credential expired")
)

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

type validationError string

func (e validationError) Error() string { return string(e) }

type conflictError string

func (e conflictError) Error() string { return string(e) }

type authError string

func (e authError) Error() string { return string(e) }

// InvalidQuantityError rejects a line item whose quantity is not a
// positive integer.
type InvalidQuantityError struct {
	ProductID string
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for product %s", e.Quantity, e.ProductID)
}

// ProductNotFoundError rejects a line item referencing an unknown
// product. Unwraps to ErrNotFound.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

func (e *ProductNotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError reports a stock conflict, either at validation
// time or detected during commit. Available is the quantity observed
// when the conflict was found.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

// StockInconsistencyError is fatal: a commit failed mid-way and the
// rollback of an already-applied decrement also failed, so the stock
// figure for ProductID is off by Amount until reconciled out-of-band.
type StockInconsistencyError struct {
	ProductID string
	Amount    int
	Cause     error
}

func (e *StockInconsistencyError) Error() string {
	return fmt.Sprintf("stock for product %s is inconsistent by %d units: rollback failed: %v",
		e.ProductID, e.Amount, e.Cause)
}

func (e *StockInconsistencyError) Unwrap() error { return e.Cause }
