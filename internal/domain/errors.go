package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrSecretNotFound   = errors.New("secret not found")
)

// ValidationKind is the closed set of local precondition failures. They
// are raised before any network call and are always recoverable by
// adjusting input.
type ValidationKind string

const (
	ValidationQuantityMustBePositive ValidationKind = "quantity_must_be_positive"
	ValidationInsufficientStock      ValidationKind = "insufficient_stock"
	ValidationEmptyCart              ValidationKind = "empty_cart"
)

type ValidationError struct {
	Kind ValidationKind
	// Available carries the observed stock for insufficient_stock.
	Available int
}

func (e *ValidationError) Error() string {
	if e.Kind == ValidationInsufficientStock {
		return fmt.Sprintf("%s: only %d available", e.Kind, e.Available)
	}
	return string(e.Kind)
}

func NewValidationError(kind ValidationKind) *ValidationError {
	return &ValidationError{Kind: kind}
}

func NewInsufficientStockError(available int) *ValidationError {
	return &ValidationError{Kind: ValidationInsufficientStock, Available: available}
}

// AuthError means no valid credential was available or the provider
// rejected it. Surfaced as a "please log in again" condition; never
// retried beyond the single renewal attempt built into token renewal.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "authorization required"
	}
	return e.Reason
}

// SubmissionError is a remote rejection of an otherwise well-formed
// request, commonly a stock conflict detected server-side. Reason is the
// server-provided message, surfaced verbatim.
type SubmissionError struct {
	Reason     string
	StatusCode int
}

func (e *SubmissionError) Error() string {
	return e.Reason
}

// TransportError is a network or server failure unrelated to business
// rules: unreachable service, or a non-2xx with no structured reason.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
