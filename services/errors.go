package services

import "errors"

// Stable error kinds returned by the cart and order services. Controllers map
// these to HTTP status codes; messages are safe to show to callers.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrConflict            = errors.New("conflicting concurrent update")
	ErrInvalidTransition   = errors.New("illegal order status transition")
	ErrOrderCreationFailed = errors.New("order creation failed")
)
