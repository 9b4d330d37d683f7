package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput marks caller errors such as unknown discount types or negative amounts.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyCart is returned when checkout is opened without any line items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientTender is returned when cash tendered is less than the total due.
	ErrInsufficientTender = errors.New("amount tendered is less than total")
	// ErrCheckoutBusy is returned for any till operation attempted while a payment is processing.
	ErrCheckoutBusy = errors.New("payment is processing")
	// ErrInvalidTransition is returned when a checkout action is not allowed in the current state.
	ErrInvalidTransition = errors.New("invalid checkout transition")
)
