package service

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAlreadyExists = errors.New("order already exists")
	ErrAmountBelowMinimum = errors.New("amount is below the minimum donation")
	ErrWalletMismatch     = errors.New("order belongs to another wallet")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrUserNotFound       = errors.New("user not found")
	ErrAuthNotConfigured  = errors.New("auth secret is not configured")
)
