package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrInvalidOTP         = errors.New("verification code is invalid or expired")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrOTPNotFound        = errors.New("otp not found")
)
