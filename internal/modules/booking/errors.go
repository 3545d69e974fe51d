package booking

import "errors"

var (
	ErrNotFound        = errors.New("booking not found")
	ErrAlreadyCanceled = errors.New("booking already canceled")
	// ErrStayStarted: bookings can be canceled only before check-in day.
	ErrStayStarted = errors.New("stay already started")
)
