package review

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrRoomNotFound   = errors.New("room_not_found")
)

// InvalidError carries the fields a review payload failed on.
type InvalidError struct {
	Fields map[string]string
}

func (e *InvalidError) Error() string { return ErrInvalidRequest.Error() }

func (e *InvalidError) Unwrap() error { return ErrInvalidRequest }
