// Package session keeps each user's quoted, unpaid reservation between the
// quote request and the payment gateway callback.
package session

import (
	"context"
	"errors"
	"fmt"

	"hotelbooking/internal/domain"
)

var ErrNotFound = errors.New("no pending reservation")

// Store holds at most one pending reservation per user. Put replaces any
// previous entry.
type Store interface {
	Put(ctx context.Context, userID int64, p *domain.PendingReservation) error
	Get(ctx context.Context, userID int64) (*domain.PendingReservation, error)
	Clear(ctx context.Context, userID int64) error
}

func key(userID int64) string {
	return fmt.Sprintf("reservation:%d", userID)
}
