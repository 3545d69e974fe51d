package reservation

import (
	"context"
	"errors"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/session"
)

// ReservationContext carries one user's pending reservation through a single
// verification request. Clearing goes through it so the state machine never
// touches the store directly.
type ReservationContext struct {
	userID  int64
	store   session.Store
	pending *domain.PendingReservation
	cleared bool
}

// LoadReservationContext reads the user's pending reservation. A missing
// entry is not an error; the context then has no pending reservation.
func LoadReservationContext(ctx context.Context, store session.Store, userID int64) (*ReservationContext, error) {
	rc := &ReservationContext{userID: userID, store: store}
	p, err := store.Get(ctx, userID)
	switch {
	case errors.Is(err, session.ErrNotFound):
		return rc, nil
	case err != nil:
		return rc, err
	}
	rc.pending = p
	return rc, nil
}

func (rc *ReservationContext) Pending() *domain.PendingReservation { return rc.pending }

func (rc *ReservationContext) Cleared() bool { return rc.cleared }

// Clear drops the pending reservation. Safe to call more than once.
func (rc *ReservationContext) Clear(ctx context.Context) error {
	if rc.cleared {
		return nil
	}
	rc.pending = nil
	rc.cleared = true
	return rc.store.Clear(ctx, rc.userID)
}
