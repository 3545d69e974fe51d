// Package availability answers whether a room is free for a date range.
package availability

import (
	"context"
	"errors"
	"time"

	"hotelbooking/internal/domain"
)

// Interval is a stay on the half-open range [CheckIn, CheckOut). Checking out
// on the day another guest checks in is not a conflict.
type Interval struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (i Interval) Valid() bool { return i.CheckOut.After(i.CheckIn) }

func Overlaps(a, b Interval) bool {
	return a.CheckIn.Before(b.CheckOut) && b.CheckIn.Before(a.CheckOut)
}

func OfBooking(b domain.Booking) Interval {
	return Interval{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
}

var ErrEmptyInterval = errors.New("check-out must be after check-in")

type BookingFinder interface {
	FindConflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time, statuses []domain.BookingStatus, excludeID int64) ([]domain.Booking, error)
}

type Checker struct {
	bookings BookingFinder
}

func NewChecker(bookings BookingFinder) *Checker {
	return &Checker{bookings: bookings}
}

// Conflicts lists the bookings of roomID in one of statuses that overlap iv.
func (c *Checker) Conflicts(ctx context.Context, roomID int64, iv Interval, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	if !iv.Valid() {
		return nil, ErrEmptyInterval
	}
	found, err := c.bookings.FindConflicts(ctx, roomID, iv.CheckIn, iv.CheckOut, statuses, 0)
	if err != nil {
		return nil, err
	}
	out := found[:0]
	for _, b := range found {
		if Overlaps(iv, OfBooking(b)) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (c *Checker) IsAvailable(ctx context.Context, roomID int64, iv Interval, statuses []domain.BookingStatus) (bool, error) {
	conflicts, err := c.Conflicts(ctx, roomID, iv, statuses)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}
