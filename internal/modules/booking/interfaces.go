package booking

import (
	"context"

	"hotelbooking/internal/domain"
)

type BookingRepository interface {
	GetForUser(ctx context.Context, id, userID int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, bool, error)
}

type TransactionReader interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error)
}

type RoomNotifier interface {
	RoomAvailabilityChanged(roomID int64, slug string, existing bool)
}
