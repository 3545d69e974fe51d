package reservation

import (
	"context"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/availability"
	"hotelbooking/internal/pkg/zarinpal"
	"hotelbooking/internal/queue"
)

type RoomReader interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Room, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, roomID int64, iv availability.Interval, statuses []domain.BookingStatus) (bool, error)
}

type PaymentGateway interface {
	RequestPayment(ctx context.Context, req zarinpal.PaymentRequest) (string, error)
	VerifyPayment(ctx context.Context, amount int64, authority string) (*zarinpal.VerifyResult, error)
	StartPayURL(authority string) string
}

type BookingWriter interface {
	ConfirmReservation(ctx context.Context, b *domain.Booking, guests []domain.Guest, txn *domain.Transaction) (bool, error)
}

type TransactionStore interface {
	Create(ctx context.Context, t *domain.Transaction) error
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

type RoomNotifier interface {
	RoomAvailabilityChanged(roomID int64, slug string, existing bool)
}

type Clock func() time.Time
