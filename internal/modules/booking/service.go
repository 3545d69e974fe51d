package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"

	"github.com/sirupsen/logrus"
)

type Service struct {
	bookings BookingRepository
	payments TransactionReader
	notifier RoomNotifier
	log      *logrus.Logger
	now      func() time.Time
}

func NewService(bookings BookingRepository, payments TransactionReader, notifier RoomNotifier, now func() time.Time, log *logrus.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{bookings: bookings, payments: payments, notifier: notifier, log: log, now: now}
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]Summary, error) {
	list, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	out := make([]Summary, 0, len(list))
	for i := range list {
		out = append(out, toSummary(&list[i]))
	}
	return out, nil
}

// ListPayments returns the user's payment attempts, failed ones included,
// newest first.
func (s *Service) ListPayments(ctx context.Context, userID int64) ([]Payment, error) {
	list, err := s.payments.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	out := make([]Payment, 0, len(list))
	for i := range list {
		out = append(out, toPayment(&list[i]))
	}
	return out, nil
}

// Get returns a booking owned by userID. Other users' bookings are reported
// as missing.
func (s *Service) Get(ctx context.Context, userID, id int64) (*Detail, error) {
	b, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	guests := b.Guests
	if guests == nil {
		guests = []domain.Guest{}
	}
	return &Detail{Summary: toSummary(b), Guests: guests}, nil
}

// Cancel cancels one of the user's bookings before its check-in day and
// puts the room back on the market when nothing else holds it.
func (s *Service) Cancel(ctx context.Context, userID, id int64) (*Summary, error) {
	b, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if b.Status == domain.BookingCanceled {
		return nil, ErrAlreadyCanceled
	}
	if !domain.DateOf(s.now()).Before(b.CheckIn) {
		return nil, ErrStayStarted
	}

	updated, flipped, err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingCanceled)
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	updated.Room = b.Room

	entry := s.log.WithFields(logrus.Fields{"booking_id": b.ID, "user_id": userID, "room_id": b.RoomID})
	entry.Info("booking canceled")
	if flipped && s.notifier != nil && b.Room != nil {
		entry.Info("room available again")
		s.notifier.RoomAvailabilityChanged(b.RoomID, b.Room.Slug, true)
	}

	sum := toSummary(updated)
	return &sum, nil
}

func (s *Service) load(ctx context.Context, userID, id int64) (*domain.Booking, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	b, err := s.bookings.GetForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load booking: %w", err)
	}
	return b, nil
}
