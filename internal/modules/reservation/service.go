package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/zarinpal"
	"hotelbooking/internal/queue"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/session"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// StatusOK is the gateway callback flag for a payment the guest completed.
const StatusOK = "OK"

type OutcomeKind string

const (
	OutcomeConfirmed        OutcomeKind = "confirmed"
	OutcomeAlreadyProcessed OutcomeKind = "already_processed"
	OutcomeAlreadyRecorded  OutcomeKind = "already_recorded"
	OutcomeRoomTaken        OutcomeKind = "room_taken"
	OutcomeRoomNotFound     OutcomeKind = "room_not_found"
	OutcomeFailed           OutcomeKind = "failed"
)

// Outcome is the terminal state of one verification. BookingID is set for
// confirmed stays and for replays that resolved to an existing booking.
type Outcome struct {
	Kind      OutcomeKind
	BookingID int64
	Reason    string
}

// Succeeded reports whether the guest should see the payment-success page.
func (o Outcome) Succeeded() bool {
	switch o.Kind {
	case OutcomeConfirmed, OutcomeAlreadyProcessed, OutcomeAlreadyRecorded:
		return o.BookingID > 0
	}
	return false
}

type Deps struct {
	Rooms        RoomReader
	Users        UserReader
	Availability AvailabilityChecker
	Gateway      PaymentGateway
	Bookings     BookingWriter
	Transactions TransactionStore
	Store        session.Store
	Events       EventPublisher
	Notifier     RoomNotifier
	Log          *logrus.Logger
	Now          Clock
}

type PaymentSettings struct {
	CallbackURL string
	Description string
}

type Service struct {
	rooms        RoomReader
	users        UserReader
	availability AvailabilityChecker
	gateway      PaymentGateway
	bookings     BookingWriter
	transactions TransactionStore
	store        session.Store
	events       EventPublisher
	notifier     RoomNotifier
	log          *logrus.Logger
	now          Clock
	validator    *Validator
	payment      PaymentSettings
}

func NewService(d Deps, payment PaymentSettings) *Service {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	log := d.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		rooms:        d.Rooms,
		users:        d.Users,
		availability: d.Availability,
		gateway:      d.Gateway,
		bookings:     d.Bookings,
		transactions: d.Transactions,
		store:        d.Store,
		events:       d.Events,
		notifier:     d.Notifier,
		log:          log,
		now:          now,
		validator:    NewValidator(now),
		payment:      payment,
	}
}

// Store exposes the pending reservation store to the HTTP layer.
func (s *Service) Store() session.Store { return s.store }

// Quote validates a reservation request for the room identified by slug,
// opens a gateway payment for the server-computed price and parks the
// reservation in the user's session until the gateway calls back.
func (s *Service) Quote(ctx context.Context, userID int64, slug string, req QuoteRequest) (*QuoteResult, error) {
	room, err := s.rooms.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}

	stay, err := s.validator.Validate(room, req)
	if err != nil {
		return nil, err
	}

	ok, err := s.availability.IsAvailable(ctx, room.ID, stay.Interval, domain.PreBookingStatuses)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRoomUnavailable
	}

	quote := QuoteFor(room.Price, stay.Interval.CheckIn, stay.Interval.CheckOut)

	payReq := zarinpal.PaymentRequest{
		Amount:      quote.TotalPrice,
		Description: fmt.Sprintf("%s: %s", s.payment.Description, room.Title),
		CallbackURL: s.payment.CallbackURL,
	}
	if s.users != nil {
		if u, err := s.users.GetByID(ctx, userID); err == nil {
			payReq.Mobile = u.Phone
			if u.Email != nil {
				payReq.Email = *u.Email
			}
		}
	}

	authority, err := s.gateway.RequestPayment(ctx, payReq)
	if err != nil {
		s.log.WithFields(logrus.Fields{"user_id": userID, "room_id": room.ID}).WithError(err).Warn("payment request failed")
		var apiErr *zarinpal.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: %s", ErrPaymentRejected, apiErr.Message)
		}
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	pending := &domain.PendingReservation{
		RoomSlug:   room.Slug,
		RoomID:     room.ID,
		CheckIn:    stay.Interval.CheckIn.Format(domain.DateLayout),
		CheckOut:   stay.Interval.CheckOut.Format(domain.DateLayout),
		Capacity:   stay.Capacity,
		TotalPrice: quote.TotalPrice,
		Nights:     quote.Nights,
		Guests:     stay.Guests,
		Authority:  authority,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.Put(ctx, userID, pending); err != nil {
		return nil, fmt.Errorf("save pending reservation: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":     userID,
		"room_id":     room.ID,
		"authority":   authority,
		"total_price": quote.TotalPrice,
	}).Info("reservation quoted")

	return &QuoteResult{
		RedirectURL: s.gateway.StartPayURL(authority),
		Authority:   authority,
		Nights:      quote.Nights,
		TotalPrice:  quote.TotalPrice,
	}, nil
}

// Verify settles the gateway callback for the pending reservation in rc.
// Every terminal outcome clears the pending reservation.
func (s *Service) Verify(ctx context.Context, in VerifyInput, rc *ReservationContext) Outcome {
	log := s.log.WithFields(logrus.Fields{"user_id": in.UserID, "authority": in.Authority})
	outcome := s.verify(ctx, in, rc, log)

	if err := rc.Clear(ctx); err != nil {
		log.WithError(err).Error("clear pending reservation")
	}
	log.WithFields(logrus.Fields{"outcome": outcome.Kind, "booking_id": outcome.BookingID, "reason": outcome.Reason}).Info("payment verification finished")
	return outcome
}

func (s *Service) verify(ctx context.Context, in VerifyInput, rc *ReservationContext, log *logrus.Entry) Outcome {
	p := rc.Pending()
	switch {
	case in.Status == "" || in.Authority == "":
		return failed("missing callback parameters")
	case p == nil:
		return failed("no pending reservation")
	case p.Authority != in.Authority:
		return failed("authority mismatch")
	}

	room, err := s.rooms.GetBySlug(ctx, p.RoomSlug)
	if errors.Is(err, repository.ErrNotFound) {
		return Outcome{Kind: OutcomeRoomNotFound, Reason: "room no longer exists"}
	}
	if err != nil {
		log.WithError(err).Error("load room")
		return failed("room lookup failed")
	}

	checkIn, inErr := domain.ParseDate(p.CheckIn)
	checkOut, outErr := domain.ParseDate(p.CheckOut)
	if inErr != nil || outErr != nil || !checkOut.After(checkIn) {
		return failed("invalid stored dates")
	}
	quote := QuoteFor(room.Price, checkIn, checkOut)
	if quote.TotalPrice != p.TotalPrice {
		log.WithFields(logrus.Fields{"stored_price": p.TotalPrice, "price": quote.TotalPrice}).Warn("pending reservation price mismatch")
		return failed("price mismatch")
	}

	if in.Status != StatusOK {
		s.recordFailure(ctx, in, quote.TotalPrice, nil, log)
		return failed("payment not completed")
	}

	res, err := s.gateway.VerifyPayment(ctx, quote.TotalPrice, in.Authority)
	if err != nil {
		log.WithError(err).Error("gateway verification failed")
		s.recordFailure(ctx, in, quote.TotalPrice, nil, log)
		return failed("gateway unreachable")
	}

	switch res.Status {
	case zarinpal.VerifyAlreadyProcessed:
		return Outcome{Kind: OutcomeAlreadyProcessed, BookingID: s.recordedBooking(ctx, in)}
	case zarinpal.VerifyRejected:
		s.recordFailure(ctx, in, quote.TotalPrice, res.Raw, log)
		return failed(fmt.Sprintf("gateway code %d", res.Code))
	}

	b := &domain.Booking{
		RoomID:      room.ID,
		UserID:      in.UserID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		PeopleCount: p.Capacity,
		Status:      domain.BookingConfirmed,
		TotalPrice:  quote.TotalPrice,
		NightsStay:  quote.Nights,
	}
	guests := make([]domain.Guest, 0, len(p.Guests))
	for _, g := range p.Guests {
		guests = append(guests, domain.Guest{
			FullName:    g.FullName,
			NationalID:  g.NationalID,
			PhoneNumber: g.PhoneNumber,
			Gender:      g.Gender,
		})
	}
	txn := &domain.Transaction{
		UserID:         in.UserID,
		Amount:         quote.TotalPrice,
		TransactionID:  in.Authority,
		Status:         domain.TransactionSuccess,
		GatewayPayload: datatypes.JSON(res.Raw),
	}

	flipped, err := s.bookings.ConfirmReservation(ctx, b, guests, txn)
	switch {
	case errors.Is(err, repository.ErrTransactionRecorded):
		return Outcome{Kind: OutcomeAlreadyRecorded, BookingID: s.recordedBooking(ctx, in)}
	case errors.Is(err, repository.ErrRoomUnavailable):
		s.recordFailure(ctx, in, quote.TotalPrice, res.Raw, log)
		return Outcome{Kind: OutcomeRoomTaken, Reason: "room claimed by another reservation"}
	case err != nil:
		log.WithError(err).Error("confirm reservation")
		s.recordFailure(ctx, in, quote.TotalPrice, res.Raw, log)
		return failed("booking could not be saved")
	}

	s.announce(ctx, room, b, in.Authority, flipped, log)
	return Outcome{Kind: OutcomeConfirmed, BookingID: b.ID}
}

func failed(reason string) Outcome {
	return Outcome{Kind: OutcomeFailed, Reason: reason}
}

// recordFailure leaves the audit row for a verification that reached the
// payment stage but produced no booking.
func (s *Service) recordFailure(ctx context.Context, in VerifyInput, amount int64, raw []byte, log *logrus.Entry) {
	err := s.transactions.Create(ctx, &domain.Transaction{
		UserID:         in.UserID,
		Amount:         amount,
		TransactionID:  in.Authority,
		Status:         domain.TransactionFailed,
		GatewayPayload: datatypes.JSON(raw),
	})
	switch {
	case errors.Is(err, repository.ErrTransactionRecorded):
		log.Info("transaction already recorded")
	case err != nil:
		log.WithError(err).Error("record failed transaction")
	}
}

// recordedBooking returns the booking a previous successful verification of
// the same authority created for this user, or 0.
func (s *Service) recordedBooking(ctx context.Context, in VerifyInput) int64 {
	t, err := s.transactions.GetByTransactionID(ctx, in.Authority)
	if err != nil || t.UserID != in.UserID || t.Status != domain.TransactionSuccess || t.BookingID == nil {
		return 0
	}
	return *t.BookingID
}

func (s *Service) announce(ctx context.Context, room *domain.Room, b *domain.Booking, authority string, flipped bool, log *logrus.Entry) {
	if flipped && s.notifier != nil {
		s.notifier.RoomAvailabilityChanged(room.ID, room.Slug, false)
	}
	if s.events == nil {
		return
	}

	phones := make([]string, 0, len(b.Guests))
	for _, g := range b.Guests {
		phones = append(phones, g.PhoneNumber)
	}
	ev := queue.BookingConfirmedEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		RoomID:      room.ID,
		RoomTitle:   room.Title,
		CheckIn:     b.CheckIn.Format(domain.DateLayout),
		CheckOut:    b.CheckOut.Format(domain.DateLayout),
		Nights:      b.NightsStay,
		PeopleCount: b.PeopleCount,
		TotalPrice:  b.TotalPrice,
		Authority:   authority,
		GuestPhones: phones,
		ConfirmedAt: s.now().UTC().Format(time.RFC3339),
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.events.PublishBookingConfirmed(pubCtx, ev); err != nil {
		log.WithError(err).Warn("publish booking confirmed event")
	}
}
