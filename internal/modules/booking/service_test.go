package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/logger"
	"hotelbooking/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2030, 1, 5, 12, 0, 0, 0, time.UTC)

type availabilityEvent struct {
	roomID   int64
	slug     string
	existing bool
}

type recordingNotifier struct {
	events []availabilityEvent
}

func (n *recordingNotifier) RoomAvailabilityChanged(roomID int64, slug string, existing bool) {
	n.events = append(n.events, availabilityEvent{roomID, slug, existing})
}

type fixture struct {
	db       *gorm.DB
	svc      *Service
	bookings *repository.BookingRepository
	notifier *recordingNotifier
	room     *domain.Room
	owner    *domain.User
	stranger *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.Connect(fmt.Sprintf("file:booking_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	f := &fixture{
		db:       db,
		bookings: repository.NewBookingRepository(db),
		notifier: &recordingNotifier{},
		room:     &domain.Room{Title: "Sea View", Price: 500_000, Size: 40, Capacity: 2, Existing: true},
		owner:    &domain.User{Phone: "09120000001", IsActive: true},
		stranger: &domain.User{Phone: "09120000002", IsActive: true},
	}
	require.NoError(t, repository.NewRoomRepository(db).Create(ctx, f.room))
	require.NoError(t, users.Create(ctx, f.owner))
	require.NoError(t, users.Create(ctx, f.stranger))

	log := logger.Discard()
	f.svc = NewService(f.bookings, repository.NewTransactionRepository(db), f.notifier, func() time.Time { return fixedNow }, log)
	return f
}

func (f *fixture) book(t *testing.T, status domain.BookingStatus, in, out time.Time) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		RoomID: f.room.ID, UserID: f.owner.ID, CheckIn: in, CheckOut: out,
		PeopleCount: 1, Status: status, TotalPrice: 1_000_000, NightsStay: 2,
	}
	require.NoError(t, f.bookings.Create(context.Background(), b))
	require.NoError(t, f.db.Create(&domain.Guest{
		BookingID: b.ID, FullName: "Ali Rezaei", NationalID: "0012345678", PhoneNumber: "09120000001", Gender: domain.GenderMale,
	}).Error)
	return b
}

func date(d int) time.Time {
	return time.Date(2030, 1, d, 0, 0, 0, 0, time.UTC)
}

func (f *fixture) roomExisting(t *testing.T) bool {
	t.Helper()
	var r domain.Room
	require.NoError(t, f.db.First(&r, f.room.ID).Error)
	return r.Existing
}

func TestListMine(t *testing.T) {
	f := newFixture(t)
	f.book(t, domain.BookingConfirmed, date(10), date(12))

	list, err := f.svc.ListMine(context.Background(), f.owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "sea-view", list[0].RoomSlug)
	assert.Equal(t, "2030-01-10", list[0].CheckIn)
	assert.Equal(t, "2030-01-12", list[0].CheckOut)

	list, err = f.svc.ListMine(context.Background(), f.stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListPayments(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, domain.BookingConfirmed, date(10), date(12))
	ctx := context.Background()
	txns := repository.NewTransactionRepository(f.db)
	require.NoError(t, txns.Create(ctx, &domain.Transaction{
		UserID: f.owner.ID, Amount: 1_000_000, TransactionID: "A-fail", Status: domain.TransactionFailed,
	}))
	require.NoError(t, txns.Create(ctx, &domain.Transaction{
		UserID: f.owner.ID, BookingID: &b.ID, Amount: 1_000_000, TransactionID: "A-ok", Status: domain.TransactionSuccess,
	}))

	list, err := f.svc.ListPayments(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	byID := map[string]Payment{}
	for _, p := range list {
		byID[p.TransactionID] = p
	}
	assert.Nil(t, byID["A-fail"].BookingID)
	require.NotNil(t, byID["A-ok"].BookingID)
	assert.Equal(t, b.ID, *byID["A-ok"].BookingID)

	list, err = f.svc.ListPayments(ctx, f.stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGet_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, domain.BookingConfirmed, date(10), date(12))

	d, err := f.svc.Get(context.Background(), f.owner.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, d.Status)
	require.Len(t, d.Guests, 1)
	assert.Equal(t, "Ali Rezaei", d.Guests[0].FullName)

	_, err = f.svc.Get(context.Background(), f.stranger.ID, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Get(context.Background(), f.owner.ID, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancel_RestoresAvailability(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, domain.BookingConfirmed, date(10), date(12))
	require.False(t, f.roomExisting(t))

	s, err := f.svc.Cancel(context.Background(), f.owner.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCanceled, s.Status)
	assert.Equal(t, "sea-view", s.RoomSlug)

	assert.True(t, f.roomExisting(t))
	assert.Equal(t, []availabilityEvent{{f.room.ID, "sea-view", true}}, f.notifier.events)

	_, err = f.svc.Cancel(context.Background(), f.owner.ID, b.ID)
	assert.ErrorIs(t, err, ErrAlreadyCanceled)
}

func TestCancel_LaterConfirmedStayKeepsRoomTaken(t *testing.T) {
	f := newFixture(t)
	first := f.book(t, domain.BookingConfirmed, date(10), date(12))
	f.book(t, domain.BookingConfirmed, date(20), date(22))

	_, err := f.svc.Cancel(context.Background(), f.owner.ID, first.ID)
	require.NoError(t, err)

	assert.False(t, f.roomExisting(t))
	assert.Empty(t, f.notifier.events)
}

func TestCancel_Rules(t *testing.T) {
	f := newFixture(t)
	started := f.book(t, domain.BookingConfirmed, date(5), date(7))
	pending := f.book(t, domain.BookingPending, date(15), date(16))

	_, err := f.svc.Cancel(context.Background(), f.owner.ID, started.ID)
	assert.ErrorIs(t, err, ErrStayStarted)

	_, err = f.svc.Cancel(context.Background(), f.stranger.ID, pending.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	s, err := f.svc.Cancel(context.Background(), f.owner.ID, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCanceled, s.Status)
}

type mockBookings struct {
	mock.Mock
}

func (m *mockBookings) GetForUser(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookings) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockBookings) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, bool, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.Booking), args.Bool(1), args.Error(2)
}

func TestCancel_RepositoryError(t *testing.T) {
	repo := &mockBookings{}
	b := &domain.Booking{ID: 7, RoomID: 1, UserID: 3, CheckIn: date(10), CheckOut: date(11), Status: domain.BookingConfirmed}
	repo.On("GetForUser", mock.Anything, int64(7), int64(3)).Return(b, nil)
	repo.On("UpdateStatus", mock.Anything, int64(7), domain.BookingCanceled).Return(nil, false, errors.New("db down"))

	notifier := &recordingNotifier{}
	svc := NewService(repo, nil, notifier, func() time.Time { return fixedNow }, nil)

	_, err := svc.Cancel(context.Background(), 3, 7)
	assert.ErrorContains(t, err, "db down")
	assert.Empty(t, notifier.events)
	repo.AssertExpectations(t)
}
