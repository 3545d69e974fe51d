package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/availability"
	"hotelbooking/internal/pkg/logger"
	"hotelbooking/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2030, 1, 5, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	svc      *Service
	rooms    *repository.RoomRepository
	reviews  *repository.ReviewRepository
	bookings *repository.BookingRepository
	user     *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.Connect(fmt.Sprintf("file:catalog_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	log := logger.Discard()

	f := &fixture{
		db:       db,
		rooms:    repository.NewRoomRepository(db),
		reviews:  repository.NewReviewRepository(db),
		bookings: repository.NewBookingRepository(db),
	}
	f.svc = NewService(f.rooms, f.reviews, availability.NewChecker(f.bookings), func() time.Time { return fixedNow }, log)

	f.user = &domain.User{Phone: "09121111111", FullName: "Sara Ahmadi", IsActive: true}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), f.user))
	return f
}

func (f *fixture) room(t *testing.T, title string, price int64, capacity int) *domain.Room {
	t.Helper()
	r := &domain.Room{Title: title, Price: price, Size: 30, Capacity: capacity, Existing: true}
	require.NoError(t, f.rooms.Create(context.Background(), r))
	return r
}

func (f *fixture) review(t *testing.T, roomID int64, rating int, featured bool, at time.Time) *domain.Review {
	t.Helper()
	rv := &domain.Review{RoomID: roomID, UserID: f.user.ID, Rating: rating, Comment: "stay", IsFeatured: featured, CreatedAt: at}
	require.NoError(t, f.reviews.Create(context.Background(), rv))
	return rv
}

func (f *fixture) book(t *testing.T, roomID int64, status domain.BookingStatus, in, out string) {
	t.Helper()
	checkIn, err := domain.ParseDate(in)
	require.NoError(t, err)
	checkOut, err := domain.ParseDate(out)
	require.NoError(t, err)
	require.NoError(t, f.bookings.Create(context.Background(), &domain.Booking{
		RoomID: roomID, UserID: f.user.ID, CheckIn: checkIn, CheckOut: checkOut,
		PeopleCount: 1, Status: status, TotalPrice: 1, NightsStay: 1,
	}))
}

func TestListRooms_DateFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sea := f.room(t, "Sea View", 500_000, 2)
	f.room(t, "Garden", 300_000, 1)
	f.room(t, "Royal Suite", 2_000_000, 4)
	f.book(t, sea.ID, domain.BookingConfirmed, "2030-01-10", "2030-01-12")

	page, err := f.svc.ListRooms(ctx, ListQuery{CheckIn: "2030-01-11", CheckOut: "2030-01-13"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, "2030-01-11", page.CheckIn)
	for _, c := range page.Rooms {
		assert.NotEqual(t, sea.ID, c.ID)
	}

	// checking out on the booked check-in day does not overlap
	page, err = f.svc.ListRooms(ctx, ListQuery{CheckIn: "2030-01-08", CheckOut: "2030-01-10"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
}

func TestListRooms_IgnoresInvalidDates(t *testing.T) {
	f := newFixture(t)
	sea := f.room(t, "Sea View", 500_000, 2)
	f.room(t, "Garden", 300_000, 1)
	f.book(t, sea.ID, domain.BookingConfirmed, "2030-01-10", "2030-01-12")

	for _, q := range []ListQuery{
		{CheckIn: "tomorrow", CheckOut: "2030-01-12"},
		{CheckIn: "2030-01-11", CheckOut: "2030-01-11"},
		{CheckIn: "2030-01-12", CheckOut: "2030-01-10"},
		{CheckIn: "2030-01-11"},
	} {
		page, err := f.svc.ListRooms(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total, "%+v", q)
		assert.Empty(t, page.CheckIn)
	}
}

func TestListRooms_PaginationAndRatings(t *testing.T) {
	f := newFixture(t)
	var first *domain.Room
	for i := 1; i <= 6; i++ {
		r := f.room(t, fmt.Sprintf("Room %d", i), int64(i)*100_000, 2)
		if i == 1 {
			first = r
		}
	}
	f.review(t, first.ID, 5, true, fixedNow)
	f.review(t, first.ID, 4, true, fixedNow)

	page, err := f.svc.ListRooms(context.Background(), ListQuery{Page: 1})
	require.NoError(t, err)
	assert.Len(t, page.Rooms, PageSize)
	assert.Equal(t, int64(6), page.Total)
	assert.Equal(t, 2, page.TotalPages)

	page, err = f.svc.ListRooms(context.Background(), ListQuery{Page: 2})
	require.NoError(t, err)
	require.Len(t, page.Rooms, 1)
	assert.Equal(t, first.ID, page.Rooms[0].ID)
	assert.Equal(t, 4.5, page.Rooms[0].Rating)
}

func TestListRooms_Filters(t *testing.T) {
	f := newFixture(t)
	f.room(t, "Garden Single", 300_000, 1)
	f.room(t, "Sea View Double", 500_000, 2)
	f.room(t, "Royal Suite", 2_000_000, 2)

	page, err := f.svc.ListRooms(context.Background(), ListQuery{People: 2, MaxPrice: 1_000_000})
	require.NoError(t, err)
	require.Len(t, page.Rooms, 1)
	assert.Equal(t, "sea-view-double", page.Rooms[0].Slug)

	page, err = f.svc.ListRooms(context.Background(), ListQuery{Search: "GARDEN"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestGetRoom(t *testing.T) {
	f := newFixture(t)
	room := &domain.Room{
		Title: "Sea View", Price: 500_000, Size: 40, Capacity: 3, Existing: true,
		Services: []domain.Service{{Name: "Breakfast"}},
		Images:   []domain.RoomImage{{URL: "/media/sea.jpg", IsPrimary: true}},
	}
	require.NoError(t, f.rooms.Create(context.Background(), room))
	older := f.review(t, room.ID, 5, true, fixedNow.Add(-48*time.Hour))
	newer := f.review(t, room.ID, 3, false, fixedNow.Add(-time.Hour))

	detail, err := f.svc.GetRoom(context.Background(), "sea-view", "", "")
	require.NoError(t, err)

	require.Len(t, detail.Reviews, 2)
	assert.Equal(t, newer.ID, detail.Reviews[0].ID)
	assert.Equal(t, older.ID, detail.Reviews[1].ID)
	assert.Equal(t, "Sara Ahmadi", detail.Reviews[0].Author)

	assert.Equal(t, int64(2), detail.ReviewCount)
	assert.Equal(t, 4.0, detail.Rating)
	assert.Equal(t, 50, detail.Breakdown[0].Percent)
	assert.Equal(t, 50, detail.Breakdown[2].Percent)

	assert.Equal(t, QuotePreview{
		CheckIn: "2030-01-05", CheckOut: "2030-01-06", Nights: 1, TotalPrice: 500_000, Available: true,
	}, detail.Quote)
	assert.Equal(t, 3, detail.GuestFormCount)
	assert.Len(t, detail.Room.Services, 1)
}

func TestGetRoom_QuotePreview(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "Sea View", 500_000, 2)
	f.book(t, room.ID, domain.BookingPending, "2030-01-10", "2030-01-12")

	tests := []struct {
		name      string
		in, out   string
		nights    int
		available bool
		errs      []string
	}{
		{"free stay", "2030-01-12", "2030-01-15", 3, true, nil},
		{"pending booking blocks", "2030-01-11", "2030-01-13", 2, false, []string{unavailableQuote}},
		{"past check-in", "2030-01-01", "2030-01-03", 0, false, []string{"Check-in date cannot be in the past."}},
		{"malformed", "soon", "2030-01-03", 0, false, []string{"Enter valid check-in and check-out dates (YYYY-MM-DD)."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail, err := f.svc.GetRoom(context.Background(), room.Slug, tt.in, tt.out)
			require.NoError(t, err)
			assert.Equal(t, tt.nights, detail.Quote.Nights)
			assert.Equal(t, int64(tt.nights)*room.Price, detail.Quote.TotalPrice)
			assert.Equal(t, tt.available, detail.Quote.Available)
			assert.Equal(t, tt.errs, detail.Quote.Errors)
		})
	}
}

func TestGetRoom_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetRoom(context.Background(), "nowhere", "", "")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestHome(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rooms := make([]*domain.Room, 0, 4)
	for i := 1; i <= 4; i++ {
		rooms = append(rooms, f.room(t, fmt.Sprintf("Room %d", i), 100_000, 2))
	}
	f.book(t, rooms[0].ID, domain.BookingConfirmed, "2030-01-10", "2030-01-12")
	for i := 0; i < 6; i++ {
		f.review(t, rooms[1].ID, 5, true, fixedNow.Add(time.Duration(i)*time.Minute))
	}
	f.review(t, rooms[1].ID, 1, false, fixedNow.Add(time.Hour))
	require.NoError(t, f.rooms.CreateService(ctx, &domain.Service{Name: "Parking"}))

	home, err := f.svc.Home(ctx)
	require.NoError(t, err)

	assert.Len(t, home.TopRooms, 3)
	assert.Len(t, home.Rooms, 3)
	for _, c := range home.Rooms {
		assert.True(t, c.Existing)
	}
	require.Len(t, home.FeaturedReviews, 5)
	for _, rv := range home.FeaturedReviews {
		assert.Equal(t, 5, rv.Rating)
		assert.Equal(t, rooms[1].Slug, rv.RoomSlug)
	}
	require.Len(t, home.Services, 1)
	assert.Equal(t, "Parking", home.Services[0].Name)
}
