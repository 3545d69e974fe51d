package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/reservation"
	"hotelbooking/internal/pkg/utils"
	"hotelbooking/internal/repository"

	"github.com/sirupsen/logrus"
)

const (
	PageSize         = 5
	topRoomsCount    = 3
	homeRoomsLimit   = 50
	featuredReviews  = 5
	unavailableQuote = "The room is already booked for the selected dates."
)

type Service struct {
	rooms        RoomRepository
	reviews      ReviewReader
	availability AvailabilityChecker
	validator    *reservation.Validator
	log          *logrus.Logger
}

func NewService(rooms RoomRepository, reviews ReviewReader, availability AvailabilityChecker, now func() time.Time, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		rooms:        rooms,
		reviews:      reviews,
		availability: availability,
		validator:    reservation.NewValidator(now),
		log:          log,
	}
}

// ListRooms returns one page of rooms. A date range hides rooms with a
// confirmed stay overlapping it; malformed dates are ignored.
func (s *Service) ListRooms(ctx context.Context, q ListQuery) (*RoomPage, error) {
	f := repository.RoomFilter{
		People:   q.People,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Search:   q.Search,
		Page:     q.Page,
		PageSize: PageSize,
	}
	if f.Page < 1 {
		f.Page = 1
	}

	page := &RoomPage{Page: f.Page, PageSize: PageSize}
	in, inErr := domain.ParseDate(q.CheckIn)
	out, outErr := domain.ParseDate(q.CheckOut)
	if inErr == nil && outErr == nil && out.After(in) {
		f.CheckIn, f.CheckOut = &in, &out
		page.CheckIn, page.CheckOut = in.Format(domain.DateLayout), out.Format(domain.DateLayout)
	}

	rooms, total, err := s.rooms.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	cards, err := s.cards(ctx, rooms)
	if err != nil {
		return nil, err
	}

	page.Rooms = cards
	page.Total = total
	page.TotalPages = utils.PageCount(total, PageSize)
	return page, nil
}

// GetRoom loads the room page. Empty dates default to a one-night stay
// starting today.
func (s *Service) GetRoom(ctx context.Context, slug, checkIn, checkOut string) (*RoomDetail, error) {
	room, err := s.rooms.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("load room: %w", err)
	}

	reviews, err := s.reviews.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	counts, err := s.reviews.RatingCounts(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("rating counts: %w", err)
	}

	quote, err := s.preview(ctx, room, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	detail := &RoomDetail{
		Room:           room,
		Reviews:        make([]ReviewView, 0, len(reviews)),
		RatingSummary:  domain.SummarizeRatings(counts),
		Quote:          quote,
		GuestFormCount: room.Capacity,
	}
	for _, rv := range reviews {
		detail.Reviews = append(detail.Reviews, toReviewView(rv))
	}
	return detail, nil
}

func (s *Service) preview(ctx context.Context, room *domain.Room, checkIn, checkOut string) (QuotePreview, error) {
	today := s.validator.Today()
	if checkIn == "" {
		checkIn = today.Format(domain.DateLayout)
	}
	if checkOut == "" {
		checkOut = today.AddDate(0, 0, 1).Format(domain.DateLayout)
	}

	p := QuotePreview{CheckIn: checkIn, CheckOut: checkOut}
	iv, msg := s.validator.CheckDates(checkIn, checkOut)
	if msg != "" {
		p.Errors = []string{msg}
		return p, nil
	}

	q := reservation.QuoteFor(room.Price, iv.CheckIn, iv.CheckOut)
	p.Nights, p.TotalPrice = q.Nights, q.TotalPrice

	ok, err := s.availability.IsAvailable(ctx, room.ID, iv, domain.PreBookingStatuses)
	if err != nil {
		return p, fmt.Errorf("check availability: %w", err)
	}
	p.Available = ok
	if !ok {
		p.Errors = []string{unavailableQuote}
	}
	return p, nil
}

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.rooms.ListServices(ctx)
}

func (s *Service) Home(ctx context.Context) (*HomePage, error) {
	top, _, err := s.rooms.List(ctx, repository.RoomFilter{Page: 1, PageSize: topRoomsCount})
	if err != nil {
		return nil, fmt.Errorf("top rooms: %w", err)
	}
	existing, _, err := s.rooms.List(ctx, repository.RoomFilter{OnlyExisting: true, Page: 1, PageSize: homeRoomsLimit})
	if err != nil {
		return nil, fmt.Errorf("existing rooms: %w", err)
	}
	featured, err := s.reviews.Featured(ctx, featuredReviews)
	if err != nil {
		return nil, fmt.Errorf("featured reviews: %w", err)
	}
	services, err := s.rooms.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	home := &HomePage{
		FeaturedReviews: make([]ReviewView, 0, len(featured)),
		Services:        services,
	}
	if home.TopRooms, err = s.cards(ctx, top); err != nil {
		return nil, err
	}
	if home.Rooms, err = s.cards(ctx, existing); err != nil {
		return nil, err
	}
	for _, rv := range featured {
		home.FeaturedReviews = append(home.FeaturedReviews, toReviewView(rv))
	}
	return home, nil
}

func (s *Service) cards(ctx context.Context, rooms []domain.Room) ([]RoomCard, error) {
	ids := make([]int64, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	ratings, err := s.reviews.AverageRatings(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("average ratings: %w", err)
	}

	out := make([]RoomCard, 0, len(rooms))
	for i := range rooms {
		r := &rooms[i]
		card := RoomCard{
			ID:       r.ID,
			Title:    r.Title,
			Slug:     r.Slug,
			Price:    r.Price,
			Size:     r.Size,
			Capacity: r.Capacity,
			Existing: r.Existing,
			Rating:   math.Round(ratings[r.ID]*10) / 10,
			Services: make([]string, 0, len(r.Services)),
		}
		if img := r.PrimaryImage(); img != nil {
			card.ImageURL = img.URL
		}
		for _, svc := range r.Services {
			card.Services = append(card.Services, svc.Name)
		}
		out = append(out, card)
	}
	return out, nil
}
