package catalog

import (
	"context"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/availability"
	"hotelbooking/internal/repository"
)

type RoomRepository interface {
	List(ctx context.Context, f repository.RoomFilter) ([]domain.Room, int64, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Room, error)
	ListServices(ctx context.Context) ([]domain.Service, error)
}

type ReviewReader interface {
	ListByRoom(ctx context.Context, roomID int64) ([]domain.Review, error)
	RatingCounts(ctx context.Context, roomID int64) (map[int]int64, error)
	AverageRatings(ctx context.Context, roomIDs []int64) (map[int64]float64, error)
	Featured(ctx context.Context, limit int) ([]domain.Review, error)
}

type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, roomID int64, iv availability.Interval, statuses []domain.BookingStatus) (bool, error)
}
