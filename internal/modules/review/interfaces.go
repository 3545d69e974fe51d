package review

import (
	"context"

	"hotelbooking/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Update(ctx context.Context, rv *domain.Review) error
	Delete(ctx context.Context, id int64) error
	RatingCounts(ctx context.Context, roomID int64) (map[int]int64, error)
}

type RoomReader interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Room, error)
}
