package repository

import (
	"context"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Omit("User", "Room").Create(rv).Error
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).Preload("User").First(&rv, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &rv, nil
}

func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("id = ?", rv.ID).
		Updates(map[string]interface{}{
			"rating":  rv.Rating,
			"comment": rv.Comment,
		}).Error
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Review{}, id).Error
}

// ListByRoom returns the room's reviews, newest first.
func (r *ReviewRepository) ListByRoom(ctx context.Context, roomID int64) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RatingCounts returns the number of reviews per rating value.
func (r *ReviewRepository) RatingCounts(ctx context.Context, roomID int64) (map[int]int64, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("room_id = ?", roomID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[int]int64, len(rows))
	for _, row := range rows {
		out[row.Rating] = row.Count
	}
	return out, nil
}

// AverageRatings returns the mean rating per room for the given ids. Rooms
// without reviews are absent from the result.
func (r *ReviewRepository) AverageRatings(ctx context.Context, roomIDs []int64) (map[int64]float64, error) {
	out := make(map[int64]float64, len(roomIDs))
	if len(roomIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		RoomID int64
		Avg    float64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Select("room_id, AVG(rating) AS avg").
		Where("room_id IN ?", roomIDs).
		Group("room_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.RoomID] = row.Avg
	}
	return out, nil
}

func (r *ReviewRepository) Featured(ctx context.Context, limit int) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Room").
		Where("is_featured = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
