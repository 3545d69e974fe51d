package repository

import (
	"context"
	"strings"
	"time"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// RoomFilter narrows room listings. Zero values disable a filter; the date
// range applies only when both ends are set.
type RoomFilter struct {
	People       int
	MinPrice     int64
	MaxPrice     int64
	Search       string
	CheckIn      *time.Time
	CheckOut     *time.Time
	OnlyExisting bool
	Page         int
	PageSize     int
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if room.Slug == "" {
		room.Slug = domain.Slugify(room.Title)
	}
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepository) GetBySlug(ctx context.Context, slug string) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Images").
		Where("slug = ?", slug).
		First(&room).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &room, nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).Preload("Services").Preload("Images").First(&room, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &room, nil
}

// List returns one page of rooms matching f plus the total match count.
func (r *RoomRepository) List(ctx context.Context, f RoomFilter) ([]domain.Room, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Room{})

	if f.People > 0 {
		q = q.Where("capacity = ?", f.People)
	}
	if f.MinPrice > 0 {
		q = q.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.OnlyExisting {
		q = q.Where("existing = ?", true)
	}
	if f.CheckIn != nil && f.CheckOut != nil {
		booked := r.db.Model(&domain.Booking{}).
			Select("room_id").
			Where("status IN ? AND check_in < ? AND check_out > ?", domain.DisplayStatuses, *f.CheckOut, *f.CheckIn)
		q = q.Where("id NOT IN (?)", booked)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, size := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 5
	}

	var rooms []domain.Room
	err := q.Preload("Services").
		Preload("Images").
		Order("created_at DESC").
		Order("id DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&rooms).Error
	if err != nil {
		return nil, 0, err
	}
	return rooms, total, nil
}

func (r *RoomRepository) ListServices(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *RoomRepository) CreateService(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Where("name = ?", s.Name).FirstOrCreate(s).Error
}
