package repository

import (
	"context"
	"strings"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	normalizeEmail(u)
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&u).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

// GetOrCreateByPhone returns the user owning phone, creating an active one
// when none exists. created reports whether a row was inserted.
func (r *UserRepository) GetOrCreateByPhone(ctx context.Context, phone string, email *string) (*domain.User, bool, error) {
	u := domain.User{Phone: phone, Email: email, IsActive: true}
	normalizeEmail(&u)

	res := r.db.WithContext(ctx).
		Where(domain.User{Phone: phone}).
		Attrs(domain.User{Email: u.Email, IsActive: true}).
		FirstOrCreate(&u)
	if res.Error != nil {
		if IsUniqueViolation(res.Error) {
			return nil, false, ErrEmailTaken
		}
		return nil, false, res.Error
	}
	return &u, res.RowsAffected > 0, nil
}

// UpdateProfile saves the editable profile fields of u.
func (r *UserRepository) UpdateProfile(ctx context.Context, u *domain.User) error {
	normalizeEmail(u)
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"full_name": u.FullName,
			"email":     u.Email,
		}).Error
	if IsUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func normalizeEmail(u *domain.User) {
	if u.Email == nil {
		return
	}
	e := strings.ToLower(strings.TrimSpace(*u.Email))
	if e == "" {
		u.Email = nil
		return
	}
	u.Email = &e
}
