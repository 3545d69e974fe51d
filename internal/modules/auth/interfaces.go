package auth

import (
	"context"
	"time"

	"hotelbooking/internal/domain"
)

// UserRepository is the slice of the user store the auth service needs.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetOrCreateByPhone(ctx context.Context, phone string, email *string) (*domain.User, bool, error)
	UpdateProfile(ctx context.Context, u *domain.User) error
}

// OTPEntry is what is kept under otp:{phone}:{token} until it expires.
type OTPEntry struct {
	Code  string `json:"code"`
	Email string `json:"email,omitempty"`
}

type OTPStore interface {
	Save(ctx context.Context, phone, token string, e OTPEntry, ttl time.Duration) error
	Get(ctx context.Context, phone, token string) (*OTPEntry, error)
	Delete(ctx context.Context, phone, token string) error
}

type tokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
