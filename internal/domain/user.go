package domain

import "time"

type UserRole string

const (
	RoleGuest UserRole = "guest"
	RoleAdmin UserRole = "admin"
)

// User signs in with a phone number. Only admins carry a password hash.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Phone        string    `json:"phone" gorm:"size:11;uniqueIndex;not null"`
	Email        *string   `json:"email,omitempty" gorm:"size:254;uniqueIndex"`
	FullName     string    `json:"full_name" gorm:"size:150"`
	IsAdmin      bool      `json:"is_admin" gorm:"not null"`
	IsActive     bool      `json:"is_active" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"size:255"`
	DateJoined   time.Time `json:"date_joined" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) Role() UserRole {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleGuest
}

// DisplayName falls back to the phone number when no name was given.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Phone
}
