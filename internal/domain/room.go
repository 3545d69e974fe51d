package domain

import (
	"strings"
	"time"
	"unicode"
)

type Room struct {
	ID          int64       `json:"id" gorm:"primaryKey"`
	Title       string      `json:"title" gorm:"size:200;not null"`
	Slug        string      `json:"slug" gorm:"size:220;uniqueIndex;not null"`
	Price       int64       `json:"price" gorm:"not null"`
	Size        int         `json:"size" gorm:"not null"`
	Capacity    int         `json:"capacity" gorm:"not null"`
	Description string      `json:"description" gorm:"type:text"`
	Existing    bool        `json:"existing" gorm:"not null"`
	Services    []Service   `json:"services,omitempty" gorm:"many2many:room_services"`
	Images      []RoomImage `json:"images,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// PrimaryImage returns the image flagged as primary, or the first one.
func (r *Room) PrimaryImage() *RoomImage {
	for i := range r.Images {
		if r.Images[i].IsPrimary {
			return &r.Images[i]
		}
	}
	if len(r.Images) > 0 {
		return &r.Images[0]
	}
	return nil
}

type RoomImage struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	RoomID    int64  `json:"room_id" gorm:"not null;index"`
	URL       string `json:"url" gorm:"size:500;not null"`
	AltText   string `json:"alt_text,omitempty" gorm:"size:200"`
	IsPrimary bool   `json:"is_primary" gorm:"not null"`
}

// Service is a room amenity (breakfast, parking, ...).
type Service struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
}

// Slugify lowercases the title and joins letter/digit runs with dashes.
// Non-latin letters are kept as is.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
