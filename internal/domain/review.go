package domain

import (
	"math"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	RoomID     int64     `json:"room_id" gorm:"not null;index"`
	UserID     int64     `json:"user_id" gorm:"not null;index"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment" gorm:"type:text;not null"`
	IsFeatured bool      `json:"is_featured" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

type ContactMessage struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    *int64    `json:"user_id,omitempty" gorm:"index"`
	FullName  string    `json:"full_name" gorm:"size:150;not null"`
	Phone     string    `json:"phone" gorm:"size:11;not null"`
	Email     string    `json:"email" gorm:"size:254"`
	Subject   string    `json:"subject" gorm:"size:200;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingBucket is one row of a rating breakdown.
type RatingBucket struct {
	Stars   int   `json:"stars"`
	Count   int64 `json:"count"`
	Percent int   `json:"percent"`
}

type RatingSummary struct {
	ReviewCount int64          `json:"review_count"`
	Rating      float64        `json:"rating"`
	Breakdown   []RatingBucket `json:"rating_breakdown"`
}

// SummarizeRatings turns per-star counts into an average rounded to one
// decimal and a 5..1 breakdown with whole percentages.
func SummarizeRatings(counts map[int]int64) RatingSummary {
	var total, sum int64
	for stars := MinRating; stars <= MaxRating; stars++ {
		total += counts[stars]
		sum += int64(stars) * counts[stars]
	}

	s := RatingSummary{ReviewCount: total, Breakdown: make([]RatingBucket, 0, MaxRating)}
	if total > 0 {
		s.Rating = math.Round(float64(sum)/float64(total)*10) / 10
	}
	for stars := MaxRating; stars >= MinRating; stars-- {
		b := RatingBucket{Stars: stars, Count: counts[stars]}
		if total > 0 {
			b.Percent = int(math.Round(float64(b.Count) * 100 / float64(total)))
		}
		s.Breakdown = append(s.Breakdown, b)
	}
	return s
}
