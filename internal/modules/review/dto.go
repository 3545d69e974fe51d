package review

import (
	"time"

	"hotelbooking/internal/domain"
)

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required,max=2000"`
}

type View struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	UserID    int64     `json:"user_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Result is a review change together with the room's refreshed rating.
type Result struct {
	Review *View `json:"review,omitempty"`
	domain.RatingSummary
}

// Actor is the user acting on a review.
type Actor struct {
	UserID  int64
	IsAdmin bool
}

func (a Actor) canModify(rv *domain.Review) bool {
	return a.IsAdmin || rv.UserID == a.UserID
}

func toView(rv *domain.Review) *View {
	v := &View{
		ID:        rv.ID,
		RoomID:    rv.RoomID,
		UserID:    rv.UserID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
	}
	if rv.User != nil {
		v.Author = rv.User.DisplayName()
	}
	return v
}
