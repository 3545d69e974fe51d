package catalog

import (
	"time"

	"hotelbooking/internal/domain"
)

// ListQuery holds the raw room list filters. Dates are applied only when
// both parse and form a forward range.
type ListQuery struct {
	People   int
	MinPrice int64
	MaxPrice int64
	CheckIn  string
	CheckOut string
	Search   string
	Page     int
}

type RoomCard struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Price    int64    `json:"price"`
	Size     int      `json:"size"`
	Capacity int      `json:"capacity"`
	Existing bool     `json:"existing"`
	Rating   float64  `json:"rating"`
	ImageURL string   `json:"image_url,omitempty"`
	Services []string `json:"services"`
}

type RoomPage struct {
	Rooms      []RoomCard `json:"rooms"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	Total      int64      `json:"total"`
	TotalPages int        `json:"total_pages"`
	CheckIn    string     `json:"check_in,omitempty"`
	CheckOut   string     `json:"check_out,omitempty"`
}

type ReviewView struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Author    string    `json:"author"`
	RoomSlug  string    `json:"room_slug,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// QuotePreview prices a stay on the room page before the guest fills in
// the reservation form.
type QuotePreview struct {
	CheckIn    string   `json:"check_in"`
	CheckOut   string   `json:"check_out"`
	Nights     int      `json:"nights"`
	TotalPrice int64    `json:"total_price"`
	Available  bool     `json:"available"`
	Errors     []string `json:"errors,omitempty"`
}

type RoomDetail struct {
	Room    *domain.Room `json:"room"`
	Reviews []ReviewView `json:"reviews"`
	domain.RatingSummary
	Quote          QuotePreview `json:"quote"`
	GuestFormCount int          `json:"guest_form_count"`
}

type HomePage struct {
	TopRooms        []RoomCard       `json:"top_rooms"`
	Rooms           []RoomCard       `json:"rooms"`
	FeaturedReviews []ReviewView     `json:"featured_reviews"`
	Services        []domain.Service `json:"services"`
}

func toReviewView(rv domain.Review) ReviewView {
	v := ReviewView{
		ID:        rv.ID,
		UserID:    rv.UserID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
	if rv.User != nil {
		v.Author = rv.User.DisplayName()
	}
	if rv.Room != nil {
		v.RoomSlug = rv.Room.Slug
	}
	return v
}
