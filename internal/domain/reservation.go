package domain

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type PendingGuest struct {
	FullName    string `json:"full_name"`
	NationalID  string `json:"national_id"`
	PhoneNumber string `json:"phone_number"`
	Gender      Gender `json:"gender"`
}

// PendingReservation is the quoted but unpaid reservation kept between the
// quote request and the gateway callback. Dates stay as submitted text and
// are re-parsed on verification.
type PendingReservation struct {
	RoomSlug   string         `json:"room_slug"`
	RoomID     int64          `json:"room_id"`
	CheckIn    string         `json:"check_in"`
	CheckOut   string         `json:"check_out"`
	Capacity   int            `json:"capacity"`
	TotalPrice int64          `json:"total_price"`
	Nights     int            `json:"nights"`
	Guests     []PendingGuest `json:"guests"`
	Authority  string         `json:"authority"`
	CreatedAt  time.Time      `json:"created_at"`
}
