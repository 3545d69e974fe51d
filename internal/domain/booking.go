package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCanceled:
		return true
	}
	return false
}

var (
	// PreBookingStatuses block a room while a new reservation is being made.
	PreBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed}
	// DisplayStatuses hide a room from date-filtered listings.
	DisplayStatuses = []BookingStatus{BookingConfirmed}
)

// Booking occupies its room on the half-open range [CheckIn, CheckOut).
type Booking struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	RoomID      int64         `json:"room_id" gorm:"not null;index:idx_bookings_room_range,priority:1"`
	UserID      int64         `json:"user_id" gorm:"not null;index"`
	CheckIn     time.Time     `json:"check_in" gorm:"not null;index:idx_bookings_room_range,priority:2"`
	CheckOut    time.Time     `json:"check_out" gorm:"not null"`
	PeopleCount int           `json:"people_count" gorm:"not null"`
	Status      BookingStatus `json:"status" gorm:"size:20;not null;index"`
	TotalPrice  int64         `json:"total_price" gorm:"not null"`
	NightsStay  int           `json:"nights_stay" gorm:"not null"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Guests []Guest `json:"guests,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	Room   *Room   `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	User   *User   `json:"-" gorm:"foreignKey:UserID"`
}

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

type Guest struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	BookingID   int64  `json:"booking_id" gorm:"not null;index"`
	FullName    string `json:"full_name" gorm:"size:150;not null"`
	NationalID  string `json:"national_id" gorm:"size:10;not null"`
	PhoneNumber string `json:"phone_number" gorm:"size:11;not null"`
	Gender      Gender `json:"gender" gorm:"size:1;not null"`
}
