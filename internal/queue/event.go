// Package queue carries booking events over RabbitMQ.
package queue

// BookingConfirmedQueue is the durable queue confirmed bookings are
// published to.
const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent holds enough of a confirmed booking for consumers
// to notify guests without reading the database.
type BookingConfirmedEvent struct {
	BookingID   int64    `json:"booking_id"`
	UserID      int64    `json:"user_id"`
	RoomID      int64    `json:"room_id"`
	RoomTitle   string   `json:"room_title"`
	CheckIn     string   `json:"check_in"`
	CheckOut    string   `json:"check_out"`
	Nights      int      `json:"nights"`
	PeopleCount int      `json:"people_count"`
	TotalPrice  int64    `json:"total_price"`
	Authority   string   `json:"authority"`
	GuestPhones []string `json:"guest_phones"`
	ConfirmedAt string   `json:"confirmed_at"`
}
