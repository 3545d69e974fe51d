package booking

import (
	"time"

	"hotelbooking/internal/domain"
)

type Summary struct {
	ID          int64                `json:"id"`
	RoomID      int64                `json:"room_id"`
	RoomTitle   string               `json:"room_title"`
	RoomSlug    string               `json:"room_slug"`
	CheckIn     string               `json:"check_in"`
	CheckOut    string               `json:"check_out"`
	NightsStay  int                  `json:"nights_stay"`
	PeopleCount int                  `json:"people_count"`
	TotalPrice  int64                `json:"total_price"`
	Status      domain.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}

type Detail struct {
	Summary
	Guests []domain.Guest `json:"guests"`
}

func toSummary(b *domain.Booking) Summary {
	s := Summary{
		ID:          b.ID,
		RoomID:      b.RoomID,
		CheckIn:     b.CheckIn.Format(domain.DateLayout),
		CheckOut:    b.CheckOut.Format(domain.DateLayout),
		NightsStay:  b.NightsStay,
		PeopleCount: b.PeopleCount,
		TotalPrice:  b.TotalPrice,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
	if b.Room != nil {
		s.RoomTitle = b.Room.Title
		s.RoomSlug = b.Room.Slug
	}
	return s
}

// Payment is one gateway verification attempt as shown to its payer.
type Payment struct {
	ID            int64                    `json:"id"`
	BookingID     *int64                   `json:"booking_id"`
	Amount        int64                    `json:"amount"`
	TransactionID string                   `json:"transaction_id"`
	Status        domain.TransactionStatus `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
}

func toPayment(t *domain.Transaction) Payment {
	return Payment{
		ID:            t.ID,
		BookingID:     t.BookingID,
		Amount:        t.Amount,
		TransactionID: t.TransactionID,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
	}
}
