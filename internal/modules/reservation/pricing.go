package reservation

import (
	"time"

	"hotelbooking/internal/domain"
)

type Quote struct {
	Nights     int   `json:"nights"`
	TotalPrice int64 `json:"total_price"`
}

// Nights counts whole calendar days between the dates, never less than one.
func Nights(checkIn, checkOut time.Time) int {
	n := int(domain.DateOf(checkOut).Sub(domain.DateOf(checkIn)).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

func TotalPrice(nights int, rate int64) int64 {
	return int64(nights) * rate
}

// QuoteFor prices a stay at the room's nightly rate.
func QuoteFor(rate int64, checkIn, checkOut time.Time) Quote {
	n := Nights(checkIn, checkOut)
	return Quote{Nights: n, TotalPrice: TotalPrice(n, rate)}
}
