package reservation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/availability"
	"hotelbooking/internal/pkg/validator"
)

// Stay is a quote request that passed field validation.
type Stay struct {
	Interval availability.Interval
	Capacity int
	Guests   []domain.PendingGuest
}

type Validator struct {
	now func() time.Time
}

func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{now: now}
}

var guestFieldMessages = map[string]string{
	"FullName":    "full name is required (at most 150 characters)",
	"NationalID":  "national id must be exactly 10 digits",
	"PhoneNumber": "phone number must look like 09XXXXXXXXX",
	"Gender":      "gender must be M or F",
}

// CheckDates parses a stay and returns the first rule it breaks, or "".
func (v *Validator) CheckDates(checkIn, checkOut string) (availability.Interval, string) {
	in, inErr := domain.ParseDate(checkIn)
	out, outErr := domain.ParseDate(checkOut)
	switch {
	case inErr != nil || outErr != nil:
		return availability.Interval{}, "Enter valid check-in and check-out dates (YYYY-MM-DD)."
	case in.Before(domain.DateOf(v.now())):
		return availability.Interval{}, "Check-in date cannot be in the past."
	case out.Equal(in):
		return availability.Interval{}, "At least one night stay is required."
	case out.Before(in):
		return availability.Interval{}, "Check-out date must be after check-in date."
	}
	return availability.Interval{CheckIn: in, CheckOut: out}, ""
}

// Today is the current calendar date.
func (v *Validator) Today() time.Time { return domain.DateOf(v.now()) }

// Validate checks dates, capacity and guest records of req against room and
// reports every broken rule at once.
func (v *Validator) Validate(room *domain.Room, req QuoteRequest) (*Stay, error) {
	verr := &ValidationError{}

	iv, msg := v.CheckDates(req.CheckIn, req.CheckOut)
	if msg != "" {
		verr.Add(FieldDates, msg)
	}

	capacityOK := true
	switch {
	case req.Capacity < 1:
		verr.Add(FieldCapacity, "At least one guest is required.")
		capacityOK = false
	case req.Capacity > room.Capacity:
		verr.Add(FieldCapacity, fmt.Sprintf("This room accommodates at most %d guests.", room.Capacity))
		capacityOK = false
	}

	if capacityOK && len(req.Guests) != req.Capacity {
		verr.Add(FieldGuests, fmt.Sprintf("Details are required for exactly %d guests.", req.Capacity))
	}

	guests := make([]domain.PendingGuest, 0, len(req.Guests))
	for i, g := range req.Guests {
		g = GuestInput{
			FullName:    strings.TrimSpace(g.FullName),
			NationalID:  strings.TrimSpace(g.NationalID),
			PhoneNumber: strings.TrimSpace(g.PhoneNumber),
			Gender:      strings.ToUpper(strings.TrimSpace(g.Gender)),
		}
		if fields := validator.Validate(g); len(fields) > 0 {
			names := make([]string, 0, len(fields))
			for name := range fields {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				verr.Add(FieldGuests, fmt.Sprintf("Guest %d: %s.", i+1, guestFieldMessages[name]))
			}
			continue
		}
		guests = append(guests, domain.PendingGuest{
			FullName:    g.FullName,
			NationalID:  g.NationalID,
			PhoneNumber: g.PhoneNumber,
			Gender:      domain.Gender(g.Gender),
		})
	}

	if !verr.Empty() {
		return nil, verr
	}
	return &Stay{
		Interval: iv,
		Capacity: req.Capacity,
		Guests:   guests,
	}, nil
}
