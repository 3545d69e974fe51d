package reservation

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomUnavailable = errors.New("room is already booked for the selected dates")
	// ErrPaymentRejected: the gateway refused to open a payment.
	ErrPaymentRejected = errors.New("payment request rejected")
	// ErrGatewayUnavailable: the gateway could not be reached.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// FieldGroup names the part of a quote form an error belongs to.
type FieldGroup string

const (
	FieldDates    FieldGroup = "dates"
	FieldCapacity FieldGroup = "capacity"
	FieldGuests   FieldGroup = "guests"
)

// ValidationError collects every rule a quote request broke, grouped by
// field. It serializes as {"dates": [...], "capacity": [...], "guests": [...]}
// with empty groups omitted.
type ValidationError struct {
	Fields map[FieldGroup][]string
}

func (e *ValidationError) Add(group FieldGroup, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[FieldGroup][]string)
	}
	e.Fields[group] = append(e.Fields[group], msg)
}

func (e *ValidationError) Has(group FieldGroup) bool {
	return len(e.Fields[group]) > 0
}

func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	groups := make([]string, 0, len(e.Fields))
	for g := range e.Fields {
		groups = append(groups, string(g))
	}
	sort.Strings(groups)

	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, g+": "+strings.Join(e.Fields[FieldGroup(g)], "; "))
	}
	return "invalid reservation: " + strings.Join(parts, ", ")
}
