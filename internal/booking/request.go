package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrMissingDates means NewFormData was called before validation passed.
// That is a programming error in the caller, not a user-recoverable one.
var ErrMissingDates = errors.New("booking: form data requires both check-in and check-out dates")

// FormData is the normalized booking submission in the wire shape the
// booking-creation API expects: date-only ISO 8601 strings, a flattened
// guest total, and the full breakdown kept for audit.
type FormData struct {
	RequestID       string         `json:"requestId"`
	PropertyID      int64          `json:"propertyId"`
	CheckInDate     string         `json:"checkInDate"`
	CheckOutDate    string         `json:"checkOutDate"`
	NumberOfGuests  int            `json:"numberOfGuests"`
	GuestDetails    GuestSelection `json:"guestDetails"`
	SpecialRequests string         `json:"specialRequests,omitempty"`
}

const wireDateLayout = "2006-01-02"

// NewFormData maps a validated (property, dates, guests) triple into the
// submission payload. Callers must gate this behind Validation.Valid; nil
// dates return ErrMissingDates. Pure mapping, no I/O.
func NewFormData(propertyID int64, checkIn, checkOut *time.Time, g GuestSelection, specialRequests string) (FormData, error) {
	if checkIn == nil || checkOut == nil {
		return FormData{}, ErrMissingDates
	}
	return FormData{
		RequestID:       uuid.NewString(),
		PropertyID:      propertyID,
		CheckInDate:     checkIn.Format(wireDateLayout),
		CheckOutDate:    checkOut.Format(wireDateLayout),
		NumberOfGuests:  g.Occupancy(),
		GuestDetails:    g,
		SpecialRequests: specialRequests,
	}, nil
}

// ParseWireDate parses the date-only format used on the wire.
func ParseWireDate(s string) (time.Time, error) {
	return time.Parse(wireDateLayout, s)
}
