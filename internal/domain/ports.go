package domain

import (
	"context"

	"renteasy/internal/booking"
)

type PropertyRepository interface {
	// Write paths
	UpsertProperty(ctx context.Context, p Property) error
	LogMiss(ctx context.Context, id int64, status int, reason string) error
	LogSubmission(ctx context.Context, fd booking.FormData, totalCents int64, currency string) error

	// Read paths
	GetProperty(ctx context.Context, id int64) (PropertyView, error)
	ListProperties(ctx context.Context, q PropertiesQuery) (PropertiesPage, error)
}

type ListingsClient interface {
	GetListing(ctx context.Context, id int64) (map[string]any, error)
}

type BookingGateway interface {
	CreateBooking(ctx context.Context, fd booking.FormData) (BookingConfirmation, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models & queries

type PropertyView struct {
	ID            int64    `json:"id"`
	Title         *string  `json:"title"`
	City          *string  `json:"city"`
	Country       *string  `json:"country"`
	Currency      string   `json:"currency"`
	PricePerNight float64  `json:"pricePerNight"`
	CleaningFee   float64  `json:"cleaningFee"`
	ServiceFee    float64  `json:"serviceFee"`
	MaxGuests     int      `json:"maxGuests"`
	MinNights     *int     `json:"minNights,omitempty"`
	MaxNights     *int     `json:"maxNights,omitempty"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	UpdatedSeq    int64    `json:"-"` // bumps on every upsert; part of quote cache keys
}

// Rates maps the view into the snapshot shape the booking engine consumes.
func (v PropertyView) Rates() booking.Rates {
	return booking.Rates{
		PricePerNight: v.PricePerNight,
		CleaningFee:   v.CleaningFee,
		ServiceFee:    v.ServiceFee,
		Currency:      v.Currency,
	}
}

type PropertiesQuery struct {
	City  *string
	Limit int
}

type PropertiesPage struct {
	Items []PropertyView `json:"items"`
}

// BookingConfirmation is what the external booking-creation API returns for
// an accepted submission.
type BookingConfirmation struct {
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
}
