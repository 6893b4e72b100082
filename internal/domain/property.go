package domain

// Property is a listing as ingested from the listings content API.
// Pricing fields are the read-only inputs to the booking engine.
type Property struct {
	ID            int64
	Title         *string
	City          *string
	Country       *string
	Currency      *string
	PricePerNight float64
	CleaningFee   float64
	ServiceFee    float64
	MaxGuests     int
	MinNights     *int // per-property override of the configured minimum
	MaxNights     *int
	Amenities     []string
	Images        []string
	RawJSON       []byte // full listings payload
}
