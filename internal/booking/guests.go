package booking

import "fmt"

// GuestSelection is the guest breakdown for a stay. Infants never count
// toward occupancy capacity but are still bounded.
type GuestSelection struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// Occupancy is the count compared against a property's capacity.
func (g GuestSelection) Occupancy() int { return g.Adults + g.Children }

// Per-category hard caps, enforced regardless of property capacity.
const (
	maxAdults   = 12
	maxChildren = 8
	maxInfants  = 4

	fallbackMaxGuests = 16
)

// ValidateGuests returns one error per violated rule, all of them, not just
// the first. maxGuests <= 0 means the property didn't specify a capacity and
// the fallback applies.
func ValidateGuests(g GuestSelection, maxGuests int) []string {
	if maxGuests <= 0 {
		maxGuests = fallbackMaxGuests
	}
	var errs []string
	if g.Adults < 1 {
		errs = append(errs, "At least one adult is required")
	}
	if g.Occupancy() > maxGuests {
		errs = append(errs, fmt.Sprintf("Maximum %d guests allowed", maxGuests))
	}
	if g.Adults < 0 || g.Children < 0 || g.Infants < 0 {
		errs = append(errs, "Guest counts cannot be negative")
	}
	if g.Adults > maxAdults {
		errs = append(errs, fmt.Sprintf("Maximum %d adults allowed", maxAdults))
	}
	if g.Children > maxChildren {
		errs = append(errs, fmt.Sprintf("Maximum %d children allowed", maxChildren))
	}
	if g.Infants > maxInfants {
		errs = append(errs, fmt.Sprintf("Maximum %d infants allowed", maxInfants))
	}
	return errs
}
