package booking

// Validation is the single verdict the UI gates submission on. Two states
// only: valid (submit enabled) or invalid (submit blocked, with displayable
// reasons). Warnings never block.
type Validation struct {
	Valid    bool     `json:"isValid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Stays longer than this trigger a "contact the host" warning.
const longStayNights = 14

// AggregateValidation merges independently computed date and guest errors
// with the calculation outcome. All inputs must come from the same snapshot
// of (property, dates, guests). atCapacity flags a selection at the exact
// occupancy limit. No side effects.
func AggregateValidation(dateErrors, guestErrors []string, calc Calculation, atCapacity bool) Validation {
	var v Validation
	v.Errors = append(v.Errors, dateErrors...)
	v.Errors = append(v.Errors, guestErrors...)
	v.Errors = append(v.Errors, calc.Errors...)

	if calc.Valid && calc.Nights > longStayNights {
		v.Warnings = append(v.Warnings, "Long stay: please contact the host before booking")
	}
	if atCapacity {
		v.Warnings = append(v.Warnings, "You are at the maximum guest capacity for this property")
	}

	v.Valid = len(v.Errors) == 0 && calc.Valid
	return v
}
