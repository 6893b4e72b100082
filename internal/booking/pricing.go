package booking

import (
	"fmt"
	"math"
	"time"
)

// Rates is the pricing snapshot of a property, as supplied by the catalog.
// Read-only input; the engine never mutates it.
type Rates struct {
	PricePerNight float64
	CleaningFee   float64
	ServiceFee    float64
	Currency      string
}

// Options tune a single calculation. Zero value means: 12% tax included,
// flat nightly rate.
type Options struct {
	TaxRate           float64
	ExcludeTaxes      bool
	DynamicPricing    bool
	WeekendMultiplier float64
}

const defaultTaxRate = 0.12

func (o Options) withDefaults() Options {
	if o.TaxRate <= 0 {
		o.TaxRate = defaultTaxRate
	}
	if o.WeekendMultiplier <= 0 {
		o.WeekendMultiplier = 1.0
	}
	return o
}

// Calculation is the full price breakdown for a stay. Recomputed from
// scratch on every input change; never mutated in place.
type Calculation struct {
	Nights        int      `json:"nights"`
	PricePerNight float64  `json:"pricePerNight"` // effective, post-dynamic-pricing
	Subtotal      float64  `json:"subtotal"`
	CleaningFee   float64  `json:"cleaningFee"`
	ServiceFee    float64  `json:"serviceFee"`
	Taxes         float64  `json:"taxes"`
	Total         float64  `json:"total"`
	Valid         bool     `json:"isValid"`
	Errors        []string `json:"errors,omitempty"`
}

// PricingError reports an internal calculation failure: malformed property
// data or an unexpected arithmetic state. It is never retryable; the user
// should refresh the property or reselect dates.
type PricingError struct {
	Reason     string
	Suggestion string
}

func (e *PricingError) Error() string { return "pricing: " + e.Reason }

// Retryable always reports false: recomputing with the same inputs cannot help.
func (e *PricingError) Retryable() bool { return false }

func invalidCalculation(msg string) Calculation {
	return Calculation{Valid: false, Errors: []string{msg}}
}

// DynamicPrice blends weekday and weekend nightly rates into one effective
// nightly price: (weekdayNights*base + weekendNights*base*multiplier) / nights.
// Contract: the range must cover at least one night; callers reject
// zero-night ranges before getting here.
func DynamicPrice(base float64, checkIn, checkOut time.Time, multiplier float64) float64 {
	total := Nights(&checkIn, &checkOut)
	weekend := WeekendNights(checkIn, checkOut)
	weekday := total - weekend
	return (float64(weekday)*base + float64(weekend)*base*multiplier) / float64(total)
}

func badNumber(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

func checkRates(r Rates) error {
	switch {
	case r.PricePerNight < 0 || badNumber(r.PricePerNight):
		return fmt.Errorf("nightly price %v out of range", r.PricePerNight)
	case r.CleaningFee < 0 || badNumber(r.CleaningFee):
		return fmt.Errorf("cleaning fee %v out of range", r.CleaningFee)
	case r.ServiceFee < 0 || badNumber(r.ServiceFee):
		return fmt.Errorf("service fee %v out of range", r.ServiceFee)
	}
	return nil
}

// Calculate produces the price breakdown for a stay. It never panics across
// this boundary: an unusable date range yields an all-zero invalid
// Calculation with a nil error, and malformed rates yield the same safe
// result plus a *PricingError so the caller cannot silently miss the
// failure. Deterministic: identical inputs give identical results.
func Calculate(r Rates, checkIn, checkOut *time.Time, opts Options) (Calculation, error) {
	opts = opts.withDefaults()

	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return invalidCalculation("Invalid date range"), nil
	}

	if err := checkRates(r); err != nil {
		return invalidCalculation("Price calculation failed"), &PricingError{
			Reason:     err.Error(),
			Suggestion: "Refresh the property details or reselect your dates",
		}
	}

	effective := r.PricePerNight
	if opts.DynamicPricing {
		effective = DynamicPrice(r.PricePerNight, *checkIn, *checkOut, opts.WeekendMultiplier)
	}

	subtotal := float64(nights) * effective
	taxes := 0.0
	if !opts.ExcludeTaxes {
		taxes = (subtotal + r.CleaningFee + r.ServiceFee) * opts.TaxRate
	}

	return Calculation{
		Nights:        nights,
		PricePerNight: effective,
		Subtotal:      subtotal,
		CleaningFee:   r.CleaningFee,
		ServiceFee:    r.ServiceFee,
		Taxes:         taxes,
		Total:         subtotal + r.CleaningFee + r.ServiceFee + taxes,
		Valid:         true,
	}, nil
}
