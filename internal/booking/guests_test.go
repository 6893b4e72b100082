package booking_test

import (
	"testing"

	"renteasy/internal/booking"
)

func TestValidateGuests_AdultRequired(t *testing.T) {
	// No adults is always an error, whatever else is set.
	for _, g := range []booking.GuestSelection{
		{},
		{Children: 2},
		{Children: 2, Infants: 1},
	} {
		errs := booking.ValidateGuests(g, 16)
		if !containsErr(errs, "At least one adult") {
			t.Fatalf("guests %+v: missing adult-required error: %v", g, errs)
		}
	}
}

func TestValidateGuests_Capacity(t *testing.T) {
	errs := booking.ValidateGuests(booking.GuestSelection{Adults: 3, Children: 2}, 4)
	if !containsErr(errs, "Maximum 4 guests") {
		t.Fatalf("missing capacity error: %v", errs)
	}

	// Infants don't count toward occupancy.
	errs = booking.ValidateGuests(booking.GuestSelection{Adults: 2, Children: 2, Infants: 4}, 4)
	if len(errs) != 0 {
		t.Fatalf("infants counted toward capacity: %v", errs)
	}
}

func TestValidateGuests_FallbackCapacity(t *testing.T) {
	// Property without a capacity gets the 16-guest fallback.
	errs := booking.ValidateGuests(booking.GuestSelection{Adults: 10, Children: 7}, 0)
	if !containsErr(errs, "Maximum 16 guests") {
		t.Fatalf("missing fallback capacity error: %v", errs)
	}
}

func TestValidateGuests_Negative(t *testing.T) {
	errs := booking.ValidateGuests(booking.GuestSelection{Adults: 2, Children: -1}, 16)
	if !containsErr(errs, "cannot be negative") {
		t.Fatalf("missing negative-count error: %v", errs)
	}
}

func TestValidateGuests_CategoryCaps(t *testing.T) {
	// Caps hold even when total occupancy fits the property.
	errs := booking.ValidateGuests(booking.GuestSelection{Adults: 13}, 20)
	if !containsErr(errs, "Maximum 12 adults") {
		t.Fatalf("missing adult cap error: %v", errs)
	}
	errs = booking.ValidateGuests(booking.GuestSelection{Adults: 2, Children: 9}, 20)
	if !containsErr(errs, "Maximum 8 children") {
		t.Fatalf("missing children cap error: %v", errs)
	}
	errs = booking.ValidateGuests(booking.GuestSelection{Adults: 2, Infants: 5}, 20)
	if !containsErr(errs, "Maximum 4 infants") {
		t.Fatalf("missing infant cap error: %v", errs)
	}
}

func TestValidateGuests_AllViolationsReported(t *testing.T) {
	errs := booking.ValidateGuests(booking.GuestSelection{Adults: 0, Children: 9, Infants: 5}, 4)
	if len(errs) != 4 {
		t.Fatalf("want 4 errors (no adult, capacity, children cap, infant cap), got %v", errs)
	}
}
