package booking_test

import (
	"testing"

	"renteasy/internal/booking"
)

func validCalc(nights int) booking.Calculation {
	return booking.Calculation{Nights: nights, Valid: true, Subtotal: float64(nights) * 100, Total: float64(nights) * 100}
}

func TestAggregateValidation_AllClear(t *testing.T) {
	v := booking.AggregateValidation(nil, nil, validCalc(3), false)
	if !v.Valid || len(v.Errors) != 0 || len(v.Warnings) != 0 {
		t.Fatalf("unexpected verdict: %+v", v)
	}
}

func TestAggregateValidation_MergesAllSources(t *testing.T) {
	calc := booking.Calculation{Valid: false, Errors: []string{"Invalid date range"}}
	v := booking.AggregateValidation(
		[]string{"Check-in date is required"},
		[]string{"At least one adult is required"},
		calc,
		false,
	)
	if v.Valid {
		t.Fatal("expected invalid verdict")
	}
	if len(v.Errors) != 3 {
		t.Fatalf("want all 3 error sources merged, got %v", v.Errors)
	}
}

func TestAggregateValidation_InvalidCalcBlocksEvenWithoutErrors(t *testing.T) {
	// A calculation that reports !Valid must block submission even if its
	// error list is empty.
	v := booking.AggregateValidation(nil, nil, booking.Calculation{Valid: false}, false)
	if v.Valid {
		t.Fatal("invalid calculation must produce an invalid verdict")
	}
}

func TestAggregateValidation_Warnings(t *testing.T) {
	t.Run("long stay", func(t *testing.T) {
		v := booking.AggregateValidation(nil, nil, validCalc(15), false)
		if !v.Valid {
			t.Fatalf("warnings must not block: %+v", v)
		}
		if !containsErr(v.Warnings, "Long stay") {
			t.Fatalf("missing long-stay warning: %v", v.Warnings)
		}
	})

	t.Run("at capacity", func(t *testing.T) {
		v := booking.AggregateValidation(nil, nil, validCalc(3), true)
		if !v.Valid {
			t.Fatalf("warnings must not block: %+v", v)
		}
		if !containsErr(v.Warnings, "maximum guest capacity") {
			t.Fatalf("missing capacity warning: %v", v.Warnings)
		}
	})
}
