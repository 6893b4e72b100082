package booking

import (
	"fmt"
	"time"
)

// DateConstraints bound how far and how long a stay may be booked.
// Zero values take the defaults below.
type DateConstraints struct {
	MinNights   int
	MaxNights   int
	AdvanceDays int
}

const (
	defaultMinNights   = 1
	defaultMaxNights   = 30
	defaultAdvanceDays = 365
)

func (c DateConstraints) withDefaults() DateConstraints {
	if c.MinNights <= 0 {
		c.MinNights = defaultMinNights
	}
	if c.MaxNights <= 0 {
		c.MaxNights = defaultMaxNights
	}
	if c.AdvanceDays <= 0 {
		c.AdvanceDays = defaultAdvanceDays
	}
	return c
}

// Nights returns the number of nights between check-in and check-out:
// the calendar-day difference, rounded up, never negative. A nil date
// yields 0. Nights(d, d) == 0 — zero-night stays are not a thing.
//
// The ceiling (rather than a raw duration division) keeps partial-day
// timezone artifacts from ever producing a fractional night.
func Nights(checkIn, checkOut *time.Time) int {
	if checkIn == nil || checkOut == nil {
		return 0
	}
	d := checkOut.Sub(*checkIn)
	if d <= 0 {
		return 0
	}
	const day = 24 * time.Hour
	n := int((d + day - 1) / day)
	return n
}

// IsWeekend reports whether t falls on a Saturday or Sunday in its own location.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WeekendNights counts weekend days from check-in (inclusive) up to
// check-out (exclusive): the nights actually priced. The checkout day is
// never a night, so it never counts. O(nights).
func WeekendNights(checkIn, checkOut time.Time) int {
	n := 0
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		if IsWeekend(d) {
			n++
		}
	}
	return n
}

// midnightOf truncates t to local midnight.
func midnightOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ValidateDates returns every date problem with the requested range, in
// human-readable form. now is injected so a whole validation pass sees one
// consistent clock reading.
func ValidateDates(checkIn, checkOut *time.Time, now time.Time, c DateConstraints) []string {
	c = c.withDefaults()
	var errs []string

	if checkIn == nil {
		errs = append(errs, "Check-in date is required")
	}
	if checkOut == nil {
		errs = append(errs, "Check-out date is required")
	}
	if checkIn == nil || checkOut == nil {
		return errs
	}

	today := midnightOf(now)
	if midnightOf(*checkIn).Before(today) {
		errs = append(errs, "Check-in date cannot be in the past")
	}
	if !checkOut.After(*checkIn) {
		errs = append(errs, "Check-out date must be after check-in date")
		return errs
	}

	nights := Nights(checkIn, checkOut)
	if nights < c.MinNights {
		errs = append(errs, fmt.Sprintf("Minimum stay is %d night(s)", c.MinNights))
	}
	if nights > c.MaxNights {
		errs = append(errs, fmt.Sprintf("Maximum stay is %d nights", c.MaxNights))
	}

	horizon := today.AddDate(0, 0, c.AdvanceDays)
	if midnightOf(*checkIn).After(horizon) {
		errs = append(errs, fmt.Sprintf("Bookings can be made at most %d days in advance", c.AdvanceDays))
	}
	return errs
}
