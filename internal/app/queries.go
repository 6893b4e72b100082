package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"renteasy/internal/adapters/observability"
	"renteasy/internal/booking"
	"renteasy/internal/domain"
)

type QueryService struct {
	repo     domain.PropertyRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.PropertyRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetProperty(ctx context.Context, id int64) (domain.PropertyView, error) {
	key := fmt.Sprintf("property:%d", id)
	var pv domain.PropertyView
	if ok, _ := s.cache.Get(ctx, key, &pv); ok {
		return pv, nil
	}
	pv, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return domain.PropertyView{}, err
	}
	_ = s.cache.Set(ctx, key, pv, int(s.cacheTTL.Seconds()))
	return pv, nil
}

func (s *QueryService) ListProperties(ctx context.Context, q domain.PropertiesQuery) (domain.PropertiesPage, error) {
	// List results are small and filter-dependent; skip the cache.
	return s.repo.ListProperties(ctx, q)
}

// QuoteDefaults are the service-wide booking rules; per-property stay bounds
// override the date constraints.
type QuoteDefaults struct {
	Options     booking.Options
	Constraints booking.DateConstraints
}

// QuoteService runs the booking engine against catalog data. All
// computation is pure; the only state here is the memoization cache.
type QuoteService struct {
	queries  *QueryService
	cache    domain.Cache
	quoteTTL time.Duration
	defaults QuoteDefaults
	now      func() time.Time
}

func NewQuoteService(q *QueryService, c domain.Cache, ttl time.Duration, d QuoteDefaults) *QuoteService {
	return &QuoteService{queries: q, cache: c, quoteTTL: ttl, defaults: d, now: time.Now}
}

// WithClock replaces the clock source. Tests only.
func (s *QuoteService) WithClock(now func() time.Time) *QuoteService {
	s.now = now
	return s
}

type QuoteRequest struct {
	PropertyID int64
	CheckIn    *time.Time
	CheckOut   *time.Time
	Guests     booking.GuestSelection
}

type Quote struct {
	PropertyID   int64               `json:"propertyId"`
	Currency     string              `json:"currency,omitempty"`
	Calculation  booking.Calculation `json:"calculation"`
	Validation   booking.Validation  `json:"validation"`
	TotalDisplay string              `json:"totalDisplay,omitempty"`
}

// Quote loads the property, snapshots "now" once, and runs date validation,
// guest validation, and pricing against that single snapshot before
// aggregating. Results are memoized; recomputing is always safe and yields
// the identical quote.
func (s *QuoteService) Quote(ctx context.Context, req QuoteRequest) (Quote, error) {
	pv, err := s.queries.GetProperty(ctx, req.PropertyID)
	if err != nil {
		return Quote{}, err
	}

	now := s.now() // one clock read per validation pass

	key := s.quoteKey(pv, req, now)
	var cached Quote
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	constraints := s.defaults.Constraints
	if pv.MinNights != nil {
		constraints.MinNights = *pv.MinNights
	}
	if pv.MaxNights != nil {
		constraints.MaxNights = *pv.MaxNights
	}

	dateErrs := booking.ValidateDates(req.CheckIn, req.CheckOut, now, constraints)
	guestErrs := booking.ValidateGuests(req.Guests, pv.MaxGuests)

	calc, calcErr := booking.Calculate(pv.Rates(), req.CheckIn, req.CheckOut, s.defaults.Options)
	if calcErr != nil {
		observability.PricingFailures.Inc()
		log.Error().Int64("property", pv.ID).Err(calcErr).Msg("price calculation failed")
	}

	atCapacity := pv.MaxGuests > 0 && req.Guests.Occupancy() == pv.MaxGuests
	validation := booking.AggregateValidation(dateErrs, guestErrs, calc, atCapacity)
	observability.ObserveQuote(validation.Valid)

	quote := Quote{
		PropertyID:  pv.ID,
		Currency:    pv.Currency,
		Calculation: calc,
		Validation:  validation,
	}
	if validation.Valid {
		quote.TotalDisplay = booking.FormatPrice(calc.Total, pv.Currency)
	}

	// A pricing failure is not cacheable: the property data may be fixed by
	// the next ingest at any moment.
	if calcErr == nil {
		_ = s.cache.Set(ctx, key, quote, int(s.quoteTTL.Seconds()))
	}
	return quote, nil
}

// quoteKey hashes the full input snapshot: property identity and version,
// dates, guests, options, and the calendar day of "now" (a past-date verdict
// must not leak across midnight).
func (s *QuoteService) quoteKey(pv domain.PropertyView, req QuoteRequest, now time.Time) string {
	fmtDate := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("2006-01-02")
	}
	h := sha1.Sum([]byte(fmt.Sprintf("%d|%d|%s|%s|%d|%d|%d|%+v|%s",
		pv.ID, pv.UpdatedSeq,
		fmtDate(req.CheckIn), fmtDate(req.CheckOut),
		req.Guests.Adults, req.Guests.Children, req.Guests.Infants,
		s.defaults, now.Format("2006-01-02"),
	)))
	return "quote:" + hex.EncodeToString(h[:])
}
