package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"renteasy/internal/adapters/observability"
	"renteasy/internal/booking"
	"renteasy/internal/domain"
)

type IngestionService struct {
	listings domain.ListingsClient
	repo     domain.PropertyRepository
	cache    domain.Cache
}

func NewIngestionService(c domain.ListingsClient, r domain.PropertyRepository, cache domain.Cache) *IngestionService {
	return &IngestionService{listings: c, repo: r, cache: cache}
}

// IngestListing pulls one listing payload and upserts it into the catalog.
// Known 404/401/403 responses are recorded as misses and stop gracefully;
// anything else (network, 5xx, JSON) bubbles up. Stale caches are evicted in
// every path so we never keep serving an old pricing snapshot.
func (s *IngestionService) IngestListing(ctx context.Context, id int64) error {
	p, err := s.listings.GetListing(ctx, id)
	if err != nil {
		low := strings.ToLower(err.Error())

		if errors.Is(err, domain.ErrNotFound) || strings.Contains(low, "not found") {
			_ = s.repo.LogMiss(ctx, id, 404, "not found")
			s.invalidateProperty(ctx, id)
			return nil
		}
		if strings.Contains(low, "forbidden") || strings.Contains(low, "unauthorized") {
			_ = s.repo.LogMiss(ctx, id, 403, "inactive")
			s.invalidateProperty(ctx, id)
			return nil
		}
		return err
	}

	if err := s.repo.UpsertProperty(ctx, mapListing(id, p)); err != nil {
		return fmt.Errorf("upsert property %d: %w", id, err)
	}
	// Pricing may have changed; drop the cached view. Quote cache entries key
	// on the upsert sequence, so they fall out on their own.
	s.invalidateProperty(ctx, id)
	return nil
}

func (s *IngestionService) invalidateProperty(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, fmt.Sprintf("property:%d", id))
}

// InvalidBookingError blocks a submission that failed validation. The UI
// renders the embedded verdict.
type InvalidBookingError struct {
	Validation booking.Validation
}

func (e *InvalidBookingError) Error() string {
	return fmt.Sprintf("booking rejected: %d validation error(s)", len(e.Validation.Errors))
}

type BookingService struct {
	quotes  *QuoteService
	repo    domain.PropertyRepository
	gateway domain.BookingGateway
}

func NewBookingService(q *QuoteService, r domain.PropertyRepository, g domain.BookingGateway) *BookingService {
	return &BookingService{quotes: q, repo: r, gateway: g}
}

type SubmitRequest struct {
	QuoteRequest
	SpecialRequests string
}

// Submit re-runs the full validation pipeline against the current catalog
// snapshot (never trusting a client-side verdict), assembles the normalized
// form data, audits it, and hands it to the booking-creation API.
func (s *BookingService) Submit(ctx context.Context, req SubmitRequest) (domain.BookingConfirmation, error) {
	quote, err := s.quotes.Quote(ctx, req.QuoteRequest)
	if err != nil {
		return domain.BookingConfirmation{}, err
	}
	if !quote.Validation.Valid {
		observability.ObserveSubmission("rejected")
		return domain.BookingConfirmation{}, &InvalidBookingError{Validation: quote.Validation}
	}

	fd, err := booking.NewFormData(req.PropertyID, req.CheckIn, req.CheckOut, req.Guests, req.SpecialRequests)
	if err != nil {
		// Unreachable after a valid verdict; treat as internal.
		return domain.BookingConfirmation{}, err
	}

	totalCents := int64(math.Round(quote.Calculation.Total * 100))
	if err := s.repo.LogSubmission(ctx, fd, totalCents, quote.Currency); err != nil {
		// The audit row is best-effort; the booking itself must not bounce on it.
		log.Warn().Str("request_id", fd.RequestID).Err(err).Msg("booking audit insert failed")
	}

	conf, err := s.gateway.CreateBooking(ctx, fd)
	if err != nil {
		observability.ObserveSubmission("error")
		return domain.BookingConfirmation{}, err
	}
	observability.ObserveSubmission("accepted")
	log.Info().Str("request_id", fd.RequestID).Str("booking_id", conf.BookingID).Msg("booking submitted")
	return conf, nil
}
