package app_test

import (
	"context"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"renteasy/internal/app"
	"renteasy/internal/booking"
	"renteasy/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	pv          domain.PropertyView
	getCalls    int
	misses      []int64
	submissions []booking.FormData
	upserts     []domain.Property
}

func (f *fakeRepo) UpsertProperty(ctx context.Context, p domain.Property) error {
	f.upserts = append(f.upserts, p)
	return nil
}
func (f *fakeRepo) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	f.misses = append(f.misses, id)
	return nil
}
func (f *fakeRepo) LogSubmission(ctx context.Context, fd booking.FormData, totalCents int64, currency string) error {
	f.submissions = append(f.submissions, fd)
	return nil
}
func (f *fakeRepo) GetProperty(ctx context.Context, id int64) (domain.PropertyView, error) {
	f.getCalls++
	if f.pv.ID == 0 {
		return domain.PropertyView{}, domain.ErrNotFound
	}
	return f.pv, nil
}
func (f *fakeRepo) ListProperties(ctx context.Context, q domain.PropertiesQuery) (domain.PropertiesPage, error) {
	return domain.PropertiesPage{Items: []domain.PropertyView{f.pv}}, nil
}

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.PropertyView:
		*d = v.(domain.PropertyView)
	case *app.Quote:
		*d = v.(app.Quote)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func testProperty() domain.PropertyView {
	return domain.PropertyView{
		ID:            42,
		Currency:      "USD",
		PricePerNight: 100,
		CleaningFee:   50,
		ServiceFee:    20,
		MaxGuests:     4,
	}
}

func fixedNow() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }

func pd(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newQuoteService(repo *fakeRepo, cache *fakeCache) *app.QuoteService {
	q := app.NewQueryService(repo, cache, 10*time.Minute)
	return app.NewQuoteService(q, cache, 5*time.Minute, app.QuoteDefaults{}).WithClock(fixedNow)
}

// ---- tests ----

func TestGetProperty_CacheMissThenHit(t *testing.T) {
	repo := &fakeRepo{pv: testProperty()}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 10*time.Minute)

	pv, err := q.GetProperty(context.Background(), 42)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if pv.ID != 42 || pv.PricePerNight != 100 {
		t.Fatalf("unexpected property: %+v", pv)
	}

	// Mutate repo to prove the second read comes from cache
	repo.pv.PricePerNight = 999

	pv2, err := q.GetProperty(context.Background(), 42)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if pv2.PricePerNight != 100 {
		t.Fatalf("expected cached price, got %v", pv2.PricePerNight)
	}
}

func TestQuote_ValidBreakdown(t *testing.T) {
	repo := &fakeRepo{pv: testProperty()}
	qs := newQuoteService(repo, &fakeCache{})

	quote, err := qs.Quote(context.Background(), app.QuoteRequest{
		PropertyID: 42,
		CheckIn:    pd(2024, 6, 3),
		CheckOut:   pd(2024, 6, 6),
		Guests:     booking.GuestSelection{Adults: 2},
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !quote.Validation.Valid {
		t.Fatalf("expected valid quote: %+v", quote.Validation)
	}
	c := quote.Calculation
	near := func(got, want float64) bool { return math.Abs(got-want) < 1e-9 }
	if c.Nights != 3 || !near(c.Subtotal, 300) || !near(c.Taxes, 44.4) || !near(c.Total, 414.4) {
		t.Fatalf("unexpected breakdown: %+v", c)
	}
	if quote.TotalDisplay != "$414.40" {
		t.Fatalf("unexpected display total: %q", quote.TotalDisplay)
	}
}

func TestQuote_Memoized(t *testing.T) {
	repo := &fakeRepo{pv: testProperty()}
	cache := &fakeCache{}
	qs := newQuoteService(repo, cache)

	req := app.QuoteRequest{
		PropertyID: 42,
		CheckIn:    pd(2024, 6, 3),
		CheckOut:   pd(2024, 6, 6),
		Guests:     booking.GuestSelection{Adults: 2},
	}
	first, err := qs.Quote(context.Background(), req)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	// Same inputs again: result must be identical whether or not the cache
	// served it.
	second, err := qs.Quote(context.Background(), req)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("memoized quote differs:\n%+v\n%+v", first, second)
	}
}

func TestQuote_AggregatesAllErrorSources(t *testing.T) {
	repo := &fakeRepo{pv: testProperty()}
	qs := newQuoteService(repo, &fakeCache{})

	// Inverted dates and zero adults at once.
	quote, err := qs.Quote(context.Background(), app.QuoteRequest{
		PropertyID: 42,
		CheckIn:    pd(2024, 6, 6),
		CheckOut:   pd(2024, 6, 3),
		Guests:     booking.GuestSelection{},
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if quote.Validation.Valid {
		t.Fatal("expected invalid verdict")
	}
	// date ordering + no adult + calc "Invalid date range"
	if len(quote.Validation.Errors) != 3 {
		t.Fatalf("expected all error sources merged, got %v", quote.Validation.Errors)
	}
	if quote.Calculation.Total != 0 {
		t.Fatalf("expected safe zero calculation: %+v", quote.Calculation)
	}
}

func TestQuote_CapacityWarning(t *testing.T) {
	pv := testProperty()
	pv.MaxGuests = 2
	repo := &fakeRepo{pv: pv}
	qs := newQuoteService(repo, &fakeCache{})

	quote, err := qs.Quote(context.Background(), app.QuoteRequest{
		PropertyID: 42,
		CheckIn:    pd(2024, 6, 3),
		CheckOut:   pd(2024, 6, 6),
		Guests:     booking.GuestSelection{Adults: 2},
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !quote.Validation.Valid {
		t.Fatalf("expected valid quote: %+v", quote.Validation)
	}
	if len(quote.Validation.Warnings) != 1 {
		t.Fatalf("expected capacity warning: %v", quote.Validation.Warnings)
	}
}

func TestQuote_PropertyMinNightsOverride(t *testing.T) {
	pv := testProperty()
	three := 3
	pv.MinNights = &three
	repo := &fakeRepo{pv: pv}
	qs := newQuoteService(repo, &fakeCache{})

	quote, err := qs.Quote(context.Background(), app.QuoteRequest{
		PropertyID: 42,
		CheckIn:    pd(2024, 6, 3),
		CheckOut:   pd(2024, 6, 5),
		Guests:     booking.GuestSelection{Adults: 2},
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if quote.Validation.Valid {
		t.Fatal("two-night stay must fail a three-night minimum")
	}
}

func TestQuote_PropertyNotFound(t *testing.T) {
	qs := newQuoteService(&fakeRepo{}, &fakeCache{})
	_, err := qs.Quote(context.Background(), app.QuoteRequest{PropertyID: 7})
	if err == nil {
		t.Fatal("expected not-found error")
	}
}

func TestQuote_PricingFailureNotCached(t *testing.T) {
	pv := testProperty()
	pv.PricePerNight = -5 // malformed catalog data
	repo := &fakeRepo{pv: pv}
	cache := &fakeCache{}
	qs := newQuoteService(repo, cache)

	quote, err := qs.Quote(context.Background(), app.QuoteRequest{
		PropertyID: 42,
		CheckIn:    pd(2024, 6, 3),
		CheckOut:   pd(2024, 6, 6),
		Guests:     booking.GuestSelection{Adults: 2},
	})
	if err != nil {
		t.Fatalf("pricing failures must not escape as errors: %v", err)
	}
	if quote.Validation.Valid || quote.Calculation.Total != 0 {
		t.Fatalf("expected safe invalid quote: %+v", quote)
	}
	for k := range cache.store {
		if strings.HasPrefix(k, "quote:") {
			t.Fatalf("pricing failure was cached under %s", k)
		}
	}
}
