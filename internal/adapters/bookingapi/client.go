package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"renteasy/internal/adapters/observability"
	"renteasy/internal/booking"
	"renteasy/internal/domain"
)

// Client submits finalized booking requests to the external
// booking-creation API.
type Client struct {
	base string
	hc   *http.Client
	key  string
}

var (
	// ErrRejected means the booking API refused the submission for business
	// reasons (sold dates, stale pricing). Not retryable with the same payload.
	ErrRejected     = errors.New("bookingapi: submission rejected")
	ErrUnauthorized = errors.New("bookingapi: unauthorized")
)

func New(base, key string) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
	}, nil
}

// CreateBooking POSTs the form data. Transient failures (429, 5xx) are
// retried with the payload's RequestID as Idempotency-Key, so a retry can
// never double-book.
func (c *Client) CreateBooking(ctx context.Context, fd booking.FormData) (domain.BookingConfirmation, error) {
	body, err := json.Marshal(fd)
	if err != nil {
		return domain.BookingConfirmation{}, err
	}
	url := c.base + "/bookings"

	var lastErr error
attempts:
	for i := 0; i < 3; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return domain.BookingConfirmation{}, err
		}
		req.Header.Set("X-API-Key", c.key)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", fd.RequestID)

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return domain.BookingConfirmation{}, ctx.Err()
			}
			lastErr = err
			if !waitRetry(ctx, i, nil) {
				break
			}
			continue
		}
		observability.ObserveExternal("bookingapi", "create_booking", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated:
			var conf domain.BookingConfirmation
			err := json.NewDecoder(resp.Body).Decode(&conf)
			resp.Body.Close()
			if err != nil {
				return domain.BookingConfirmation{}, err
			}
			if conf.Status == "" {
				conf.Status = "confirmed"
			}
			return conf, nil

		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body.Close()
			return domain.BookingConfirmation{}, ErrUnauthorized

		case http.StatusConflict, http.StatusUnprocessableEntity:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return domain.BookingConfirmation{}, fmt.Errorf("%w: %s", ErrRejected, strings.TrimSpace(string(b)))

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			resp.Body.Close() // headers stay readable for Retry-After
			if !waitRetry(ctx, i, resp) {
				break attempts
			}
			continue

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return domain.BookingConfirmation{}, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	if ctx.Err() != nil {
		return domain.BookingConfirmation{}, ctx.Err()
	}
	return domain.BookingConfirmation{}, lastErr
}

// waitRetry sleeps for Retry-After (when resp provides one) or a doubling
// backoff. Returns false when retries are exhausted or ctx is done.
func waitRetry(ctx context.Context, attempt int, resp *http.Response) bool {
	if attempt >= 2 {
		return false
	}
	wait := time.Duration(1<<attempt) * 250 * time.Millisecond
	if resp != nil {
		if h := resp.Header.Get("Retry-After"); h != "" {
			if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
				wait = time.Duration(secs) * time.Second
			}
		}
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
