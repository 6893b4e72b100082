package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"renteasy/internal/app"
	"renteasy/internal/booking"
	"renteasy/internal/domain"
)

type Handlers struct {
	Q        *app.QueryService
	Quotes   *app.QuoteService
	Bookings *app.BookingService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/properties", h.listProperties)
	s.mux.Get("/v1/properties/{id}", h.getProperty)
	s.mux.Post("/v1/properties/{id}/quote", h.quote)
	s.mux.Post("/v1/bookings", h.createBooking)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	resp, err := h.Q.GetProperty(r.Context(), id)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
		return
	}

	etag, body := calcETagAndBody(resp)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getProperty body")
	}
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	q := domain.PropertiesQuery{Limit: 50}
	if c := r.URL.Query().Get("city"); c != "" {
		q.City = &c
	}
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		q.Limit = l
	}

	out, err := h.Q.ListProperties(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal", "could not list properties")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// quoteBody is the wire shape shared by the quote and booking endpoints.
// Dates are date-only strings; absent dates validate as "required" rather
// than failing the parse.
type quoteBody struct {
	CheckIn         string                 `json:"checkIn"`
	CheckOut        string                 `json:"checkOut"`
	Guests          booking.GuestSelection `json:"guests"`
	SpecialRequests string                 `json:"specialRequests"`
}

func (b quoteBody) dates() (*time.Time, *time.Time, error) {
	parse := func(s string) (*time.Time, error) {
		if s == "" {
			return nil, nil
		}
		t, err := booking.ParseWireDate(s)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	in, err := parse(b.CheckIn)
	if err != nil {
		return nil, nil, err
	}
	out, err := parse(b.CheckOut)
	if err != nil {
		return nil, nil, err
	}
	return in, out, nil
}

func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}

	var body quoteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be valid JSON")
		return
	}
	checkIn, checkOut, err := body.dates()
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid date", "dates must be YYYY-MM-DD")
		return
	}

	quote, err := h.Quotes.Quote(r.Context(), app.QuoteRequest{
		PropertyID: id,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     body.Guests,
	})
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
		return
	}
	// An invalid quote is still a 200: the verdict is the payload.
	writeJSON(w, http.StatusOK, quote)
}

type createBookingBody struct {
	PropertyID int64 `json:"propertyId"`
	quoteBody
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var body createBookingBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be valid JSON")
		return
	}
	if body.PropertyID <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid property", "propertyId is required")
		return
	}
	checkIn, checkOut, err := body.dates()
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid date", "dates must be YYYY-MM-DD")
		return
	}

	conf, err := h.Bookings.Submit(r.Context(), app.SubmitRequest{
		QuoteRequest: app.QuoteRequest{
			PropertyID: body.PropertyID,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Guests:     body.Guests,
		},
		SpecialRequests: body.SpecialRequests,
	})
	if err != nil {
		var invalid *app.InvalidBookingError
		switch {
		case errors.As(err, &invalid):
			writeJSON(w, http.StatusUnprocessableEntity, invalid.Validation)
		case errors.Is(err, domain.ErrNotFound):
			writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
		default:
			log.Error().Err(err).Int64("property", body.PropertyID).Msg("booking submission failed")
			writeProblem(w, http.StatusBadGateway, "Booking failed", "the booking service could not accept the request")
		}
		return
	}
	writeJSON(w, http.StatusCreated, conf)
}
