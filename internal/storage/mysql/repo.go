package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"renteasy/internal/booking"
	"renteasy/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertProperty(ctx context.Context, p domain.Property) error {
	amen, _ := json.Marshal(p.Amenities)
	imgs, _ := json.Marshal(p.Images)
	_, err := r.db.ExecContext(ctx, upsertPropertySQL,
		p.ID,
		valStr(p.Title),
		valStr(p.City),
		valStr(p.Country),
		valStr(p.Currency),
		p.PricePerNight,
		p.CleaningFee,
		p.ServiceFee,
		p.MaxGuests,
		valInt(p.MinNights),
		valInt(p.MaxNights),
		string(amen),
		string(imgs),
		string(p.RawJSON),
	)
	return err
}

func (r *Repo) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, id, status, reason)
	return err
}

func (r *Repo) LogSubmission(ctx context.Context, fd booking.FormData, totalCents int64, currency string) error {
	_, err := r.db.ExecContext(ctx, insertSubmissionSQL,
		fd.RequestID,
		fd.PropertyID,
		fd.CheckInDate,
		fd.CheckOutDate,
		fd.NumberOfGuests,
		fd.GuestDetails.Adults,
		fd.GuestDetails.Children,
		fd.GuestDetails.Infants,
		totalCents,
		nullStr(currency),
		nullStr(fd.SpecialRequests),
	)
	return err
}

func (r *Repo) GetProperty(ctx context.Context, id int64) (domain.PropertyView, error) {
	row := r.db.QueryRowContext(ctx, getPropertySQL, id)
	pv, err := scanPropertyView(row)
	if err == sql.ErrNoRows {
		return domain.PropertyView{}, domain.ErrNotFound
	}
	return pv, err
}

func (r *Repo) ListProperties(ctx context.Context, q domain.PropertiesQuery) (domain.PropertiesPage, error) {
	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	city := valStr(q.City)
	rows, err := r.db.QueryContext(ctx, listPropertiesSQL, city, city, limit)
	if err != nil {
		return domain.PropertiesPage{}, err
	}
	defer rows.Close()

	var out []domain.PropertyView
	for rows.Next() {
		pv, err := scanPropertyView(rows)
		if err != nil {
			return domain.PropertiesPage{}, err
		}
		out = append(out, pv)
	}
	return domain.PropertiesPage{Items: out}, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanPropertyView(row rowScanner) (domain.PropertyView, error) {
	var pv domain.PropertyView
	var title, city, country, currency sql.NullString
	var minNights, maxNights sql.NullInt64
	var amenitiesJSON, imagesJSON []byte

	if err := row.Scan(
		&pv.ID,
		&title, &city, &country, &currency,
		&pv.PricePerNight, &pv.CleaningFee, &pv.ServiceFee,
		&pv.MaxGuests,
		&minNights, &maxNights,
		&amenitiesJSON, &imagesJSON,
		&pv.UpdatedSeq,
	); err != nil {
		return domain.PropertyView{}, err
	}

	if title.Valid {
		s := title.String
		pv.Title = &s
	}
	if city.Valid {
		s := city.String
		pv.City = &s
	}
	if country.Valid {
		s := country.String
		pv.Country = &s
	}
	if currency.Valid {
		pv.Currency = currency.String
	}
	if minNights.Valid {
		n := int(minNights.Int64)
		pv.MinNights = &n
	}
	if maxNights.Valid {
		n := int(maxNights.Int64)
		pv.MaxNights = &n
	}
	_ = json.Unmarshal(amenitiesJSON, &pv.Amenities)
	_ = json.Unmarshal(imagesJSON, &pv.Images)
	return pv, nil
}
