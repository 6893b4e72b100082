package mysql

const upsertPropertySQL = `
INSERT INTO properties
  (id, title, city, country, currency, price_per_night, cleaning_fee, service_fee,
   max_guests, min_nights, max_nights, amenities, images, raw, updated_seq)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
ON DUPLICATE KEY UPDATE
  title           = VALUES(title),
  city            = VALUES(city),
  country         = VALUES(country),
  currency        = VALUES(currency),
  price_per_night = VALUES(price_per_night),
  cleaning_fee    = VALUES(cleaning_fee),
  service_fee     = VALUES(service_fee),
  max_guests      = VALUES(max_guests),
  min_nights      = VALUES(min_nights),
  max_nights      = VALUES(max_nights),
  amenities       = VALUES(amenities),
  images          = VALUES(images),
  raw             = VALUES(raw),
  updated_seq     = properties.updated_seq + 1,
  updated_at      = CURRENT_TIMESTAMP
`

const insertMissSQL = `
INSERT INTO listing_misses (id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE seen_at = CURRENT_TIMESTAMP
`

// Audit trail of everything handed to the booking-creation API. Insert-only;
// request_id is the idempotency key, so replays collapse into one row.
const insertSubmissionSQL = `
INSERT INTO booking_submissions
  (request_id, property_id, check_in, check_out, guests_total, adults, children, infants,
   total_cents, currency, special_requests)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE request_id = request_id
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const getPropertySQL = `
SELECT
  id, title, city, country, currency,
  price_per_night, cleaning_fee, service_fee,
  max_guests, min_nights, max_nights,
  amenities, images, updated_seq
FROM properties
WHERE id = ?
`

const listPropertiesSQL = `
SELECT
  id, title, city, country, currency,
  price_per_night, cleaning_fee, service_fee,
  max_guests, min_nights, max_nights,
  amenities, images, updated_seq
FROM properties
WHERE (? IS NULL OR city = ?)
ORDER BY id
LIMIT ?
`
