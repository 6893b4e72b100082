package app

import (
	"encoding/json"
	"strconv"
	"strings"

	"renteasy/internal/domain"
)

/********** alias registries (single source of truth) **********/

// Listing payloads arrive in several vintages; each logical field is looked
// up through its alias chain, first non-empty wins.
var listingAliases = map[string][]string{
	"title":      {"title", "name", "listing_title", "headline"},
	"city":       {"city", "address.city", "location.city"},
	"country":    {"country", "address.country", "location.country_code"},
	"currency":   {"currency", "price.currency", "pricing.currency"},
	"price":      {"price_per_night", "pricePerNight", "price.nightly", "nightly_rate", "base_price"},
	"cleaning":   {"cleaning_fee", "cleaningFee", "fees.cleaning", "price.cleaning_fee"},
	"service":    {"service_fee", "serviceFee", "fees.service", "price.service_fee"},
	"max_guests": {"max_guests", "maxGuests", "capacity", "accommodates", "guest_limit"},
	"min_nights": {"min_nights", "minimum_nights", "min_stay"},
	"max_nights": {"max_nights", "maximum_nights", "max_stay"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, key string) *string {
	for _, p := range listingAliases[key] {
		if s := lookupStr(m, p); s != "" {
			return &s
		}
	}
	return nil
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func aliasFloat(m map[string]any, key string) float64 {
	if f := getFloatFlexible(m, listingAliases[key]...); f != nil {
		return *f
	}
	return 0
}

func aliasInt(m map[string]any, key string) *int {
	if f := getFloatFlexible(m, listingAliases[key]...); f != nil {
		n := int(*f)
		return &n
	}
	return nil
}

// stringList pulls a list of strings, tolerating []any of strings or of
// objects carrying url/name fields.
func stringList(m map[string]any, paths ...string) []string {
	for _, p := range paths {
		raw, ok := lookupAny(m, p).([]any)
		if !ok {
			continue
		}
		var out []string
		for _, item := range raw {
			switch v := item.(type) {
			case string:
				if v != "" {
					out = append(out, v)
				}
			case map[string]any:
				for _, k := range []string{"url", "name", "label"} {
					if s, _ := v[k].(string); s != "" {
						out = append(out, s)
						break
					}
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

/********** mapping **********/

// mapListing flattens a raw listings payload into the catalog entity.
// Unrecognized fields survive inside RawJSON.
func mapListing(id int64, p map[string]any) domain.Property {
	raw, _ := json.Marshal(p)

	prop := domain.Property{
		ID:            id,
		Title:         firstNonEmptyAlias(p, "title"),
		City:          firstNonEmptyAlias(p, "city"),
		Country:       firstNonEmptyAlias(p, "country"),
		Currency:      firstNonEmptyAlias(p, "currency"),
		PricePerNight: aliasFloat(p, "price"),
		CleaningFee:   aliasFloat(p, "cleaning"),
		ServiceFee:    aliasFloat(p, "service"),
		MinNights:     aliasInt(p, "min_nights"),
		MaxNights:     aliasInt(p, "max_nights"),
		Amenities:     stringList(p, "amenities", "features"),
		Images:        stringList(p, "images", "photos"),
		RawJSON:       raw,
	}
	if mg := aliasInt(p, "max_guests"); mg != nil {
		prop.MaxGuests = *mg
	}
	return prop
}
