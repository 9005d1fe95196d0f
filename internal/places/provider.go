package places

import (
	"context"
	"errors"

	"eventplanner/internal/model"
)

// ErrAddressNotFound is returned by Geocode when the provider has no
// match for the given address. It is fatal for the current search
// attempt and surfaced to the user as "location not recognized".
var ErrAddressNotFound = errors.New("address not found")

// NearbyParams are the filters for a nearby-venue search.
type NearbyParams struct {
	Latitude  float64
	Longitude float64
	RadiusM   int
	Type      string // Places type filter, e.g. "restaurant", "bar"
	Keyword   string // free-text term matched against names/attributes
	PriceTier *int   // 0-4; nil means no price filter
	Limit     int
}

// DetailField names an on-demand venue detail.
type DetailField string

const (
	FieldOpeningHours DetailField = "opening_hours"
	FieldReviews      DetailField = "reviews"
)

// Provider is the geocoding and venue-search capability the planner
// consumes. Implementations must treat all calls as synchronous and
// bounded by the context deadline.
type Provider interface {
	// Geocode converts a free-form address into coordinates. Returns
	// ErrAddressNotFound when the address cannot be resolved.
	Geocode(ctx context.Context, address string) (lat, lng float64, err error)

	// NearbySearch returns up to p.Limit venues matching the filters.
	NearbySearch(ctx context.Context, p NearbyParams) ([]model.Venue, error)

	// PlaceDetails fetches the requested fields for one venue.
	PlaceDetails(ctx context.Context, id string, fields []DetailField) (*model.Venue, error)
}
