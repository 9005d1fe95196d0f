package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"eventplanner/internal/config"
	"eventplanner/internal/model"
)

// GoogleClient talks to the Google Maps Web Service (geocoding, nearby
// search, place details).
type GoogleClient struct {
	config     *config.GoogleConfig
	httpClient *http.Client
}

// NewGoogleClient creates a Places client with a bounded request timeout.
func NewGoogleClient(cfg *config.GoogleConfig) *GoogleClient {
	return &GoogleClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

var _ Provider = (*GoogleClient)(nil)

// geocodeResponse is the wire format of /geocode/json.
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// placeResult is the wire format of one place in search/details responses.
type placeResult struct {
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Vicinity string `json:"vicinity,omitempty"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Rating       *float64 `json:"rating,omitempty"`
	PriceLevel   *int     `json:"price_level,omitempty"`
	OpeningHours *struct {
		Periods []struct {
			Open struct {
				Day  int    `json:"day"`
				Time string `json:"time"`
			} `json:"open"`
			Close *struct {
				Day  int    `json:"day"`
				Time string `json:"time"`
			} `json:"close,omitempty"`
		} `json:"periods,omitempty"`
	} `json:"opening_hours,omitempty"`
	Reviews []struct {
		Text string `json:"text"`
	} `json:"reviews,omitempty"`
}

type nearbySearchResponse struct {
	Status       string        `json:"status"`
	Results      []placeResult `json:"results"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

type placeDetailsResponse struct {
	Status       string      `json:"status"`
	Result       placeResult `json:"result"`
	ErrorMessage string      `json:"error_message,omitempty"`
}

// Geocode converts a free-form address into coordinates.
func (c *GoogleClient) Geocode(ctx context.Context, address string) (float64, float64, error) {
	params := url.Values{}
	params.Set("address", address)

	var resp geocodeResponse
	if err := c.get(ctx, "/geocode/json", params, &resp); err != nil {
		return 0, 0, err
	}

	if resp.Status == "ZERO_RESULTS" || len(resp.Results) == 0 {
		return 0, 0, ErrAddressNotFound
	}
	if resp.Status != "OK" {
		return 0, 0, fmt.Errorf("geocode failed: %s %s", resp.Status, resp.ErrorMessage)
	}

	loc := resp.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

// NearbySearch queries venues around a point.
func (c *GoogleClient) NearbySearch(ctx context.Context, p NearbyParams) ([]model.Venue, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", p.Latitude, p.Longitude))
	params.Set("radius", strconv.Itoa(p.RadiusM))
	if p.Type != "" {
		params.Set("type", p.Type)
	}
	if p.Keyword != "" {
		params.Set("keyword", p.Keyword)
	}
	if p.PriceTier != nil {
		params.Set("minprice", "0")
		params.Set("maxprice", strconv.Itoa(*p.PriceTier))
	}

	var resp nearbySearchResponse
	if err := c.get(ctx, "/place/nearbysearch/json", params, &resp); err != nil {
		return nil, err
	}

	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("nearby search failed: %s %s", resp.Status, resp.ErrorMessage)
	}

	venues := make([]model.Venue, 0, len(resp.Results))
	for _, r := range resp.Results {
		venues = append(venues, venueFromWire(r))
		if p.Limit > 0 && len(venues) >= p.Limit {
			break
		}
	}
	return venues, nil
}

// PlaceDetails fetches the requested detail fields for one venue.
func (c *GoogleClient) PlaceDetails(ctx context.Context, id string, fields []DetailField) (*model.Venue, error) {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, string(f))
	}

	params := url.Values{}
	params.Set("place_id", id)
	params.Set("fields", strings.Join(names, ","))

	var resp placeDetailsResponse
	if err := c.get(ctx, "/place/details/json", params, &resp); err != nil {
		return nil, err
	}

	if resp.Status != "OK" {
		return nil, fmt.Errorf("place details failed: %s %s", resp.Status, resp.ErrorMessage)
	}

	v := venueFromWire(resp.Result)
	if v.ID == "" {
		v.ID = id
	}
	return &v, nil
}

// get performs one GET request against the Maps API and decodes the body.
func (c *GoogleClient) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.config.APIKey)
	reqURL := c.config.BaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("maps API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("maps API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode maps API response: %w", err)
	}
	return nil
}

func venueFromWire(r placeResult) model.Venue {
	v := model.Venue{
		ID:        r.PlaceID,
		Name:      r.Name,
		Latitude:  r.Geometry.Location.Lat,
		Longitude: r.Geometry.Location.Lng,
		Address:   r.Vicinity,
		Rating:    r.Rating,
		PriceTier: r.PriceLevel,
	}
	if r.OpeningHours != nil {
		for _, p := range r.OpeningHours.Periods {
			period := model.OpeningPeriod{
				Open: model.DayTime{Day: time.Weekday(p.Open.Day), Time: p.Open.Time},
			}
			if p.Close != nil {
				period.Close = model.DayTime{Day: time.Weekday(p.Close.Day), Time: p.Close.Time}
			}
			v.OpeningPeriods = append(v.OpeningPeriods, period)
		}
	}
	for _, rev := range r.Reviews {
		v.Reviews = append(v.Reviews, rev.Text)
	}
	return v
}
