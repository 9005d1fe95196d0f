package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventplanner/internal/model"
	"eventplanner/internal/places"
)

// fakeProvider is an in-memory places.Provider for pipeline tests.
type fakeProvider struct {
	geocodeErr error
	nearbyErr  error
	venues     []model.Venue

	details    map[string]*model.Venue
	detailsErr map[string]error

	lastNearby places.NearbyParams
}

func (f *fakeProvider) Geocode(_ context.Context, address string) (float64, float64, error) {
	if f.geocodeErr != nil {
		return 0, 0, f.geocodeErr
	}
	return 51.4416, 5.4697, nil // Eindhoven
}

func (f *fakeProvider) NearbySearch(_ context.Context, p places.NearbyParams) ([]model.Venue, error) {
	f.lastNearby = p
	if f.nearbyErr != nil {
		return nil, f.nearbyErr
	}
	venues := f.venues
	if p.Limit > 0 && len(venues) > p.Limit {
		venues = venues[:p.Limit]
	}
	out := make([]model.Venue, len(venues))
	copy(out, venues)
	return out, nil
}

func (f *fakeProvider) PlaceDetails(_ context.Context, id string, _ []places.DetailField) (*model.Venue, error) {
	if err, ok := f.detailsErr[id]; ok {
		return nil, err
	}
	if v, ok := f.details[id]; ok {
		return v, nil
	}
	return &model.Venue{ID: id}, nil
}

func barVenues(n int) []model.Venue {
	venues := make([]model.Venue, n)
	for i := range venues {
		venues[i] = model.Venue{ID: string(rune('a' + i)), Name: "Bar " + string(rune('A'+i))}
	}
	return venues
}

func completeSlots() *model.PreferenceSlots {
	budget := 20.0
	noTime := ""
	noRequests := ""
	return &model.PreferenceSlots{
		EventType:       "bar",
		Participants:    5,
		BudgetPerPerson: &budget,
		EventTime:       &noTime,
		Location:        "Eindhoven, Netherlands",
		SpecialRequests: &noRequests,
	}
}

func TestSearch_BarScenario(t *testing.T) {
	provider := &fakeProvider{venues: barVenues(8)}
	svc := NewVenueService(provider, NewTimeResolver(), nil)

	results, err := svc.Search(context.Background(), "s1", completeSlots(), 5000, 5)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}

	if len(results) != 5 {
		t.Errorf("got %d venues, want 5", len(results))
	}
	for _, v := range results {
		if v.RelevanceScore != 0 {
			t.Errorf("venue %s has relevance score %d without special requests", v.ID, v.RelevanceScore)
		}
	}

	// Budget 20 maps to tier 2 for a priceable type.
	if provider.lastNearby.PriceTier == nil || *provider.lastNearby.PriceTier != 2 {
		t.Errorf("price tier = %v, want 2", provider.lastNearby.PriceTier)
	}
	// Double the cap is requested to leave room for filtering.
	if provider.lastNearby.Limit != 10 {
		t.Errorf("nearby limit = %d, want 10", provider.lastNearby.Limit)
	}
	if provider.lastNearby.Keyword != "bar" {
		t.Errorf("keyword = %q, want %q", provider.lastNearby.Keyword, "bar")
	}
}

func TestSearch_NonPriceableTypeSkipsPriceFilter(t *testing.T) {
	provider := &fakeProvider{venues: barVenues(2)}
	svc := NewVenueService(provider, NewTimeResolver(), nil)

	slots := completeSlots()
	slots.EventType = "museum"

	if _, err := svc.Search(context.Background(), "s1", slots, 5000, 5); err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if provider.lastNearby.PriceTier != nil {
		t.Errorf("price tier = %v, want nil for museum", *provider.lastNearby.PriceTier)
	}
}

func TestSearch_AddressNotFoundIsFatal(t *testing.T) {
	provider := &fakeProvider{geocodeErr: places.ErrAddressNotFound}
	svc := NewVenueService(provider, NewTimeResolver(), nil)

	_, err := svc.Search(context.Background(), "s1", completeSlots(), 5000, 5)
	if !errors.Is(err, places.ErrAddressNotFound) {
		t.Errorf("error = %v, want ErrAddressNotFound", err)
	}
}

func TestSearch_OpeningHoursFilter(t *testing.T) {
	// Wednesday 18:30.
	eventTime := "09-07-2025 18:30"

	dayHours := []model.OpeningPeriod{{
		Open:  model.DayTime{Day: time.Wednesday, Time: "0900"},
		Close: model.DayTime{Day: time.Wednesday, Time: "1700"},
	}}
	eveningHours := []model.OpeningPeriod{{
		Open:  model.DayTime{Day: time.Wednesday, Time: "1600"},
		Close: model.DayTime{Day: time.Wednesday, Time: "2300"},
	}}

	provider := &fakeProvider{
		venues: []model.Venue{
			{ID: "closed", Name: "Lunchroom", OpeningPeriods: dayHours},
			{ID: "open", Name: "Evening Bar", OpeningPeriods: eveningHours},
			{ID: "nohours", Name: "Mystery Bar"},
			{ID: "fetchfail", Name: "Flaky Bar"},
		},
		detailsErr: map[string]error{"fetchfail": errors.New("details unavailable")},
	}
	svc := NewVenueService(provider, NewTimeResolver(), nil)

	slots := completeSlots()
	slots.EventTime = &eventTime

	results, err := svc.Search(context.Background(), "s1", slots, 5000, 5)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}

	ids := map[string]bool{}
	for _, v := range results {
		ids[v.ID] = true
	}
	if ids["closed"] {
		t.Error("venue closed at the event time should be filtered out")
	}
	if !ids["open"] {
		t.Error("venue open at the event time should be kept")
	}
	if !ids["nohours"] {
		t.Error("venue without opening-hours data should be assumed open")
	}
	if !ids["fetchfail"] {
		t.Error("venue with a failing details fetch should be kept (fail-open)")
	}
}

func TestSearch_RelevanceScoring(t *testing.T) {
	request := "vegan"

	provider := &fakeProvider{
		venues: []model.Venue{
			{ID: "plain", Name: "Plain Bar", Reviews: []string{"nice drinks"}},
			{ID: "strong", Name: "Green Bar", Reviews: []string{"Vegan heaven, vegan snacks everywhere", "more vegan options than anywhere"}},
			{ID: "weak", Name: "Mixed Bar", Reviews: []string{"some vegan choices"}},
			{ID: "failing", Name: "Flaky Bar"},
		},
		detailsErr: map[string]error{"failing": errors.New("reviews unavailable")},
	}
	svc := NewVenueService(provider, NewTimeResolver(), nil)

	slots := completeSlots()
	slots.SpecialRequests = &request

	results, err := svc.Search(context.Background(), "s1", slots, 5000, 5)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}

	if len(results) != 4 {
		t.Fatalf("got %d venues, want 4", len(results))
	}
	if results[0].ID != "strong" {
		t.Errorf("top venue = %s, want strong", results[0].ID)
	}
	if results[0].RelevanceScore != 4 {
		t.Errorf("strong score = %d, want 4 (1 base + 3 matches)", results[0].RelevanceScore)
	}
	if results[0].RequestMatches != 3 {
		t.Errorf("strong matches = %d, want 3", results[0].RequestMatches)
	}
	if results[1].ID != "weak" {
		t.Errorf("second venue = %s, want weak", results[1].ID)
	}

	// Stable sort: plain and failing both score 1 and keep prior order.
	if results[2].ID != "plain" || results[3].ID != "failing" {
		t.Errorf("tie order = %s,%s, want plain,failing", results[2].ID, results[3].ID)
	}
	for _, v := range results[2:] {
		if v.RelevanceScore != 1 {
			t.Errorf("venue %s base score = %d, want 1", v.ID, v.RelevanceScore)
		}
		if v.RequestMatches != 0 {
			t.Errorf("venue %s matches = %d, want 0", v.ID, v.RequestMatches)
		}
	}

	if results[0].DietaryTags["vegan"] != 2 {
		t.Errorf("strong vegan tag count = %d, want 2 (once per review)", results[0].DietaryTags["vegan"])
	}
}

func TestSearch_KeywordCombinesTypeAndRequests(t *testing.T) {
	request := "vegan"
	provider := &fakeProvider{venues: barVenues(1)}
	svc := NewVenueService(provider, NewTimeResolver(), nil)

	slots := completeSlots()
	slots.SpecialRequests = &request

	if _, err := svc.Search(context.Background(), "s1", slots, 5000, 5); err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if provider.lastNearby.Keyword != "bar vegan" {
		t.Errorf("keyword = %q, want %q", provider.lastNearby.Keyword, "bar vegan")
	}
}
