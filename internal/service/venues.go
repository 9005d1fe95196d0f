package service

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"eventplanner/internal/model"
	"eventplanner/internal/places"
	"eventplanner/internal/repository"
)

// VenueService runs the venue search pipeline: geocode, nearby search,
// opening-hours filter, relevance scoring, truncation.
type VenueService struct {
	provider places.Provider
	times    *TimeResolver
	repo     *repository.PlannerRepository
}

// NewVenueService creates a new venue service. The repository may be
// nil, in which case search logging is skipped.
func NewVenueService(provider places.Provider, times *TimeResolver, repo *repository.PlannerRepository) *VenueService {
	return &VenueService{
		provider: provider,
		times:    times,
		repo:     repo,
	}
}

// Search runs the full pipeline for the given preferences.
//
// Only geocoding failure is fatal: places.ErrAddressNotFound or a
// transient provider error on the first two stages is returned to the
// caller. Per-venue enrichment failures in the later stages fail open
// (the venue is kept) and are logged, never surfaced.
func (s *VenueService) Search(ctx context.Context, sessionID string, slots *model.PreferenceSlots, radiusM, maxResults int) ([]model.Venue, error) {
	startTime := time.Now()

	// Stage 1: geocode the location.
	lat, lng, err := s.provider.Geocode(ctx, slots.Location)
	if err != nil {
		return nil, err
	}

	// Stage 2: nearby search. Keyword combines event type and special
	// requests; the price filter applies to priceable categories only.
	// Request double the result cap to leave room for later filtering.
	params := places.NearbyParams{
		Latitude:  lat,
		Longitude: lng,
		RadiusM:   radiusM,
		Type:      slots.EventType,
		Keyword:   joinKeyword(slots.EventType, slots.SpecialRequests),
		Limit:     maxResults * 2,
	}
	if Priceable(slots.EventType) && slots.BudgetPerPerson != nil {
		tier := PriceTier(*slots.BudgetPerPerson)
		params.PriceTier = &tier
	}

	candidates, err := s.provider.NearbySearch(ctx, params)
	if err != nil {
		return nil, err
	}

	// Stage 3: opening-hours filter.
	if slots.HasTimeConstraint() {
		candidates = s.filterByOpeningHours(ctx, candidates, *slots.EventTime)
	}

	// Stage 4: relevance scoring against the special-request phrase.
	if slots.HasSpecialRequests() {
		candidates = s.scoreByRequest(ctx, candidates, *slots.SpecialRequests)
	}

	// Stage 5: truncate.
	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	took := time.Since(startTime).Milliseconds()

	// Log search (non-blocking).
	if s.repo != nil {
		results := candidates
		slotsCopy := *slots
		go func() {
			venueIDs := make([]string, len(results))
			for i, v := range results {
				venueIDs[i] = v.ID
			}
			_ = s.repo.LogSearch(context.Background(), sessionID, &slotsCopy, len(results), venueIDs, int(took))
		}()
	}

	return candidates, nil
}

// filterByOpeningHours keeps venues open at the resolved event time.
// Venues with no opening-hours data are assumed open, and per-venue
// fetch failures keep the venue (fail-open).
func (s *VenueService) filterByOpeningHours(ctx context.Context, venues []model.Venue, eventTime string) []model.Venue {
	resolved, err := s.times.Resolve(eventTime, time.Now())
	if err != nil {
		// The expression was validated at collection time; if it no
		// longer resolves, skip the filter rather than drop everything.
		log.Printf("Warning: event time %q did not resolve during search: %v", eventTime, err)
		return venues
	}

	kept := venues[:0]
	for _, v := range venues {
		periods := v.OpeningPeriods
		if len(periods) == 0 {
			details, err := s.provider.PlaceDetails(ctx, v.ID, []places.DetailField{places.FieldOpeningHours})
			if err != nil {
				log.Printf("Warning: opening hours fetch failed for %s, keeping venue: %v", v.ID, err)
				kept = append(kept, v)
				continue
			}
			periods = details.OpeningPeriods
			v.OpeningPeriods = periods
		}
		if len(periods) == 0 || IsOpen(periods, resolved.Weekday, resolved.Time) {
			kept = append(kept, v)
		}
	}
	return kept
}

// scoreByRequest counts case-insensitive occurrences of the request
// phrase across each venue's reviews and sorts by the resulting score.
// Every venue keeps a base score of 1 (it already matched the keyword
// search); ties preserve prior order. Review-fetch failures keep the
// venue at its base score (fail-open).
func (s *VenueService) scoreByRequest(ctx context.Context, venues []model.Venue, request string) []model.Venue {
	phrase := strings.ToLower(strings.TrimSpace(request))

	for i := range venues {
		v := &venues[i]
		v.RelevanceScore = 1

		reviews := v.Reviews
		if len(reviews) == 0 {
			details, err := s.provider.PlaceDetails(ctx, v.ID, []places.DetailField{places.FieldReviews})
			if err != nil {
				log.Printf("Warning: review fetch failed for %s, keeping base score: %v", v.ID, err)
				continue
			}
			reviews = details.Reviews
			v.Reviews = reviews
		}

		matches := 0
		for _, text := range reviews {
			matches += strings.Count(strings.ToLower(text), phrase)
		}
		if matches > 0 {
			v.RequestMatches = matches
		}
		v.RelevanceScore = 1 + matches

		if tags := DietaryTagCounts(reviews); len(tags) > 0 {
			v.DietaryTags = tags
		}
	}

	sort.SliceStable(venues, func(i, j int) bool {
		return venues[i].RelevanceScore > venues[j].RelevanceScore
	})
	return venues
}

// joinKeyword space-joins the event type and special requests, dropping
// empty parts.
func joinKeyword(eventType string, requests *string) string {
	parts := []string{}
	if eventType != "" {
		parts = append(parts, eventType)
	}
	if requests != nil && *requests != "" {
		parts = append(parts, *requests)
	}
	return strings.Join(parts, " ")
}
