package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"eventplanner/internal/config"
	"eventplanner/internal/model"
	"eventplanner/internal/places"
)

// Reply is the assistant's side of one conversation turn.
type Reply struct {
	Text    string
	Options []string
	Venues  []model.Venue
}

// fallbackMenu lists the relaxation options presented after a
// zero-result search; positions match model.FallbackKind values.
var fallbackMenu = []string{
	"1. Expand the search radius",
	"2. Change the location",
	"3. Increase the budget",
	"4. Remove the special requests",
	"5. Change the event type",
	"6. Change the event time",
}

// fallbackDetailPrompts ask for the concrete new value per choice.
var fallbackDetailPrompts = map[model.FallbackKind]string{
	model.FallbackExpandRadius:    "What search radius should I use, in meters?",
	model.FallbackChangeLocation:  "Where should I search instead?",
	model.FallbackIncreaseBudget:  "What is the new budget per person?",
	model.FallbackChangeEventType: "What type of venue should I look for instead?",
	model.FallbackChangeEventTime: `When should the event take place instead? You can also say "no preference".`,
}

// Flow drives one planning conversation: it decides, per user turn,
// which collection step or pipeline stage runs next, including the
// fallback sub-protocol after an empty search result.
type Flow struct {
	extractor *SlotExtractor
	venues    *VenueService
	times     *TimeResolver
	ai        *OpenAIClient

	maxResults        int
	defaultRadiusM    int
	maxFallbackRounds int
}

// NewFlow creates a flow controller.
func NewFlow(extractor *SlotExtractor, venues *VenueService, times *TimeResolver, ai *OpenAIClient, cfg *config.SearchConfig) *Flow {
	return &Flow{
		extractor:         extractor,
		venues:            venues,
		times:             times,
		ai:                ai,
		maxResults:        cfg.MaxResults,
		defaultRadiusM:    cfg.RadiusM,
		maxFallbackRounds: cfg.MaxFallbackRounds,
	}
}

// Start initializes a fresh session and returns the opening question.
func (f *Flow) Start(sess *model.Session) *Reply {
	sess.RadiusM = f.defaultRadiusM
	first, _ := sess.Slots.NextMissing()
	sess.State = model.CollectStateFor(first)
	return &Reply{
		Text: "Welcome to the event planner. " + f.extractor.Question(first),
	}
}

// Advance processes one user turn and runs the state machine to the
// next suspension point. It mutates the session in place; the caller
// persists it.
func (f *Flow) Advance(ctx context.Context, sess *model.Session, input string) (*Reply, error) {
	input = strings.TrimSpace(input)

	if isExit(input) {
		sess.State = model.StateAbandoned
		return &Reply{Text: "Okay, I stopped the planning session. Come back any time."}, nil
	}

	if slot, ok := model.SlotForCollectState(sess.State); ok {
		return f.handleCollect(ctx, sess, slot, input)
	}

	switch sess.State {
	case model.StateSearching:
		// A previous search attempt failed transiently; any turn retries.
		return f.runSearch(ctx, sess)
	case model.StateAwaitingFallbackChoice:
		return f.handleFallbackChoice(ctx, sess, input)
	case model.StateAwaitingFallbackDetail:
		return f.handleFallbackDetail(ctx, sess, input)
	case model.StateDone:
		return f.handleFollowUp(ctx, sess, input)
	case model.StateExhausted, model.StateAbandoned:
		return &Reply{Text: "This planning session has ended. Start a new session to plan another event."}, nil
	}

	return nil, fmt.Errorf("session %s is in unknown state %q", sess.ID, sess.State)
}

// handleCollect extracts one slot value from the user's reply and
// either fills the slot and advances, or re-asks.
func (f *Flow) handleCollect(ctx context.Context, sess *model.Session, slot model.SlotName, input string) (*Reply, error) {
	res := f.extractor.Extract(ctx, slot, input)

	switch res.Status {
	case ExtractionNotFilled:
		return &Reply{Text: "Sorry, I didn't catch that. " + f.extractor.Question(slot)}, nil
	case ExtractionInvalid:
		return &Reply{Text: "Sorry, " + res.Reason + ". " + f.extractor.Question(slot)}, nil
	}

	// Event times must resolve before they are accepted, so the search
	// stage never sees an unparsable expression.
	if slot == model.SlotEventTime && !res.None {
		if _, err := f.times.Resolve(res.Text, time.Now()); err != nil {
			var unparsable *UnparsableTimeError
			if errors.As(err, &unparsable) {
				return &Reply{Text: `I couldn't understand that date or time. Try something like "next Friday evening", "tomorrow 19:00" or "24-12-2025 18:30" — or say "no preference".`}, nil
			}
			return nil, err
		}
	}

	f.fillSlot(sess, slot, res)

	if next, missing := sess.Slots.NextMissing(); missing {
		sess.State = model.CollectStateFor(next)
		return &Reply{Text: f.extractor.Question(next)}, nil
	}
	return f.runSearch(ctx, sess)
}

// fillSlot writes one extracted value into the session's slots.
func (f *Flow) fillSlot(sess *model.Session, slot model.SlotName, res ExtractionResult) {
	switch slot {
	case model.SlotEventType:
		sess.Slots.EventType = strings.ToLower(res.Text)
	case model.SlotParticipants:
		sess.Slots.Participants = res.Count
	case model.SlotBudgetPerPerson:
		budget := res.Number
		sess.Slots.BudgetPerPerson = &budget
	case model.SlotEventTime:
		value := ""
		if !res.None {
			value = res.Text
		}
		sess.Slots.EventTime = &value
	case model.SlotLocation:
		sess.Slots.Location = res.Text
	case model.SlotSpecialRequests:
		value := ""
		if !res.None {
			value = res.Text
		}
		sess.Slots.SpecialRequests = &value
	}
}

// runSearch invokes the pipeline and routes its outcome: results,
// fallback menu, exhaustion, or a recoverable failure.
func (f *Flow) runSearch(ctx context.Context, sess *model.Session) (*Reply, error) {
	sess.State = model.StateSearching

	venues, err := f.venues.Search(ctx, sess.ID, &sess.Slots, sess.RadiusM, f.maxResults)
	if errors.Is(err, places.ErrAddressNotFound) {
		sess.Slots.Location = ""
		sess.State = model.StateCollectLocation
		return &Reply{Text: "I couldn't recognize that location. " + f.extractor.Question(model.SlotLocation)}, nil
	}
	if err != nil {
		log.Printf("Venue search failed for session %s: %v", sess.ID, err)
		return &Reply{Text: "The venue search failed. Send any message and I'll try again."}, nil
	}

	if len(venues) == 0 {
		if sess.FallbackRounds >= f.maxFallbackRounds {
			sess.State = model.StateExhausted
			return &Reply{Text: "I'm sorry, no venues could be found for your preferences, even after relaxing the search. Start a new session to try a different plan."}, nil
		}
		sess.State = model.StateAwaitingFallbackChoice
		return &Reply{
			Text:    "I couldn't find any venues matching your preferences. How would you like to adjust the search? Reply with a number.",
			Options: fallbackMenu,
		}, nil
	}

	sess.State = model.StateDone
	sess.LastVenues = venues
	return &Reply{
		Text:   fmt.Sprintf("I found %d venue(s) for you. Ask me anything about them, or say exit to finish.", len(venues)),
		Venues: venues,
	}, nil
}

// handleFallbackChoice interprets the user's menu digit.
func (f *Flow) handleFallbackChoice(ctx context.Context, sess *model.Session, input string) (*Reply, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(input, "."))
	if err != nil || n < 1 || n > len(fallbackMenu) {
		return &Reply{
			Text:    "Please reply with a number between 1 and 6.",
			Options: fallbackMenu,
		}, nil
	}

	kind := model.FallbackKind(n)
	if !kind.NeedsDetail() {
		return f.applyDirective(ctx, sess, model.FallbackDirective{Kind: kind})
	}

	sess.FallbackChoice = kind
	sess.State = model.StateAwaitingFallbackDetail
	return &Reply{Text: fallbackDetailPrompts[kind]}, nil
}

// handleFallbackDetail builds the directive from the concrete new value.
func (f *Flow) handleFallbackDetail(ctx context.Context, sess *model.Session, input string) (*Reply, error) {
	kind := sess.FallbackChoice
	directive := model.FallbackDirective{Kind: kind}

	switch kind {
	case model.FallbackExpandRadius:
		radius, ok := firstInt(input)
		if !ok || radius <= 0 {
			return &Reply{Text: "Please give the new radius in meters, for example 10000."}, nil
		}
		directive.RadiusM = radius
	case model.FallbackChangeLocation:
		if input == "" {
			return &Reply{Text: fallbackDetailPrompts[kind]}, nil
		}
		directive.Location = input
	case model.FallbackIncreaseBudget:
		budget, ok := firstFloat(input)
		if !ok || budget < 0 {
			return &Reply{Text: "Please give the new budget per person as a number."}, nil
		}
		directive.Budget = budget
	case model.FallbackChangeEventType:
		if input == "" {
			return &Reply{Text: fallbackDetailPrompts[kind]}, nil
		}
		directive.EventType = strings.ToLower(input)
	case model.FallbackChangeEventTime:
		if !isDecline(input) {
			if _, err := f.times.Resolve(input, time.Now()); err != nil {
				return &Reply{Text: `I couldn't understand that date or time. Try something like "next Friday evening" or "24-12-2025 18:30".`}, nil
			}
			directive.EventTime = input
		}
	default:
		sess.State = model.StateAwaitingFallbackChoice
		return &Reply{Text: "How would you like to adjust the search?", Options: fallbackMenu}, nil
	}

	return f.applyDirective(ctx, sess, directive)
}

// applyDirective relaxes exactly one constraint and re-runs the search.
func (f *Flow) applyDirective(ctx context.Context, sess *model.Session, directive model.FallbackDirective) (*Reply, error) {
	directive.Apply(&sess.Slots, &sess.RadiusM)
	sess.FallbackChoice = model.FallbackNone
	sess.FallbackRounds++
	return f.runSearch(ctx, sess)
}

// handleFollowUp answers free-form questions about the recommendations.
func (f *Flow) handleFollowUp(ctx context.Context, sess *model.Session, input string) (*Reply, error) {
	if !f.ai.IsEnabled() {
		return &Reply{
			Text:   "Here are the venues I found. Say exit to finish, or start a new session to plan another event.",
			Venues: sess.LastVenues,
		}, nil
	}

	names := make([]string, len(sess.LastVenues))
	for i, v := range sess.LastVenues {
		names[i] = v.Name
	}
	system := fmt.Sprintf(
		"You are an event-planning assistant. The user was recommended these venues: %s. Answer their follow-up question briefly and concretely.",
		strings.Join(names, ", "))

	answer, err := f.ai.Complete(ctx, system, input)
	if err != nil {
		log.Printf("Follow-up answer failed for session %s: %v", sess.ID, err)
		return &Reply{Text: "I couldn't answer that right now. Ask again, or say exit to finish."}, nil
	}
	return &Reply{Text: answer}, nil
}

// isExit reports whether the user wants to abandon the conversation.
func isExit(input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit", "stop", "bye":
		return true
	}
	return false
}
