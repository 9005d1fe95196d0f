package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"eventplanner/internal/model"
	"eventplanner/internal/utils"
)

// ExtractionStatus classifies the outcome of one extraction attempt.
type ExtractionStatus int

const (
	ExtractionFilled ExtractionStatus = iota
	ExtractionNotFilled
	ExtractionInvalid
)

// ExtractionResult is the typed outcome of extracting one slot value
// from a raw user reply. Exactly one of the value fields is meaningful,
// depending on the slot.
type ExtractionResult struct {
	Status ExtractionStatus
	Reason string

	Text   string  // event_type, event_time, location, special_requests
	Count  int     // participants
	Number float64 // budget_per_person
	None   bool    // nullable slots: explicit "no constraint"/"none"
}

// slotQuestions is the question asked when entering each collect state.
var slotQuestions = map[model.SlotName]string{
	model.SlotEventType:       "What type of event would you like to plan? For example: restaurant, bar, cafe or night_club.",
	model.SlotParticipants:    "How many participants will be attending the event?",
	model.SlotBudgetPerPerson: "What is your budget per person?",
	model.SlotEventTime:       `When should the event take place? A date and time, something like "next Friday evening", or "no preference".`,
	model.SlotLocation:        "Where should the event take place? A city or an address works.",
	model.SlotSpecialRequests: `Any special requests, such as vegan food or wheelchair accessibility? Say "none" if not.`,
}

// slotPrompts instruct the extraction model what to pull out of the
// user's reply for each slot.
var slotPrompts = map[model.SlotName]string{
	model.SlotEventType:       "the type of event or venue the user wants, as a short lowercase places type such as restaurant, bar, cafe, night_club, museum or park",
	model.SlotParticipants:    "the number of participants attending, as a plain integer",
	model.SlotBudgetPerPerson: "the budget per person as a plain number without currency symbols",
	model.SlotEventTime:       "the date/time expression for the event, verbatim as the user phrased it",
	model.SlotLocation:        "the location of the event, as a geocodable place name or address",
	model.SlotSpecialRequests: "the user's special request for the event, such as a dietary requirement",
}

// nullableSlots may be answered with an explicit "none".
var nullableSlots = map[model.SlotName]bool{
	model.SlotEventTime:       true,
	model.SlotSpecialRequests: true,
}

// SlotExtractor turns raw user replies into typed slot values. It
// delegates to the language model when one is configured and falls back
// to deterministic parsing of the raw reply otherwise.
type SlotExtractor struct {
	ai *OpenAIClient
}

// NewSlotExtractor creates a new slot extractor. The client may be nil.
func NewSlotExtractor(ai *OpenAIClient) *SlotExtractor {
	return &SlotExtractor{ai: ai}
}

// Question returns the question to ask for a slot.
func (e *SlotExtractor) Question(slot model.SlotName) string {
	return slotQuestions[slot]
}

// Extract pulls the value for one slot out of a raw user reply.
func (e *SlotExtractor) Extract(ctx context.Context, slot model.SlotName, reply string) ExtractionResult {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return ExtractionResult{Status: ExtractionNotFilled, Reason: "empty reply"}
	}

	if e.ai.IsEnabled() {
		res, err := e.extractWithAI(ctx, slot, reply)
		if err == nil {
			return res
		}
		log.Printf("AI extraction failed for %s: %v, falling back to rule-based parsing", slot, err)
	}

	return e.extractRuleBased(slot, reply)
}

// extractionPayload is the JSON object the extraction model returns.
type extractionPayload struct {
	Found bool   `json:"found"`
	None  bool   `json:"none"`
	Value string `json:"value"`
}

func (e *SlotExtractor) extractWithAI(ctx context.Context, slot model.SlotName, reply string) (ExtractionResult, error) {
	system := fmt.Sprintf(`You extract structured values from a user's reply in an event-planning conversation.
Extract %s.
Respond with a JSON object only: {"found": bool, "none": bool, "value": "..."}.
Set "found" to false if the reply does not contain the value.
Set "none" to true only if the user explicitly declines (no preference, none, skip).`,
		slotPrompts[slot])

	content, err := e.ai.CompleteJSON(ctx, system, reply)
	if err != nil {
		return ExtractionResult{}, err
	}

	var payload extractionPayload
	if err := utils.ParseAIJSON(content, &payload); err != nil {
		return ExtractionResult{}, fmt.Errorf("unparsable extraction response: %w", err)
	}

	if payload.None && nullableSlots[slot] {
		return ExtractionResult{Status: ExtractionFilled, None: true}, nil
	}
	if !payload.Found || strings.TrimSpace(payload.Value) == "" {
		return ExtractionResult{Status: ExtractionNotFilled, Reason: "no value found in reply"}, nil
	}

	return validateSlotValue(slot, strings.TrimSpace(payload.Value)), nil
}

// extractRuleBased parses the raw reply directly, mirroring the
// graceful degradation the service applies when no AI client is
// configured.
func (e *SlotExtractor) extractRuleBased(slot model.SlotName, reply string) ExtractionResult {
	if nullableSlots[slot] && isDecline(reply) {
		return ExtractionResult{Status: ExtractionFilled, None: true}
	}
	return validateSlotValue(slot, reply)
}

// validateSlotValue converts a raw string value into the slot's type.
func validateSlotValue(slot model.SlotName, value string) ExtractionResult {
	switch slot {
	case model.SlotParticipants:
		n, ok := firstInt(value)
		if !ok {
			return ExtractionResult{Status: ExtractionInvalid, Reason: "please give the number of participants as a number"}
		}
		if n <= 0 {
			return ExtractionResult{Status: ExtractionInvalid, Reason: "the number of participants must be positive"}
		}
		return ExtractionResult{Status: ExtractionFilled, Count: n}

	case model.SlotBudgetPerPerson:
		f, ok := firstFloat(value)
		if !ok {
			return ExtractionResult{Status: ExtractionInvalid, Reason: "please give the budget per person as a number"}
		}
		if f < 0 {
			return ExtractionResult{Status: ExtractionInvalid, Reason: "the budget cannot be negative"}
		}
		return ExtractionResult{Status: ExtractionFilled, Number: f}

	default:
		return ExtractionResult{Status: ExtractionFilled, Text: value}
	}
}

// isDecline reports whether the reply is an explicit "no"/"none".
func isDecline(reply string) bool {
	switch strings.ToLower(strings.TrimSpace(strings.TrimRight(reply, ".!"))) {
	case "no", "none", "nothing", "nope", "skip", "no preference", "no constraint", "no requests":
		return true
	}
	return false
}

// firstInt returns the first integer found among the reply's tokens.
func firstInt(s string) (int, bool) {
	for _, tok := range strings.Fields(s) {
		if n, err := strconv.Atoi(trimNonNumeric(tok)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// firstFloat returns the first number found among the reply's tokens,
// tolerating currency symbols.
func firstFloat(s string) (float64, bool) {
	for _, tok := range strings.Fields(s) {
		if f, err := strconv.ParseFloat(trimNonNumeric(tok), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// trimNonNumeric strips leading/trailing runes that cannot be part of a
// number, such as currency symbols and punctuation.
func trimNonNumeric(tok string) string {
	return strings.TrimFunc(tok, func(r rune) bool {
		return (r < '0' || r > '9') && r != '-' && r != '.'
	})
}
