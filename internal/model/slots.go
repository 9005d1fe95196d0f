package model

import "time"

// SlotName identifies one preference slot.
type SlotName string

const (
	SlotEventType       SlotName = "event_type"
	SlotParticipants    SlotName = "participants"
	SlotBudgetPerPerson SlotName = "budget_per_person"
	SlotEventTime       SlotName = "event_time"
	SlotLocation        SlotName = "location"
	SlotSpecialRequests SlotName = "special_requests"
)

// SlotOrder is the canonical collection order. The conversation never
// advances past slot i until slot i is filled.
var SlotOrder = []SlotName{
	SlotEventType,
	SlotParticipants,
	SlotBudgetPerPerson,
	SlotEventTime,
	SlotLocation,
	SlotSpecialRequests,
}

// PreferenceSlots holds the user's event preferences.
//
// EventTime and SpecialRequests use *string with two meanings:
// nil = not collected yet, "" = explicitly "no constraint"/"none".
// BudgetPerPerson is a pointer because 0 (free) is a valid filled value.
type PreferenceSlots struct {
	EventType       string   `json:"event_type"`
	Participants    int      `json:"participants"`
	BudgetPerPerson *float64 `json:"budget_per_person,omitempty"`
	EventTime       *string  `json:"event_time,omitempty"`
	Location        string   `json:"location"`
	SpecialRequests *string  `json:"special_requests,omitempty"`
}

// Filled reports whether the named slot has been collected.
func (p *PreferenceSlots) Filled(name SlotName) bool {
	switch name {
	case SlotEventType:
		return p.EventType != ""
	case SlotParticipants:
		return p.Participants > 0
	case SlotBudgetPerPerson:
		return p.BudgetPerPerson != nil
	case SlotEventTime:
		return p.EventTime != nil
	case SlotLocation:
		return p.Location != ""
	case SlotSpecialRequests:
		return p.SpecialRequests != nil
	}
	return false
}

// NextMissing returns the first unfilled slot in canonical order.
func (p *PreferenceSlots) NextMissing() (SlotName, bool) {
	for _, name := range SlotOrder {
		if !p.Filled(name) {
			return name, true
		}
	}
	return "", false
}

// IsComplete reports whether all six slots are filled.
func (p *PreferenceSlots) IsComplete() bool {
	_, missing := p.NextMissing()
	return !missing
}

// HasTimeConstraint reports whether a concrete event time was given.
func (p *PreferenceSlots) HasTimeConstraint() bool {
	return p.EventTime != nil && *p.EventTime != ""
}

// HasSpecialRequests reports whether the user asked for anything special.
func (p *PreferenceSlots) HasSpecialRequests() bool {
	return p.SpecialRequests != nil && *p.SpecialRequests != ""
}

// ConversationState marks the progress of one planning session.
type ConversationState string

const (
	StateCollectEventType       ConversationState = "collect_event_type"
	StateCollectParticipants    ConversationState = "collect_participants"
	StateCollectBudget          ConversationState = "collect_budget_per_person"
	StateCollectEventTime       ConversationState = "collect_event_time"
	StateCollectLocation        ConversationState = "collect_location"
	StateCollectSpecialRequests ConversationState = "collect_special_requests"
	StateSearching              ConversationState = "searching"
	StateAwaitingFallbackChoice ConversationState = "awaiting_fallback_choice"
	StateAwaitingFallbackDetail ConversationState = "awaiting_fallback_detail"
	StateDone                   ConversationState = "done"
	StateExhausted              ConversationState = "exhausted"
	StateAbandoned              ConversationState = "abandoned"
)

// CollectStateFor maps a slot to its collection state.
func CollectStateFor(name SlotName) ConversationState {
	switch name {
	case SlotEventType:
		return StateCollectEventType
	case SlotParticipants:
		return StateCollectParticipants
	case SlotBudgetPerPerson:
		return StateCollectBudget
	case SlotEventTime:
		return StateCollectEventTime
	case SlotLocation:
		return StateCollectLocation
	case SlotSpecialRequests:
		return StateCollectSpecialRequests
	}
	return StateCollectEventType
}

// SlotForCollectState is the inverse of CollectStateFor.
func SlotForCollectState(state ConversationState) (SlotName, bool) {
	switch state {
	case StateCollectEventType:
		return SlotEventType, true
	case StateCollectParticipants:
		return SlotParticipants, true
	case StateCollectBudget:
		return SlotBudgetPerPerson, true
	case StateCollectEventTime:
		return SlotEventTime, true
	case StateCollectLocation:
		return SlotLocation, true
	case StateCollectSpecialRequests:
		return SlotSpecialRequests, true
	}
	return "", false
}

// Session is the per-conversation state kept for the lifetime of one
// planning session. It is JSON-serializable for the session store.
type Session struct {
	ID             string            `json:"id"`
	State          ConversationState `json:"state"`
	Slots          PreferenceSlots   `json:"slots"`
	RadiusM        int               `json:"radius_m"`
	FallbackChoice FallbackKind      `json:"fallback_choice,omitempty"`
	FallbackRounds int               `json:"fallback_rounds"`
	LastVenues     []Venue           `json:"last_venues,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
