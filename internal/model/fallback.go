package model

// FallbackKind enumerates the ways a zero-result search can be relaxed.
// The numeric values match the menu digits presented to the user.
type FallbackKind int

const (
	FallbackNone            FallbackKind = 0
	FallbackExpandRadius    FallbackKind = 1
	FallbackChangeLocation  FallbackKind = 2
	FallbackIncreaseBudget  FallbackKind = 3
	FallbackRemoveRequests  FallbackKind = 4
	FallbackChangeEventType FallbackKind = 5
	FallbackChangeEventTime FallbackKind = 6
)

// FallbackDirective is a structured instruction to relax exactly one
// search constraint after a zero-result search. Only the field matching
// Kind is meaningful.
type FallbackDirective struct {
	Kind      FallbackKind `json:"kind"`
	RadiusM   int          `json:"radius_m,omitempty"`
	Location  string       `json:"location,omitempty"`
	Budget    float64      `json:"budget,omitempty"`
	EventType string       `json:"event_type,omitempty"`
	EventTime string       `json:"event_time,omitempty"`
}

// NeedsDetail reports whether the choice requires a follow-up value from
// the user before a directive can be built.
func (k FallbackKind) NeedsDetail() bool {
	return k != FallbackRemoveRequests
}

// Apply overwrites exactly one preference slot (or, for radius, the
// transient search radius). All other fields are left untouched.
func (d FallbackDirective) Apply(slots *PreferenceSlots, radiusM *int) {
	switch d.Kind {
	case FallbackExpandRadius:
		*radiusM = d.RadiusM
	case FallbackChangeLocation:
		slots.Location = d.Location
	case FallbackIncreaseBudget:
		budget := d.Budget
		slots.BudgetPerPerson = &budget
	case FallbackRemoveRequests:
		none := ""
		slots.SpecialRequests = &none
	case FallbackChangeEventType:
		slots.EventType = d.EventType
	case FallbackChangeEventTime:
		t := d.EventTime
		slots.EventTime = &t
	}
}
