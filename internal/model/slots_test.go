package model

import "testing"

func float64Ptr(v float64) *float64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func TestNextMissing_CanonicalOrder(t *testing.T) {
	slots := &PreferenceSlots{}

	expected := []SlotName{
		SlotEventType,
		SlotParticipants,
		SlotBudgetPerPerson,
		SlotEventTime,
		SlotLocation,
		SlotSpecialRequests,
	}

	fill := []func(){
		func() { slots.EventType = "bar" },
		func() { slots.Participants = 5 },
		func() { slots.BudgetPerPerson = float64Ptr(20) },
		func() { slots.EventTime = strPtr("") },
		func() { slots.Location = "Eindhoven, Netherlands" },
		func() { slots.SpecialRequests = strPtr("") },
	}

	for i, want := range expected {
		got, missing := slots.NextMissing()
		if !missing {
			t.Fatalf("step %d: expected a missing slot, got none", i)
		}
		if got != want {
			t.Errorf("step %d: next missing = %s, want %s", i, got, want)
		}
		if slots.IsComplete() {
			t.Errorf("step %d: IsComplete should be false", i)
		}
		fill[i]()
	}

	if !slots.IsComplete() {
		t.Error("expected slots to be complete after filling all six")
	}
	if _, missing := slots.NextMissing(); missing {
		t.Error("expected no missing slot after filling all six")
	}
}

func TestFilled_ZeroBudgetAndNoConstraintCount(t *testing.T) {
	slots := &PreferenceSlots{
		BudgetPerPerson: float64Ptr(0),
		EventTime:       strPtr(""),
		SpecialRequests: strPtr(""),
	}

	if !slots.Filled(SlotBudgetPerPerson) {
		t.Error("budget 0 (free) should count as filled")
	}
	if !slots.Filled(SlotEventTime) {
		t.Error("explicit no-constraint event time should count as filled")
	}
	if slots.HasTimeConstraint() {
		t.Error("no-constraint event time should not be a time constraint")
	}
	if slots.HasSpecialRequests() {
		t.Error("explicit none should not count as a special request")
	}
}

func TestFallbackDirective_ApplyTouchesOneField(t *testing.T) {
	base := func() (*PreferenceSlots, int) {
		return &PreferenceSlots{
			EventType:       "restaurant",
			Participants:    5,
			BudgetPerPerson: float64Ptr(20),
			EventTime:       strPtr("tomorrow evening"),
			Location:        "Eindhoven, Netherlands",
			SpecialRequests: strPtr("vegan"),
		}, 5000
	}

	tests := []struct {
		name      string
		directive FallbackDirective
		check     func(t *testing.T, slots *PreferenceSlots, radius int)
	}{
		{
			name:      "increase budget changes only budget",
			directive: FallbackDirective{Kind: FallbackIncreaseBudget, Budget: 100},
			check: func(t *testing.T, slots *PreferenceSlots, radius int) {
				if *slots.BudgetPerPerson != 100 {
					t.Errorf("budget = %v, want 100", *slots.BudgetPerPerson)
				}
				if slots.Location != "Eindhoven, Netherlands" || slots.EventType != "restaurant" {
					t.Error("unrelated slots were modified")
				}
				if *slots.SpecialRequests != "vegan" || *slots.EventTime != "tomorrow evening" {
					t.Error("unrelated slots were modified")
				}
				if radius != 5000 {
					t.Errorf("radius = %d, want untouched 5000", radius)
				}
			},
		},
		{
			name:      "expand radius leaves slots alone",
			directive: FallbackDirective{Kind: FallbackExpandRadius, RadiusM: 10000},
			check: func(t *testing.T, slots *PreferenceSlots, radius int) {
				if radius != 10000 {
					t.Errorf("radius = %d, want 10000", radius)
				}
				if *slots.BudgetPerPerson != 20 || slots.EventType != "restaurant" {
					t.Error("slots were modified by a radius directive")
				}
			},
		},
		{
			name:      "remove requests clears only requests",
			directive: FallbackDirective{Kind: FallbackRemoveRequests},
			check: func(t *testing.T, slots *PreferenceSlots, radius int) {
				if slots.SpecialRequests == nil || *slots.SpecialRequests != "" {
					t.Error("special requests should be cleared to no-constraint")
				}
				if *slots.BudgetPerPerson != 20 || slots.Participants != 5 {
					t.Error("unrelated slots were modified")
				}
			},
		},
		{
			name:      "change event time overwrites only time",
			directive: FallbackDirective{Kind: FallbackChangeEventTime, EventTime: "saturday 20:00"},
			check: func(t *testing.T, slots *PreferenceSlots, radius int) {
				if *slots.EventTime != "saturday 20:00" {
					t.Errorf("event time = %q, want %q", *slots.EventTime, "saturday 20:00")
				}
				if slots.Location != "Eindhoven, Netherlands" {
					t.Error("unrelated slots were modified")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, radius := base()
			tt.directive.Apply(slots, &radius)
			tt.check(t, slots, radius)
		})
	}
}

func TestCollectStateRoundTrip(t *testing.T) {
	for _, name := range SlotOrder {
		state := CollectStateFor(name)
		got, ok := SlotForCollectState(state)
		if !ok || got != name {
			t.Errorf("collect state round trip for %s failed: got %s, ok=%v", name, got, ok)
		}
	}
	if _, ok := SlotForCollectState(StateSearching); ok {
		t.Error("searching must not map to a slot")
	}
}
