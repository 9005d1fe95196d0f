package service

// PriceTier converts a per-person budget into the discrete 0-4 price
// level used by the places API. The boundaries are currency-agnostic
// budget units. Negative budgets are treated as free.
//
//	<=0  -> 0 (free)
//	<=10 -> 1 (inexpensive)
//	<=30 -> 2 (moderate)
//	<=60 -> 3 (expensive)
//	>60  -> 4 (very expensive)
func PriceTier(budgetPerPerson float64) int {
	switch {
	case budgetPerPerson <= 0:
		return 0
	case budgetPerPerson <= 10:
		return 1
	case budgetPerPerson <= 30:
		return 2
	case budgetPerPerson <= 60:
		return 3
	default:
		return 4
	}
}

// priceableTypes are the venue types for which a price-level filter is
// meaningful. Entertainment/retail-only types are searched without a
// price filter.
var priceableTypes = map[string]bool{
	"restaurant":    true,
	"bar":           true,
	"cafe":          true,
	"bakery":        true,
	"night_club":    true,
	"food":          true,
	"meal_takeaway": true,
}

// Priceable reports whether price-tier filtering applies to a venue type.
func Priceable(eventType string) bool {
	return priceableTypes[eventType]
}
