package service

import "strings"

// dietaryKeywords maps each dietary tag to the phrase variants that
// count as a hit for it in review text.
var dietaryKeywords = map[string][]string{
	"vegetarian":  {"vegetarian", "veggie", "plant-based"},
	"vegan":       {"vegan", "100% plant-based", "dairy-free"},
	"gluten_free": {"gluten-free", "celiac", "no gluten"},
	"halal":       {"halal", "zabiha", "halāl"},
	"steak_house": {"steak house", "steakhouse", "grill"},
	"pescatarian": {"pescatarian", "seafood only", "fish only"},
}

// DietaryTagCounts scans review texts for dietary keyword hits. A tag is
// counted at most once per text, no matter how many of its variants (or
// occurrences) that text contains. The result is independent of input
// order.
func DietaryTagCounts(texts []string) map[string]int {
	hits := make(map[string]int)
	for _, text := range texts {
		lower := strings.ToLower(text)
		for tag, variants := range dietaryKeywords {
			for _, kw := range variants {
				if strings.Contains(lower, kw) {
					hits[tag]++
					break
				}
			}
		}
	}
	return hits
}
