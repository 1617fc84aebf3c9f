package search

import "strings"

// expansion pairs a trigger term with related vocabulary appended to the
// base query when the trigger occurs in it. Kept as an ordered slice so
// variant order, and therefore result merging, stays deterministic.
type expansion struct {
	trigger string
	related string
}

var expansions = []expansion{
	{"fridge", "refrigerator freezer cooling appliance"},
	{"refrigerator", "fridge freezer cooling appliance"},
	{"washing machine", "washer laundry machine"},
	{"washer", "washing machine laundry"},
	{"tv", "television screen display"},
	{"television", "tv screen display"},
	{"phone", "mobile smartphone device"},
	{"laptop", "computer notebook"},
	{"issue", "problem defect broken damaged faulty"},
	{"problem", "issue defect broken damaged faulty"},
	{"broken", "damaged defective faulty not working"},
	{"damaged", "broken defective faulty dented"},
	{"delivery", "shipping delivered received"},
	{"refund", "return money back replacement"},
}

// ExpandQuery derives additional query variants from a base query. Each
// trigger found in the query, case-insensitive, contributes one variant:
// the base query followed by the trigger's related terms. The base query
// itself is not included.
func ExpandQuery(query string) []string {
	lower := strings.ToLower(query)

	var variants []string
	for _, e := range expansions {
		if strings.Contains(lower, e.trigger) {
			variants = append(variants, query+" "+e.related)
		}
	}
	return variants
}
