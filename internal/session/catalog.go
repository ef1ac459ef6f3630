package session

import "github.com/google/uuid"

type catalogEntry struct {
	name  string
	kind  Kind
	words []string
}

var catalog = []catalogEntry{
	{"Animals & Nature", KindNew, []string{
		"ancient", "winding", "enchanting", "majestic", "wonder", "shimmering",
		"rustling", "gentle", "exploring", "trusty", "rumored", "dappled",
	}},
	{"Science Terms", KindReview, []string{
		"molecule", "experiment", "gravity", "velocity", "hypothesis", "electron",
		"reaction", "laboratory",
	}},
	{"Everyday Words", KindNew, []string{
		"beautiful", "exciting", "comfortable", "delicious", "adventure", "mysterious",
		"wonderful", "peaceful", "curious", "fantastic", "brilliant", "amazing",
		"incredible", "spectacular", "magnificent",
	}},
	{"Advanced Vocabulary", KindReview, []string{
		"ephemeral", "serendipity", "ubiquitous", "enigmatic", "profound", "luminous",
		"ethereal", "melancholy", "resilient", "eloquent",
	}},
	{"School Words", KindNew, []string{
		"classroom", "homework", "teacher", "student", "library", "notebook",
	}},
}

// DefaultCatalog returns the built-in sample lists and their lookup table.
// Each call yields fresh ids.
func DefaultCatalog() ([]SessionWordList, Lookup) {
	lists := make([]SessionWordList, 0, len(catalog))
	lookup := make(Lookup, len(catalog))
	for _, e := range catalog {
		lists = append(lists, SessionWordList{
			ID:        uuid.NewString(),
			Name:      e.name,
			WordCount: len(e.words),
			Kind:      e.kind,
		})
		lookup[e.name] = append([]string(nil), e.words...)
	}
	return lists, lookup
}
