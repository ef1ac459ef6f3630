package quiz

import (
	"strings"

	"github.com/vocabflow/vocabflow/internal/words"
)

// FallbackDefinition is shown as the correct answer for a word with no
// known definition.
const FallbackDefinition = "A wonderful word to learn"

// Definitions maps words to their meanings. Keys are matched
// case-insensitively.
type Definitions map[string]string

// NewDefinitions builds a table from word → definition pairs. Blank
// definitions are skipped.
func NewDefinitions(m map[string]string) Definitions {
	d := make(Definitions, len(m))
	for w, def := range m {
		d.Set(w, def)
	}
	return d
}

// FromWords builds a table from the definitions stored on words, falling
// back to base for words that have none.
func FromWords(ws []words.Word, base Definitions) Definitions {
	d := make(Definitions, len(base)+len(ws))
	for k, v := range base {
		d[k] = v
	}
	for _, w := range ws {
		d.Set(w.Text, w.Definition)
	}
	return d
}

// Set records def for word. A blank definition is ignored.
func (d Definitions) Set(word, def string) {
	def = strings.TrimSpace(def)
	if def == "" {
		return
	}
	d[key(word)] = def
}

// Lookup returns the definition of word or FallbackDefinition.
func (d Definitions) Lookup(word string) string {
	if def, ok := d[key(word)]; ok {
		return def
	}
	return FallbackDefinition
}

func key(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// DefaultDefinitions returns the built-in table for the sample story words.
func DefaultDefinitions() Definitions {
	return NewDefinitions(map[string]string{
		"ancient":    "Very old; from a long time ago",
		"winding":    "Having many bends and turns",
		"enchanting": "Delightfully charming or attractive",
		"majestic":   "Having impressive beauty or dignity",
		"wonder":     "A feeling of amazement and admiration",
		"shimmering": "Shining with a soft, wavering light",
		"rustling":   "Making soft sounds like leaves moving",
		"gentle":     "Mild, soft, or tender",
		"exploring":  "Traveling through to learn about",
		"trusty":     "Reliable and faithful",
		"rumored":    "Said to be true by people but not confirmed",
		"dappled":    "Marked with spots or patches of light",
	})
}

// DefaultDistractorPool returns the wrong answers drawn from when no pool
// is configured.
func DefaultDistractorPool() []string {
	return []string{
		"To shine brightly, especially with reflected light",
		"To make a loud, ringing sound",
		"To move very quickly and silently",
		"To feel a deep sadness or sorrow",
		"Calm, peaceful, and untroubled",
		"Present, appearing, or found everywhere",
		"Able to withstand or recover quickly from difficult conditions",
	}
}
