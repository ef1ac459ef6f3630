// Package wordpack provides curated word packs and spreadsheet import of
// custom packs.
package wordpack

import (
	"strings"

	"github.com/samber/lo"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/words"
)

// Pack is a titled set of words with definitions that can be imported as a
// new word list.
type Pack struct {
	Title       string
	Description string
	Words       []words.PackWord
}

var builtin = []Pack{
	{
		Title:       "Grade 2 Vocabulary",
		Description: "Essential words for 7-8 year olds.",
		Words: []words.PackWord{
			{Text: "Butterfly", Definition: "An insect with colorful wings"},
			{Text: "Rainbow", Definition: "An arc of colors in the sky"},
			{Text: "Dolphin", Definition: "A smart sea mammal"},
			{Text: "Mountain", Definition: "A very tall landform"},
			{Text: "Discover", Definition: "To find something new"},
			{Text: "Courage", Definition: "Being brave"},
			{Text: "Treasure", Definition: "Something valuable"},
			{Text: "Adventure", Definition: "An exciting journey"},
		},
	},
	{
		Title:       "SAT Prep Words",
		Description: "High-frequency words for college entrance exams.",
		Words: []words.PackWord{
			{Text: "Ubiquitous", Definition: "Present everywhere"},
			{Text: "Ephemeral", Definition: "Lasting a very short time"},
			{Text: "Pragmatic", Definition: "Dealing with things practically"},
			{Text: "Ambiguous", Definition: "Having multiple meanings"},
			{Text: "Eloquent", Definition: "Fluent and persuasive in speech"},
			{Text: "Meticulous", Definition: "Very careful and precise"},
			{Text: "Benevolent", Definition: "Well-meaning and kind"},
			{Text: "Resilient", Definition: "Able to recover quickly"},
		},
	},
	{
		Title:       "Science Terms",
		Description: "Common scientific vocabulary for kids.",
		Words: []words.PackWord{
			{Text: "Hypothesis", Definition: "An educated guess"},
			{Text: "Experiment", Definition: "A test to prove something"},
			{Text: "Molecule", Definition: "Tiny particles of matter"},
			{Text: "Gravity", Definition: "Force that pulls things down"},
			{Text: "Ecosystem", Definition: "Living things in an environment"},
			{Text: "Photosynthesis", Definition: "How plants make food"},
			{Text: "Evolution", Definition: "Change over time"},
			{Text: "Organism", Definition: "A living thing"},
		},
	},
}

// Builtin returns copies of the curated packs.
func Builtin() []Pack {
	return lo.Map(builtin, func(p Pack, _ int) Pack {
		p.Words = append([]words.PackWord(nil), p.Words...)
		return p
	})
}

// Find returns the built-in pack with the given title, compared
// case-insensitively.
func Find(title string) (Pack, error) {
	title = strings.TrimSpace(title)
	for _, p := range Builtin() {
		if strings.EqualFold(p.Title, title) {
			return p, nil
		}
	}
	return Pack{}, domain.NotFound("word pack", title)
}
