package story

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Slide is one page of the story.
type Slide struct {
	Index       int
	Text        string
	Highlighted []string
	Marks       []Mark
}

// Mark is a highlighted byte range [Start, End) of a slide text and the
// session word it matched.
type Mark struct {
	Start int
	End   int
	Word  string
}

// Segment is a run of slide text, highlighted or not.
type Segment struct {
	Text string
	Word string // empty for plain text
}

// Segments splits the slide text at its marks, in order.
func (s Slide) Segments() []Segment {
	var out []Segment
	pos := 0
	for _, m := range s.Marks {
		if m.Start > pos {
			out = append(out, Segment{Text: s.Text[pos:m.Start]})
		}
		out = append(out, Segment{Text: s.Text[m.Start:m.End], Word: m.Word})
		pos = m.End
	}
	if pos < len(s.Text) {
		out = append(out, Segment{Text: s.Text[pos:]})
	}
	return out
}

// needle is a word being searched for, with its length in runes.
type needle struct {
	word  string
	runes int
}

// Highlight finds every whole-token, case-insensitive occurrence of the
// given words in text. The scan runs left to right and tries longer words
// first at each position, so ranges never overlap.
func Highlight(text string, words []string) []Mark {
	needles := make([]needle, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			needles = append(needles, needle{word: w, runes: utf8.RuneCountInString(w)})
		}
	}
	if len(needles) == 0 {
		return nil
	}
	slices.SortStableFunc(needles, func(a, b needle) int { return b.runes - a.runes })

	var marks []Mark
	prev := ' '
	for i := 0; i < len(text); {
		if !isWordRune(prev) {
			if m, ok := matchAt(text, i, needles); ok {
				marks = append(marks, m)
				prev, _ = utf8.DecodeLastRuneInString(text[:m.End])
				i = m.End
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		prev = r
		i += size
	}
	return marks
}

func matchAt(text string, start int, needles []needle) (Mark, bool) {
	for _, n := range needles {
		end, ok := advanceRunes(text, start, n.runes)
		if !ok || !strings.EqualFold(text[start:end], n.word) {
			continue
		}
		if end < len(text) {
			if r, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(r) {
				continue
			}
		}
		return Mark{Start: start, End: end, Word: n.word}, true
	}
	return Mark{}, false
}

// advanceRunes returns the byte offset n runes after start.
func advanceRunes(text string, start, n int) (int, bool) {
	i := start
	for ; n > 0; n-- {
		if i >= len(text) {
			return 0, false
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return i, true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
