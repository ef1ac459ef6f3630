package session

import "time"

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID string
	ListName  string
	Words     int
	Score     int
	Total     int
	Accuracy  float64
	Mastered  []string
	Duration  time.Duration
	QuizTaken bool
}

// BuildSummary creates a Summary for a finished session. A session that
// ended after the story has no quiz figures.
func BuildSummary(s *Session, score, total int, mastered []string) *Summary {
	var accuracy float64
	if total > 0 {
		accuracy = float64(score) / float64(total)
	}
	return &Summary{
		SessionID: s.ID,
		ListName:  s.List.Name,
		Words:     len(s.Words),
		Score:     score,
		Total:     total,
		Accuracy:  accuracy,
		Mastered:  mastered,
		Duration:  s.Elapsed(s.EndedAt),
		QuizTaken: total > 0,
	}
}
