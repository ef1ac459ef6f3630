package words

import "github.com/samber/lo"

// Stats aggregates the status distribution and overall progress of a list.
type Stats struct {
	Total       int
	Struggling  int
	Progressing int
	Mastered    int

	// Progress is the mean composite progress, 0 for an empty list.
	Progress float64
}

// ComputeStats derives list aggregates from its words.
func ComputeStats(ws []Word) Stats {
	st := Stats{
		Total:       len(ws),
		Struggling:  countStatus(ws, StatusStruggling),
		Progressing: countStatus(ws, StatusProgressing),
		Mastered:    countStatus(ws, StatusMastered),
	}
	if len(ws) > 0 {
		st.Progress = lo.SumBy(ws, Word.Composite) / float64(len(ws))
	}
	return st
}

func countStatus(ws []Word, status Status) int {
	return lo.CountBy(ws, func(w Word) bool { return w.Status() == status })
}
