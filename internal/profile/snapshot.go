package profile

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/vocabflow/vocabflow/internal/progress"
	"github.com/vocabflow/vocabflow/internal/store"
	"github.com/vocabflow/vocabflow/internal/words"
)

// Snapshot exports the profile for persistence.
func (r *Registry) Snapshot(id string) (*store.ProfileSnapshot, error) {
	p, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return &store.ProfileSnapshot{
		Version:    store.SnapshotVersion,
		ID:         p.Child.ID,
		Name:       p.Child.Name,
		GradeLevel: p.Child.GradeLevel,
		Photo:      slices.Clone(p.Child.Photo),
		CreatedAt:  p.Child.CreatedAt,
		UpdatedAt:  r.now(),
		Lists:      lo.Map(p.Words.Lists(), func(l words.WordList, _ int) store.ListSnapshot { return listToSnapshot(l) }),
		Sessions:   lo.Map(p.Progress.Records(), func(rec progress.SessionRecord, _ int) store.SessionSnapshot { return recordToSnapshot(rec) }),
		Deferred:   p.Deferred(),
	}, nil
}

// Restore loads a persisted profile, replacing any profile with the same
// id. The registry is unchanged on error.
func (r *Registry) Restore(snap store.ProfileSnapshot) (*Profile, error) {
	in, err := ChildInput{Name: snap.Name, GradeLevel: snap.GradeLevel}.validate()
	if err != nil {
		return nil, fmt.Errorf("restore profile %s: %w", snap.ID, err)
	}

	p := r.newProfile(Child{
		ID:         snap.ID,
		Name:       in.Name,
		GradeLevel: in.GradeLevel,
		Photo:      slices.Clone(snap.Photo),
		CreatedAt:  snap.CreatedAt,
	})
	if err := p.Words.Restore(lo.Map(snap.Lists, func(l store.ListSnapshot, _ int) words.WordList { return listFromSnapshot(l) })); err != nil {
		return nil, fmt.Errorf("restore profile %s: %w", snap.ID, err)
	}
	p.Progress.RestoreRecords(lo.Map(snap.Sessions, func(s store.SessionSnapshot, _ int) progress.SessionRecord { return recordFromSnapshot(s) }))
	for _, id := range snap.Deferred {
		// Deferred entries for lists deleted since are dropped.
		_ = p.Defer(id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.add(p)
	return p, nil
}

func listToSnapshot(l words.WordList) store.ListSnapshot {
	return store.ListSnapshot{
		ID:        l.ID,
		Name:      l.Name,
		Source:    l.Source,
		CreatedAt: l.CreatedAt,
		Words: lo.Map(l.Words, func(w words.Word, _ int) store.WordSnapshot {
			return store.WordSnapshot{
				ID:               w.ID,
				Text:             w.Text,
				Definition:       w.Definition,
				SpellingProgress: w.SpellingProgress,
				MeaningProgress:  w.MeaningProgress,
				AllowSpelling:    w.AllowSpelling,
				AllowMeaning:     w.AllowMeaning,
				IsPriority:       w.IsPriority,
			}
		}),
	}
}

func listFromSnapshot(l store.ListSnapshot) words.WordList {
	return words.WordList{
		ID:        l.ID,
		Name:      l.Name,
		Source:    l.Source,
		CreatedAt: l.CreatedAt,
		Words: lo.Map(l.Words, func(w store.WordSnapshot, _ int) words.Word {
			return words.Word{
				ID:               w.ID,
				Text:             w.Text,
				Definition:       w.Definition,
				SpellingProgress: w.SpellingProgress,
				MeaningProgress:  w.MeaningProgress,
				AllowSpelling:    w.AllowSpelling,
				AllowMeaning:     w.AllowMeaning,
				IsPriority:       w.IsPriority,
			}
		}),
	}
}

func recordToSnapshot(rec progress.SessionRecord) store.SessionSnapshot {
	return store.SessionSnapshot{
		ListID:        rec.ListID,
		Kind:          string(rec.Kind),
		At:            rec.At,
		Score:         rec.Score,
		Total:         rec.Total,
		Mastered:      rec.Mastered,
		NewlyMastered: rec.NewlyMastered,
	}
}

func recordFromSnapshot(s store.SessionSnapshot) progress.SessionRecord {
	return progress.SessionRecord{
		ListID:        s.ListID,
		Kind:          progress.RecordKind(s.Kind),
		At:            s.At,
		Score:         s.Score,
		Total:         s.Total,
		Mastered:      s.Mastered,
		NewlyMastered: s.NewlyMastered,
	}
}
