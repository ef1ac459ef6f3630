package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/quiz"
	"github.com/vocabflow/vocabflow/internal/words"
)

var created = time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

func testRegistry() *Registry {
	var mu sync.Mutex
	n := 0
	logger, _ := test.NewNullLogger()
	return NewRegistry(
		WithIDFunc(func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		WithClock(func() time.Time { return created }),
		WithLogger(logger),
	)
}

func TestParseGradeLevel(t *testing.T) {
	g, err := ParseGradeLevel(" 2nd grade ")
	require.NoError(t, err)
	assert.Equal(t, "2nd Grade", g)

	g, err = ParseGradeLevel("kindergarten")
	require.NoError(t, err)
	assert.Equal(t, "Kindergarten", g)

	_, err = ParseGradeLevel("9th Grade")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate(t *testing.T) {
	r := testRegistry()
	photo := PhotoFunc(func(context.Context) ([]byte, bool, error) { return []byte("png"), true, nil })

	p, err := r.Create(context.Background(), ChildInput{Name: "  Maya ", GradeLevel: "3rd grade"}, photo)
	require.NoError(t, err)
	assert.Equal(t, "Maya", p.Child.Name)
	assert.Equal(t, "3rd Grade", p.Child.GradeLevel)
	assert.Equal(t, []byte("png"), p.Child.Photo)
	assert.Equal(t, created, p.Child.CreatedAt)

	got, err := r.Get(p.Child.ID)
	require.NoError(t, err)
	assert.Same(t, p, got)
}

func TestCreate_Validation(t *testing.T) {
	r := testRegistry()

	_, err := r.Create(context.Background(), ChildInput{Name: " ", GradeLevel: "Grade 12"}, nil)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 2)
	assert.Empty(t, r.List())
}

func TestCreate_Photo(t *testing.T) {
	r := testRegistry()

	skipped := PhotoFunc(func(context.Context) ([]byte, bool, error) { return []byte("ignored"), false, nil })
	p, err := r.Create(context.Background(), ChildInput{Name: "Leo", GradeLevel: "1st Grade"}, skipped)
	require.NoError(t, err)
	assert.Nil(t, p.Child.Photo)

	failing := PhotoFunc(func(context.Context) ([]byte, bool, error) { return nil, false, errors.New("camera busy") })
	_, err = r.Create(context.Background(), ChildInput{Name: "Ava", GradeLevel: "1st Grade"}, failing)
	require.ErrorContains(t, err, "camera busy")
	assert.Len(t, r.List(), 1)
}

func TestProfilesAreIsolated(t *testing.T) {
	r := testRegistry()
	ctx := context.Background()
	a, err := r.Create(ctx, ChildInput{Name: "A", GradeLevel: "2nd Grade"}, nil)
	require.NoError(t, err)
	b, err := r.Create(ctx, ChildInput{Name: "B", GradeLevel: "2nd Grade"}, nil)
	require.NoError(t, err)

	l, err := a.Words.CreateList("Mine")
	require.NoError(t, err)
	_, err = a.Words.AddWord(l.ID, words.WordInput{Text: "gentle", AllowMeaning: true})
	require.NoError(t, err)

	assert.Len(t, a.Words.Lists(), 1)
	assert.Empty(t, b.Words.Lists())
	_, err = b.Words.List(l.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotSame(t, a.Progress, b.Progress)
}

func TestListAndRemove(t *testing.T) {
	r := testRegistry()
	ctx := context.Background()
	a, _ := r.Create(ctx, ChildInput{Name: "A", GradeLevel: "2nd Grade"}, nil)
	_, _ = r.Create(ctx, ChildInput{Name: "B", GradeLevel: "4th Grade"}, nil)

	names := []string{}
	for _, c := range r.List() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"A", "B"}, names)

	require.NoError(t, r.Remove(a.Child.ID))
	require.ErrorIs(t, r.Remove(a.Child.ID), domain.ErrNotFound)
	_, err := r.Get(a.Child.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, r.List(), 1)
}

func TestRegistry_ConcurrentCreate(t *testing.T) {
	r := testRegistry()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Create(context.Background(), ChildInput{Name: fmt.Sprintf("kid %d", i), GradeLevel: "5th Grade"}, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Len(t, r.List(), 20)
}

func seededProfile(t *testing.T, r *Registry) *Profile {
	t.Helper()
	p, err := r.Create(context.Background(), ChildInput{Name: "Maya", GradeLevel: "2nd Grade"}, nil)
	require.NoError(t, err)
	for _, name := range []string{"Animals", "Science"} {
		_, err := p.Words.ImportPack(name, []words.PackWord{
			{Text: name + "1", Definition: "first"},
			{Text: name + "2"},
		}, words.PackOptions{AllowMeaning: true})
		require.NoError(t, err)
	}
	return p
}

func TestPlannerDefer(t *testing.T) {
	r := testRegistry()
	p := seededProfile(t, r)
	lists := p.Words.Lists()

	require.NoError(t, p.Defer(lists[0].ID))
	got := p.Planner().Lists()
	require.Len(t, got, 2)
	assert.Equal(t, "Science", got[0].Name)
	assert.Equal(t, "Animals", got[1].Name)

	require.ErrorIs(t, p.Defer("missing"), domain.ErrNotFound)

	sl, ws, err := p.SessionWords(lists[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Science", sl.Name)
	assert.Equal(t, []string{"Science1", "Science2"}, ws)
}

func TestSnapshotRestore(t *testing.T) {
	r := testRegistry()
	p := seededProfile(t, r)
	l := p.Words.Lists()[0]
	require.NoError(t, p.Defer(l.ID))
	require.NoError(t, p.Progress.StartSession(l.ID))
	_, err := p.Progress.ApplySessionResult(l.ID, quiz.Result{Score: 1, Total: 2, Mastered: []string{"Animals1"}, CompletedAt: created})
	require.NoError(t, err)

	snap, err := r.Snapshot(p.Child.ID)
	require.NoError(t, err)
	assert.Len(t, snap.Lists, 2)
	assert.Len(t, snap.Sessions, 2)
	assert.Equal(t, []string{l.ID}, snap.Deferred)

	other := testRegistry()
	q, err := other.Restore(*snap)
	require.NoError(t, err)

	assert.Equal(t, p.Child, q.Child)
	assert.Equal(t, p.Words.Lists(), q.Words.Lists())
	assert.Equal(t, p.Progress.Records(), q.Progress.Records())
	assert.Equal(t, p.Deferred(), q.Deferred())

	w, err := q.Words.FindWord(l.ID, "animals1")
	require.NoError(t, err)
	assert.InDelta(t, 0.2, w.MeaningProgress, 1e-9)
}

func TestRestore_InvalidLeavesRegistryUnchanged(t *testing.T) {
	r := testRegistry()
	p := seededProfile(t, r)
	snap, err := r.Snapshot(p.Child.ID)
	require.NoError(t, err)
	snap.Lists[0].Words[0].Text = "two words"

	other := testRegistry()
	_, err = other.Restore(*snap)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, other.List())

	_, err = r.Snapshot("missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSeedSamples(t *testing.T) {
	r := testRegistry()
	p, err := r.Create(context.Background(), ChildInput{Name: "Leo", GradeLevel: "Kindergarten"}, nil)
	require.NoError(t, err)

	require.NoError(t, p.SeedSamples(quiz.DefaultDefinitions().Lookup))

	lists := p.Words.Lists()
	require.Len(t, lists, 5)
	assert.Equal(t, "Animals & Nature", lists[0].Name)
	assert.Len(t, lists[0].Words, 12)
	assert.Equal(t, "Very old; from a long time ago", lists[0].Words[0].Definition)

	w, err := p.Words.FindWord(lists[1].ID, "gravity")
	require.NoError(t, err)
	assert.Equal(t, quiz.FallbackDefinition, w.Definition)
	assert.Equal(t, words.StatusStruggling, w.Status())
}
