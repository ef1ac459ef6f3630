package tutor

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/profile"
	"github.com/vocabflow/vocabflow/internal/session"
	"github.com/vocabflow/vocabflow/internal/store"
	"github.com/vocabflow/vocabflow/internal/story"
	"github.com/vocabflow/vocabflow/internal/wordpack"
	"github.com/vocabflow/vocabflow/internal/words"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "vocabflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func newService(st *store.Store, src story.ContentSource) *Service {
	logger, _ := test.NewNullLogger()
	return New(Options{
		Profiles: profile.NewRegistry(profile.WithLogger(logger)),
		Repo:     st.ProfileRepo(),
		Events:   st.EventRepo(),
		Source:   src,
		Rand:     rand.New(rand.NewPCG(3, 4)),
		Logger:   logger,
	})
}

func newChild(t *testing.T, svc *Service) *profile.Profile {
	t.Helper()
	p, err := svc.CreateProfile(context.Background(), profile.ChildInput{Name: "Lily", GradeLevel: "2nd Grade"}, nil)
	require.NoError(t, err)
	return p
}

func TestCreateProfile_SeedsAndSaves(t *testing.T) {
	st := openStore(t)
	svc := newService(st, &story.CannedSource{})
	p := newChild(t, svc)

	assert.Len(t, p.Words.Lists(), 5)

	snap, err := st.ProfileRepo().Get(context.Background(), p.Child.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lily", snap.Name)
	assert.Len(t, snap.Lists, 5)
}

func TestCreateProfile_Invalid(t *testing.T) {
	svc := newService(openStore(t), &story.CannedSource{})
	_, err := svc.CreateProfile(context.Background(), profile.ChildInput{Name: " ", GradeLevel: "2nd Grade"}, nil)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, svc.Profiles().List())
}

func TestLoadProfiles(t *testing.T) {
	st := openStore(t)
	p := newChild(t, newService(st, &story.CannedSource{}))

	fresh := newService(st, &story.CannedSource{})
	n, err := fresh.LoadProfiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	q, err := fresh.Resolve(p.Child.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Words.Lists(), q.Words.Lists())
}

func TestResolve(t *testing.T) {
	svc := newService(openStore(t), &story.CannedSource{})

	_, err := svc.Resolve("")
	require.ErrorIs(t, err, domain.ErrValidation)

	p := newChild(t, svc)

	got, err := svc.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, p.Child.ID, got.Child.ID)

	got, err = svc.Resolve("lily")
	require.NoError(t, err)
	assert.Equal(t, p.Child.ID, got.Child.ID)

	_, err = svc.Resolve("Sam")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProfile(t *testing.T) {
	st := openStore(t)
	svc := newService(st, &story.CannedSource{})
	p := newChild(t, svc)

	require.NoError(t, svc.DeleteProfile(context.Background(), p.Child.ID))
	assert.Empty(t, svc.Profiles().List())
	_, err := st.ProfileRepo().Get(context.Background(), p.Child.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func readToEnd(t *testing.T, r *story.Reader) {
	t.Helper()
	for !r.Completed() {
		require.NoError(t, r.Next())
	}
}

func TestRun_FullSession(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	svc := newService(st, &story.CannedSource{})
	p := newChild(t, svc)
	list := p.Words.Lists()[0]

	run, err := svc.Begin(ctx, p, list.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ancient", "winding", "enchanting", "majestic", "wonder"}, run.Session.Words)

	_, err = run.StartQuiz(ctx)
	require.ErrorIs(t, err, domain.ErrInvalidState)

	reader, err := run.LoadStory(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseStory, run.Session.Phase)
	readToEnd(t, reader)

	e, err := run.StartQuiz(ctx)
	require.NoError(t, err)
	for range e.Total() {
		q, err := e.Question()
		require.NoError(t, err)
		opts, err := e.Options()
		require.NoError(t, err)
		ok, err := e.SubmitAnswer(slices.Index(opts, q.Correct))
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, e.Acknowledge())
	}

	sum, err := run.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, sum.Score)
	assert.Equal(t, 5, sum.Total)
	assert.True(t, sum.QuizTaken)
	assert.Equal(t, session.PhaseSummary, run.Session.Phase)

	w, err := p.Words.FindWord(list.ID, "ancient")
	require.NoError(t, err)
	assert.InDelta(t, 0.2, w.MeaningProgress, 1e-9)

	events, err := st.EventRepo().SessionEvents(ctx, p.Child.ID, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, store.ActionQuiz, events[0].Action)
	assert.Equal(t, 5, events[0].Score)
	assert.Equal(t, store.ActionStory, events[1].Action)
	assert.Equal(t, store.ActionStart, events[2].Action)

	snap, err := st.ProfileRepo().Get(ctx, p.Child.ID)
	require.NoError(t, err)
	assert.Len(t, snap.Sessions, 2)
}

func TestRun_ImportedPackKeepsSeededListWords(t *testing.T) {
	ctx := context.Background()
	svc := newService(openStore(t), &story.CannedSource{})
	p := newChild(t, svc)
	seeded := p.Words.Lists()[1]
	require.Equal(t, "Science Terms", seeded.Name)

	pack, err := wordpack.Find("Science Terms")
	require.NoError(t, err)
	_, err = p.Words.ImportPack(pack.Title, pack.Words, words.PackOptions{AllowMeaning: true})
	require.ErrorIs(t, err, domain.ErrValidation)
	imported, err := p.Words.ImportPack(p.Words.UniqueName(pack.Title), pack.Words, words.PackOptions{AllowMeaning: true})
	require.NoError(t, err)
	assert.Equal(t, "Science Terms (2)", imported.Name)

	run, err := svc.Begin(ctx, p, seeded.ID)
	require.NoError(t, err)
	for _, w := range run.Session.Words {
		_, err := p.Words.FindWord(seeded.ID, w)
		require.NoError(t, err, w)
	}

	reader, err := run.LoadStory(ctx)
	require.NoError(t, err)
	readToEnd(t, reader)
	e, err := run.StartQuiz(ctx)
	require.NoError(t, err)
	for range e.Total() {
		q, err := e.Question()
		require.NoError(t, err)
		opts, err := e.Options()
		require.NoError(t, err)
		_, err = e.SubmitAnswer(slices.Index(opts, q.Correct))
		require.NoError(t, err)
		require.NoError(t, e.Acknowledge())
	}

	sum, err := run.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, sum.Total, sum.Score)
	assert.Equal(t, "Science Terms", sum.ListName)
}

func TestRun_EndAfterStory(t *testing.T) {
	ctx := context.Background()
	svc := newService(openStore(t), &story.CannedSource{})
	p := newChild(t, svc)

	run, err := svc.Begin(ctx, p, p.Words.Lists()[1].ID)
	require.NoError(t, err)
	reader, err := run.LoadStory(ctx)
	require.NoError(t, err)

	_, err = run.EndAfterStory(ctx)
	require.ErrorIs(t, err, domain.ErrInvalidState)

	readToEnd(t, reader)
	sum, err := run.EndAfterStory(ctx)
	require.NoError(t, err)
	assert.False(t, sum.QuizTaken)
	assert.Equal(t, "Science Terms", sum.ListName)
}

func TestRun_CancelledLoadAbandons(t *testing.T) {
	st := openStore(t)
	svc := newService(st, &story.CannedSource{Delay: time.Minute})
	p := newChild(t, svc)

	run, err := svc.Begin(context.Background(), p, p.Words.Lists()[0].ID)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reader, err := run.LoadStory(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, reader)
	assert.Nil(t, run.Reader())
	assert.Equal(t, session.PhaseChoosing, run.Session.Phase)

	events, err := st.EventRepo().SessionEvents(context.Background(), p.Child.ID, store.QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, store.ActionAbandon, events[0].Action)
}

func TestBegin_UnknownList(t *testing.T) {
	svc := newService(openStore(t), &story.CannedSource{})
	p := newChild(t, svc)

	_, err := svc.Begin(context.Background(), p, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
