package tutor

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/profile"
	"github.com/vocabflow/vocabflow/internal/quiz"
	"github.com/vocabflow/vocabflow/internal/session"
	"github.com/vocabflow/vocabflow/internal/store"
	"github.com/vocabflow/vocabflow/internal/story"
)

// Run is one session in progress. It is not safe for concurrent use,
// except that LoadStory may be cancelled from another goroutine through
// its context.
type Run struct {
	Session *session.Session

	svc     *Service
	profile *profile.Profile
	loader  *story.Loader
	reader  *story.Reader
	quiz    *quiz.Engine
}

func newRun(svc *Service, p *profile.Profile, list session.SessionWordList, ws []string, loader *story.Loader) *Run {
	return &Run{
		Session: session.Start(list, ws, svc.now()),
		svc:     svc,
		profile: p,
		loader:  loader,
	}
}

// Profile returns the profile the run belongs to.
func (r *Run) Profile() *profile.Profile { return r.profile }

// Reader returns the story reader once the story has loaded.
func (r *Run) Reader() *story.Reader { return r.reader }

// Quiz returns the quiz engine once the quiz has started.
func (r *Run) Quiz() *quiz.Engine { return r.quiz }

// LoadStory generates the story. When generation fails or ctx is
// cancelled the session returns to list choice and is recorded as
// abandoned.
func (r *Run) LoadStory(ctx context.Context) (*story.Reader, error) {
	if r.Session.Phase != session.PhaseLoading {
		return nil, domain.InvalidState("load story", r.Session.Phase.String())
	}
	reader, err := r.loader.Load(ctx, r.Session.Words)
	if err != nil {
		if errors.Is(err, story.ErrGenerationPending) {
			return nil, err
		}
		_ = r.Session.Advance(session.PhaseChoosing, r.svc.now())
		// ctx may already be done; the event still belongs on record.
		r.record(context.WithoutCancel(ctx), store.ActionAbandon, 0, 0)
		return nil, err
	}
	if err := r.Session.Advance(session.PhaseStory, r.svc.now()); err != nil {
		return nil, err
	}
	r.reader = reader
	return reader, nil
}

// StartQuiz begins the quiz over the session words. The story must have
// been read to the end.
func (r *Run) StartQuiz(ctx context.Context) (*quiz.Engine, error) {
	if r.reader == nil || !r.reader.Completed() {
		return nil, domain.InvalidState("start quiz", "story not finished")
	}
	list, err := r.profile.Words.List(r.Session.List.ID)
	if err != nil {
		return nil, fmt.Errorf("start quiz: %w", err)
	}
	e, err := quiz.NewEngine(r.Session.Words, quiz.FromWords(list.Words, r.svc.opts.Definitions), quiz.Config{
		DistractorPool: r.svc.opts.DistractorPool,
		Rand:           r.svc.opts.Rand,
		Now:            r.svc.now,
	})
	if err != nil {
		return nil, fmt.Errorf("start quiz: %w", err)
	}
	if err := r.Session.Advance(session.PhaseQuiz, r.svc.now()); err != nil {
		return nil, err
	}
	r.quiz = e
	r.record(ctx, store.ActionStory, 0, 0)
	return e, nil
}

// EndAfterStory finishes the session without a quiz.
func (r *Run) EndAfterStory(ctx context.Context) (*session.Summary, error) {
	if r.reader == nil || !r.reader.Completed() {
		return nil, domain.InvalidState("end after story", "story not finished")
	}
	if err := r.Session.Advance(session.PhaseSummary, r.svc.now()); err != nil {
		return nil, err
	}
	r.record(ctx, store.ActionStory, 0, 0)
	if err := r.svc.Save(ctx, r.profile); err != nil {
		return nil, err
	}
	return session.BuildSummary(r.Session, 0, 0, nil), nil
}

// Finish applies the quiz result to the profile's progress and saves the
// profile. The quiz must have reached its summary.
func (r *Run) Finish(ctx context.Context) (*session.Summary, error) {
	if r.quiz == nil {
		return nil, domain.InvalidState("finish", r.Session.Phase.String())
	}
	res, err := r.quiz.Result()
	if err != nil {
		return nil, err
	}
	if _, err := r.profile.Progress.ApplySessionResult(r.Session.List.ID, res); err != nil {
		return nil, err
	}
	if err := r.Session.Advance(session.PhaseSummary, r.svc.now()); err != nil {
		return nil, err
	}
	r.record(ctx, store.ActionQuiz, res.Score, res.Total)
	if err := r.svc.Save(ctx, r.profile); err != nil {
		return nil, err
	}
	return session.BuildSummary(r.Session, res.Score, res.Total, res.Mastered), nil
}

// Abandon records that the learner left before the end. The profile is
// saved so the started session counts in reports.
func (r *Run) Abandon(ctx context.Context) error {
	r.record(ctx, store.ActionAbandon, 0, 0)
	return r.svc.Save(ctx, r.profile)
}

func (r *Run) record(ctx context.Context, action string, score, total int) {
	r.svc.appendEvent(ctx, store.SessionEventData{
		ProfileID:    r.profile.Child.ID,
		SessionID:    r.Session.ID,
		ListID:       r.Session.List.ID,
		ListName:     r.Session.List.Name,
		Action:       action,
		Words:        len(r.Session.Words),
		Score:        score,
		Total:        total,
		DurationSecs: int64(r.Session.Elapsed(r.svc.now()).Seconds()),
	})
	r.svc.log.WithFields(logrus.Fields{
		"session_id": r.Session.ID,
		"action":     action,
	}).Debug("session event")
}
