// Package tutor runs learning sessions for a profile: it ties the session
// planner, story loader, quiz engine and progress aggregator together and
// persists what happened.
package tutor

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/profile"
	"github.com/vocabflow/vocabflow/internal/quiz"
	"github.com/vocabflow/vocabflow/internal/store"
	"github.com/vocabflow/vocabflow/internal/story"
)

// Options wires a Service. Repo and Events may be nil, in which case
// nothing is persisted.
type Options struct {
	Profiles *profile.Registry
	Repo     store.ProfileRepo
	Events   store.EventRepo

	Source         story.ContentSource
	Story          story.Config
	Definitions    quiz.Definitions
	DistractorPool []string

	Rand   *rand.Rand
	Logger logrus.FieldLogger
	Now    func() time.Time
}

// Service is the entry point used by the terminal UI and the CLI.
type Service struct {
	opts Options
	log  logrus.FieldLogger
	now  func() time.Time
}

// New creates a Service.
func New(opts Options) *Service {
	if opts.Profiles == nil {
		opts.Profiles = profile.NewRegistry()
	}
	if opts.Source == nil {
		opts.Source = story.NewCannedSource()
	}
	if opts.Definitions == nil {
		opts.Definitions = quiz.DefaultDefinitions()
	}
	s := &Service{opts: opts, log: opts.Logger, now: opts.Now}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Profiles returns the registry the service works on.
func (s *Service) Profiles() *profile.Registry { return s.opts.Profiles }

// Events returns the event repository, which may be nil.
func (s *Service) Events() store.EventRepo { return s.opts.Events }

// LoadProfiles restores every persisted profile. Snapshots that fail to
// restore are logged and skipped.
func (s *Service) LoadProfiles(ctx context.Context) (int, error) {
	if s.opts.Repo == nil {
		return 0, nil
	}
	snaps, err := s.opts.Repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("load profiles: %w", err)
	}
	n := 0
	for _, snap := range snaps {
		if _, err := s.opts.Profiles.Restore(snap); err != nil {
			s.log.WithError(err).WithField("profile_id", snap.ID).Warn("skipping unreadable profile")
			continue
		}
		n++
	}
	return n, nil
}

// CreateProfile adds a profile, seeds it with the sample lists and saves
// it.
func (s *Service) CreateProfile(ctx context.Context, in profile.ChildInput, photos profile.PhotoProvider) (*profile.Profile, error) {
	p, err := s.opts.Profiles.Create(ctx, in, photos)
	if err != nil {
		return nil, err
	}
	if err := p.SeedSamples(s.opts.Definitions.Lookup); err != nil {
		_ = s.opts.Profiles.Remove(p.Child.ID)
		return nil, fmt.Errorf("create profile: %w", err)
	}
	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProfile removes a profile and its snapshot.
func (s *Service) DeleteProfile(ctx context.Context, id string) error {
	if err := s.opts.Profiles.Remove(id); err != nil {
		return err
	}
	if s.opts.Repo == nil {
		return nil
	}
	return s.opts.Repo.Delete(ctx, id)
}

// Resolve finds a profile by id or by name, ignoring case. An empty ref
// resolves only when exactly one profile exists.
func (s *Service) Resolve(ref string) (*profile.Profile, error) {
	ref = strings.TrimSpace(ref)
	children := s.opts.Profiles.List()
	if ref == "" {
		if len(children) != 1 {
			return nil, domain.NewValidationError("profile", fmt.Sprintf("%d profiles exist, choose one", len(children)))
		}
		return s.opts.Profiles.Get(children[0].ID)
	}
	if p, err := s.opts.Profiles.Get(ref); err == nil {
		return p, nil
	}
	for _, c := range children {
		if strings.EqualFold(c.Name, ref) {
			return s.opts.Profiles.Get(c.ID)
		}
	}
	return nil, domain.NotFound("profile", ref)
}

// Save persists the profile's snapshot.
func (s *Service) Save(ctx context.Context, p *profile.Profile) error {
	if s.opts.Repo == nil {
		return nil
	}
	snap, err := s.opts.Profiles.Snapshot(p.Child.ID)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if err := s.opts.Repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Begin starts a session on the given list of p.
func (s *Service) Begin(ctx context.Context, p *profile.Profile, listID string) (*Run, error) {
	list, ws, err := p.SessionWords(listID)
	if err != nil {
		return nil, fmt.Errorf("begin session: %w", err)
	}
	if err := p.Progress.StartSession(listID); err != nil {
		return nil, err
	}

	opts := []story.Option{
		story.WithGradeLevel(p.Child.GradeLevel),
		story.WithLogger(s.log.WithField("profile_id", p.Child.ID)),
	}
	if s.opts.Rand != nil {
		opts = append(opts, story.WithRand(s.opts.Rand))
	}
	gen := story.NewGenerator(s.opts.Source, s.opts.Story, opts...)

	r := newRun(s, p, list, ws, story.NewLoader(gen))
	s.log.WithFields(logrus.Fields{
		"profile_id": p.Child.ID,
		"session_id": r.Session.ID,
		"list_id":    listID,
		"words":      len(ws),
	}).Info("session started")
	r.record(ctx, store.ActionStart, 0, 0)
	return r, nil
}

func (s *Service) appendEvent(ctx context.Context, data store.SessionEventData) {
	if s.opts.Events == nil {
		return
	}
	if err := s.opts.Events.AppendSessionEvent(ctx, data); err != nil {
		s.log.WithError(err).WithField("action", data.Action).Warn("failed to record session event")
	}
}
