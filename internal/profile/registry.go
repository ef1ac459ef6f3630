package profile

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/progress"
	"github.com/vocabflow/vocabflow/internal/session"
	"github.com/vocabflow/vocabflow/internal/words"
)

// Registry holds the profiles of one household. It is safe for concurrent
// use; the profiles it hands out are not.
type Registry struct {
	mu       sync.Mutex
	profiles map[string]*Profile
	order    []string

	newID       func() string
	now         func() time.Time
	log         logrus.FieldLogger
	step        float64
	sessionSize int
}

// Option configures a Registry.
type Option func(*Registry)

// WithIDFunc overrides the identifier generator used for profiles and
// their words.
func WithIDFunc(fn func() string) Option {
	return func(r *Registry) { r.newID = fn }
}

// WithClock overrides the time source.
func WithClock(fn func() time.Time) Option {
	return func(r *Registry) { r.now = fn }
}

// WithLogger sets the logger handed to every profile component.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Registry) { r.log = l }
}

// WithMeaningStep sets the progress step of every profile's aggregator.
func WithMeaningStep(step float64) Option {
	return func(r *Registry) { r.step = step }
}

// WithSessionSize sets how many words a session picks from a list.
func WithSessionSize(n int) Option {
	return func(r *Registry) { r.sessionSize = n }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		profiles:    make(map[string]*Profile),
		newID:       uuid.NewString,
		now:         time.Now,
		log:         logrus.StandardLogger(),
		step:        progress.DefaultMeaningStep,
		sessionSize: session.DefaultSessionSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// newProfile wires fresh components around child.
func (r *Registry) newProfile(child Child) *Profile {
	log := r.log.WithField("profile_id", child.ID)
	ws := words.NewStore(words.WithIDFunc(r.newID), words.WithClock(r.now), words.WithLogger(log))
	return &Profile{
		Child:       child,
		Words:       ws,
		Progress:    progress.NewAggregator(ws, progress.WithStep(r.step), progress.WithClock(r.now), progress.WithLogger(log)),
		sessionSize: r.sessionSize,
	}
}

// Create validates in and adds a profile. photos may be nil.
func (r *Registry) Create(ctx context.Context, in ChildInput, photos PhotoProvider) (*Profile, error) {
	in, err := in.validate()
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	var photo []byte
	if photos != nil {
		b, ok, err := photos.ProvidePhoto(ctx)
		if err != nil {
			return nil, fmt.Errorf("create profile: photo: %w", err)
		}
		if ok {
			photo = b
		}
	}

	p := r.newProfile(Child{
		ID:         r.newID(),
		Name:       in.Name,
		GradeLevel: in.GradeLevel,
		Photo:      photo,
		CreatedAt:  r.now(),
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	r.add(p)
	r.log.WithFields(logrus.Fields{"profile_id": p.Child.ID, "grade": in.GradeLevel}).Info("profile created")
	return p, nil
}

func (r *Registry) add(p *Profile) {
	if _, exists := r.profiles[p.Child.ID]; !exists {
		r.order = append(r.order, p.Child.ID)
	}
	r.profiles[p.Child.ID] = p
}

// Get returns the profile with the given id.
func (r *Registry) Get(id string) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.NotFound("profile", id)
	}
	return p, nil
}

// List returns the children in creation order.
func (r *Registry) List() []Child {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo.Map(r.order, func(id string, _ int) Child { return r.profiles[id].Child })
}

// Remove deletes a profile.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[id]; !ok {
		return domain.NotFound("profile", id)
	}
	delete(r.profiles, id)
	r.order = slices.DeleteFunc(r.order, func(x string) bool { return x == id })
	return nil
}
