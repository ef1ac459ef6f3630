package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vocabflow/vocabflow/internal/config"
	"github.com/vocabflow/vocabflow/internal/llm"
	"github.com/vocabflow/vocabflow/internal/profile"
	"github.com/vocabflow/vocabflow/internal/store"
	"github.com/vocabflow/vocabflow/internal/story"
	"github.com/vocabflow/vocabflow/internal/tutor"
)

// env is everything a command needs once settings are loaded.
type env struct {
	cfg    *config.Config
	log    *logrus.Logger
	store  *store.Store
	source story.ContentSource
	svc    *tutor.Service

	closers []io.Closer
}

// bootstrap loads settings, opens the store and restores every profile.
// The caller must Close the result.
func bootstrap(cmd *cobra.Command) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, path)
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, log: logger, closers: []io.Closer{logCloser}}

	dbPath := cfg.DB
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
	} else {
		err = store.EnsureDir(dbPath)
	}
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.closers = append(e.closers, st)

	source, err := e.contentSource(ctx)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.source = source

	registry := profile.NewRegistry(
		profile.WithLogger(logger),
		profile.WithMeaningStep(cfg.Progress.MeaningStep),
		profile.WithSessionSize(cfg.Session.Size),
	)
	e.svc = tutor.New(tutor.Options{
		Profiles:       registry,
		Repo:           st.ProfileRepo(),
		Events:         st.EventRepo(),
		Source:         source,
		Story:          cfg.Story.Config,
		DistractorPool: cfg.Quiz.DistractorPool,
		Logger:         logger,
	})

	n, err := e.svc.LoadProfiles(ctx)
	if err != nil {
		e.Close()
		return nil, err
	}
	logger.WithFields(logrus.Fields{"db": dbPath, "profiles": n, "source": cfg.Story.Source}).Debug("ready")
	return e, nil
}

func (e *env) contentSource(ctx context.Context) (story.ContentSource, error) {
	if e.cfg.Story.Source != config.SourceLLM {
		return &story.CannedSource{Delay: e.cfg.Story.CannedDelay}, nil
	}
	provider, err := llm.NewProvider(ctx, e.cfg.LLM, e.store.EventRepo(), e.log)
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}
	return story.NewLLMSource(provider, story.DefaultLLMSourceConfig()), nil
}

// profile resolves the --profile flag, or the only profile when it is
// unset.
func (e *env) profile() (*profile.Profile, error) {
	return e.svc.Resolve(e.cfg.Profile)
}

// Close releases the store and the log file.
func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}
	return errors.Join(errs...)
}
