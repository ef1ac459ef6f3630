// Package session is the screen a learning session runs on: story
// loading, reading and the quiz.
package session

import (
	"context"
	"errors"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/vocabflow/vocabflow/internal/quiz"
	"github.com/vocabflow/vocabflow/internal/router"
	"github.com/vocabflow/vocabflow/internal/screen"
	"github.com/vocabflow/vocabflow/internal/screens/summary"
	"github.com/vocabflow/vocabflow/internal/tutor"
	"github.com/vocabflow/vocabflow/internal/ui/components"
	"github.com/vocabflow/vocabflow/internal/ui/layout"
)

type mode int

const (
	modeLoading mode = iota
	modeStory
	modePaused
	modeStoryDone
	modeQuiz
	modeFeedback
	modeError
)

const spinnerInterval = 120 * time.Millisecond

var (
	pauseOptions = []string{"Keep Going", "Pause & Save"}
	doneOptions  = []string{"Take the Quiz", "Review Story", "Back to Lists"}
)

// SessionScreen implements screen.Screen for a session in progress.
type SessionScreen struct {
	svc *tutor.Service
	run *tutor.Run

	cancel context.CancelFunc
	mode   mode
	resume mode // mode to return to from the pause dialog

	choice    components.MultiChoice
	dialogSel int
	spinner   int
	errMsg    string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.HeaderProvider = (*SessionScreen)(nil)
var _ screen.EscapeCapturer = (*SessionScreen)(nil)

// New creates the screen for a run returned by tutor.Service.Begin.
func New(svc *tutor.Service, run *tutor.Run) *SessionScreen {
	return &SessionScreen{svc: svc, run: run}
}

func (s *SessionScreen) Init() tea.Cmd {
	return tea.Batch(s.loadStory(), spinnerTick())
}

func (s *SessionScreen) Title() string {
	return s.run.Session.List.Name
}

func (s *SessionScreen) Header() layout.HeaderInfo { return screen.LearnerHeader(s.run.Profile()) }

func (s *SessionScreen) CapturesEscape() bool { return true }

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case modeStory:
		return []layout.KeyHint{
			{Key: "←→", Description: "Turn page"},
			{Key: "P", Description: "Pause"},
		}
	case modePaused, modeStoryDone:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Select"},
		}
	case modeQuiz:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Pause"},
		}
	case modeFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return []layout.KeyHint{{Key: "any key", Description: "Back"}}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case storyLoadedMsg:
		return s.handleStoryLoaded(msg)

	case spinnerTickMsg:
		if s.mode != modeLoading {
			return s, nil
		}
		s.spinner++
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// loadStory generates the story in the background. Esc on the loading view
// cancels it.
func (s *SessionScreen) loadStory() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	run := s.run
	return func() tea.Msg {
		reader, err := run.LoadStory(ctx)
		return storyLoadedMsg{Reader: reader, Err: err}
	}
}

func (s *SessionScreen) handleStoryLoaded(msg storyLoadedMsg) (screen.Screen, tea.Cmd) {
	if s.mode != modeLoading {
		return s, nil
	}
	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return s, nil
		}
		s.fail(msg.Err)
		return s, nil
	}
	s.mode = modeStory
	return s, nil
}

func (s *SessionScreen) fail(err error) {
	s.mode = modeError
	s.errMsg = err.Error()
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.mode {
	case modeLoading:
		if key == "esc" {
			s.cancel()
			return s, router.PopCmd()
		}

	case modeError:
		return s, router.PopCmd()

	case modeStory:
		return s.handleStoryKey(key)

	case modePaused:
		return s.handleDialogKey(key, len(pauseOptions), s.choosePause)

	case modeStoryDone:
		return s.handleDialogKey(key, len(doneOptions), s.chooseDone)

	case modeQuiz:
		if key == "esc" {
			s.openPause(modeQuiz)
			return s, nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			return s, s.submit()
		}
		return s, cmd

	case modeFeedback:
		return s, s.acknowledge()
	}
	return s, nil
}

func (s *SessionScreen) handleStoryKey(key string) (screen.Screen, tea.Cmd) {
	reader := s.run.Reader()
	switch key {
	case "right", "l", "enter", "space":
		if err := reader.Next(); err != nil {
			s.fail(err)
			return s, nil
		}
		if reader.Completed() {
			s.mode = modeStoryDone
			s.dialogSel = 0
		}
	case "left", "h":
		if err := reader.Prev(); err != nil {
			s.fail(err)
		}
	case "p", "esc":
		reader.Pause()
		s.openPause(modeStory)
	}
	return s, nil
}

func (s *SessionScreen) openPause(from mode) {
	s.resume = from
	s.mode = modePaused
	s.dialogSel = 0
}

func (s *SessionScreen) handleDialogKey(key string, n int, choose func(int) tea.Cmd) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k":
		if s.dialogSel > 0 {
			s.dialogSel--
		}
	case "down", "j":
		if s.dialogSel < n-1 {
			s.dialogSel++
		}
	case "enter":
		return s, choose(s.dialogSel)
	case "esc":
		if s.mode == modePaused {
			return s, s.choosePause(0)
		}
	}
	return s, nil
}

func (s *SessionScreen) choosePause(i int) tea.Cmd {
	if i == 0 {
		if s.resume == modeStory {
			s.run.Reader().Resume()
		}
		s.mode = s.resume
		return nil
	}
	if err := s.run.Abandon(context.Background()); err != nil {
		s.fail(err)
		return nil
	}
	return router.PopCmd()
}

func (s *SessionScreen) chooseDone(i int) tea.Cmd {
	ctx := context.Background()
	switch i {
	case 0:
		if _, err := s.run.StartQuiz(ctx); err != nil {
			s.fail(err)
			return nil
		}
		s.mode = modeQuiz
		s.nextQuestion()
	case 1:
		s.run.Reader().Restart()
		s.mode = modeStory
	case 2:
		sum, err := s.run.EndAfterStory(ctx)
		if err != nil {
			s.fail(err)
			return nil
		}
		return router.ReplaceCmd(summary.New(sum))
	}
	return nil
}

// nextQuestion renders the engine's current question into the selector.
func (s *SessionScreen) nextQuestion() {
	e := s.run.Quiz()
	q, err := e.Question()
	if err != nil {
		s.fail(err)
		return
	}
	opts, err := e.Options()
	if err != nil {
		s.fail(err)
		return
	}
	s.choice = components.NewMultiChoice(
		"What does \""+q.Word+"\" mean?",
		opts,
		slices.Index(opts, q.Correct),
	)
}

func (s *SessionScreen) submit() tea.Cmd {
	if _, err := s.run.Quiz().SubmitAnswer(s.choice.ChosenIndex); err != nil {
		s.fail(err)
		return nil
	}
	s.mode = modeFeedback
	return nil
}

func (s *SessionScreen) acknowledge() tea.Cmd {
	e := s.run.Quiz()
	if err := e.Acknowledge(); err != nil {
		s.fail(err)
		return nil
	}
	if e.State() != quiz.StateSummary {
		s.mode = modeQuiz
		s.nextQuestion()
		return nil
	}
	sum, err := s.run.Finish(context.Background())
	if err != nil {
		s.fail(err)
		return nil
	}
	return router.ReplaceCmd(summary.New(sum))
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
