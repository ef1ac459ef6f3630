// Package welcome shows the splash screen.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vocabflow/vocabflow/internal/router"
	"github.com/vocabflow/vocabflow/internal/screen"
	"github.com/vocabflow/vocabflow/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bookOpen     = 500 * time.Millisecond
	titleShown   = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const bookArt = `   ________   ________
  /        \ /        \
 |  ~~~~~~  |  ~~~~~~  |
 |  ~~~~~~  |  ~~~~~~  |
 |  ~~~~    |  ~~~~~   |
  \________/ \________/`

const banner = "v o c a b f l o w"

var sparkles = []string{"✦", "★", "·"}

type tickMsg time.Time

// WelcomeScreen plays a short animation, then hands over to the screen
// built by next on the first key press.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	ticks        int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. next is called once, when the user leaves.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.ticks++
		if w.transitioned {
			return w, nil
		}
		return w, tick()
	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.ReplaceCmd(w.next())
}

func (w *WelcomeScreen) View(width, height int) string {
	book := lipgloss.NewStyle().Foreground(theme.Secondary).Render(bookArt)
	if w.elapsed >= bookOpen {
		s := sparkles[w.ticks%len(sparkles)]
		lines := strings.Split(book, "\n")
		lines[0] = lipgloss.NewStyle().Foreground(theme.Accent).Render(s) + " " + lines[0]
		lines[len(lines)-1] += " " + lipgloss.NewStyle().Foreground(theme.Primary).Render(s)
		book = strings.Join(lines, "\n")
	}
	sections := []string{book}

	if w.elapsed >= titleShown {
		sections = append(sections,
			"",
			lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(banner),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Every story is full of new words!"),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
