package session

import (
	"time"

	"github.com/vocabflow/vocabflow/internal/story"
)

// storyLoadedMsg is sent when story generation finishes or fails.
type storyLoadedMsg struct {
	Reader *story.Reader
	Err    error
}

// spinnerTickMsg animates the loading view.
type spinnerTickMsg time.Time
