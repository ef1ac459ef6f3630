package story

import (
	"context"
	"slices"
	"time"
)

// Brief describes the story a content source should write.
type Brief struct {
	Words      []string
	GradeLevel string
	Passages   int // desired number of passages
	MaxWords   int // word limit per passage
}

// ContentSource supplies the narrative passages a story is paged from.
type ContentSource interface {
	Passages(ctx context.Context, b Brief) ([]string, error)
}

// DefaultCannedDelay is the simulated writing time of CannedSource.
const DefaultCannedDelay = 2 * time.Second

// CannedSource serves a fixed set of passages after an artificial delay.
// It ignores the brief apart from honoring cancellation.
type CannedSource struct {
	Delay time.Duration
	Pool  []string // defaults to the Whispering Woods story
}

// NewCannedSource returns the built-in story with the default delay.
func NewCannedSource() *CannedSource {
	return &CannedSource{Delay: DefaultCannedDelay}
}

func (c *CannedSource) Passages(ctx context.Context, _ Brief) ([]string, error) {
	if c.Delay > 0 {
		t := time.NewTimer(c.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	if c.Pool != nil {
		return slices.Clone(c.Pool), nil
	}
	return slices.Clone(whisperingWoods), nil
}

var whisperingWoods = []string{
	"Lily and her trusty dog, Sparky, loved exploring the Whispering Woods. Today, their mission was to find the ancient tree, rumored to grant wishes. The path was winding and dappled with sunlight, making their adventure even more enchanting.",
	"The ancient tree stood tall and majestic, its branches reaching towards the sky. Lily approached carefully, feeling a sense of wonder wash over her. She closed her eyes and made a wish, hoping it would come true.",
	"As they walked back home, Lily couldn't stop thinking about the enchanting experience. The woods felt more alive than ever, with birds singing and leaves rustling in the gentle breeze. She knew this adventure would stay with her forever.",
	"The next morning, Lily woke up excited to tell her friends about the magical tree. She wondered if her wish would really come true. The ancient tree had seemed so powerful and mysterious.",
	"At school, Lily shared her story with her classmates. Some believed her, while others thought it was just her imagination. But Lily knew what she had experienced was real and special.",
	"Days passed, and Lily often thought about the winding path through the woods. She wanted to return to the ancient tree again. Perhaps she would discover more secrets hidden in the forest.",
	"One afternoon, Lily decided to go back with Sparky. The journey felt even more enchanting this time. Every rustling leaf and gentle breeze seemed to whisper secrets of the woods.",
	"As they approached the clearing, Lily noticed something different. The ancient tree seemed to glow with a soft, warm light. It was as if the tree was welcoming them back.",
	"Sparky barked excitedly and ran around the tree. Lily laughed and followed him. The majestic tree stood firm, its branches swaying gently in the wind. She felt a deep connection to this magical place.",
	"Lily sat beneath the tree and opened her notebook. She began writing about all her adventures in the Whispering Woods. The ancient tree would be the guardian of all her stories and dreams.",
}
