package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/vocabflow/vocabflow/internal/story"
	"github.com/vocabflow/vocabflow/internal/ui/theme"
)

var storyCmd = &cobra.Command{
	Use:   "story [list]",
	Short: "Generate a story and print its slides (records no progress)",
	Long: `Generate the story a session would show and print it with the
vocabulary words highlighted. Either name a list of the profile, whose
session words are used, or pass --words. Nothing is saved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		explicit, _ := cmd.Flags().GetStringSlice("words")
		grade, _ := cmd.Flags().GetString("grade")
		plain, _ := cmd.Flags().GetBool("plain")

		if len(args) == 0 && len(explicit) == 0 {
			return fmt.Errorf("name a list or pass --words")
		}

		e, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		sessionWords := explicit
		if len(args) == 1 {
			p, err := e.profile()
			if err != nil {
				return err
			}
			l, err := findList(p, args[0])
			if err != nil {
				return err
			}
			_, sessionWords, err = p.SessionWords(l.ID)
			if err != nil {
				return err
			}
			if grade == "" {
				grade = p.Child.GradeLevel
			}
		}

		gen := story.NewGenerator(e.source, e.cfg.Story.Config,
			story.WithGradeLevel(grade),
			story.WithLogger(e.log),
		)
		slides, err := gen.Generate(cmd.Context(), sessionWords)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Words: %s\n\n", strings.Join(sessionWords, ", "))
		for _, s := range slides {
			fmt.Fprintf(out, "[%d/%d] %s\n\n", s.Index+1, len(slides), renderSlide(s, plain))
		}
		return nil
	},
}

// renderSlide highlights the marked words, or brackets them when plain.
func renderSlide(s story.Slide, plain bool) string {
	var b strings.Builder
	for _, seg := range s.Segments() {
		switch {
		case seg.Word == "":
			b.WriteString(seg.Text)
		case plain:
			b.WriteString("[" + seg.Text + "]")
		default:
			b.WriteString(theme.Vocab.Render(seg.Text))
		}
	}
	if plain {
		return b.String()
	}
	return lipgloss.NewStyle().Width(72).Render(b.String())
}

func init() {
	storyCmd.Flags().StringSlice("words", nil, "Words to weave in instead of a list's session words")
	storyCmd.Flags().String("grade", "", "Grade level for the story (defaults to the profile's)")
	storyCmd.Flags().Bool("plain", false, "Mark words with brackets instead of colour")
}
