package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/profile"
	"github.com/vocabflow/vocabflow/internal/words"
)

var wordAddCmd = &cobra.Command{
	Use:   "add <list> <word>",
	Short: "Add a word to a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		definition, _ := cmd.Flags().GetString("definition")
		spelling, _ := cmd.Flags().GetBool("spelling")
		meaning, _ := cmd.Flags().GetBool("meaning")
		priority, _ := cmd.Flags().GetBool("priority")

		return withList(cmd, args[0], func(e *env, p *profile.Profile, l words.WordList) error {
			w, err := p.Words.AddWord(l.ID, words.WordInput{
				Text:          args[1],
				Definition:    definition,
				AllowSpelling: spelling,
				AllowMeaning:  meaning,
				IsPriority:    priority,
			})
			if err != nil {
				return err
			}
			if err := e.svc.Save(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s (%s)\n", w.Text, l.Name, practiceLabel(w))
			return nil
		})
	},
}

var wordEditCmd = &cobra.Command{
	Use:   "edit <list> <word>",
	Short: "Change a word's text, definition or practice settings",
	Long: `Change a word. Only the flags that are given are applied, so

  vocabflow words edit "School Words" homework --spelling=false

keeps the definition and text and turns spelling practice off.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var patch words.WordPatch
		if flags.Changed("text") {
			v, _ := flags.GetString("text")
			patch.Text = &v
		}
		if flags.Changed("definition") {
			v, _ := flags.GetString("definition")
			patch.Definition = &v
		}
		if flags.Changed("spelling") {
			v, _ := flags.GetBool("spelling")
			patch.AllowSpelling = &v
		}
		if flags.Changed("meaning") {
			v, _ := flags.GetBool("meaning")
			patch.AllowMeaning = &v
		}
		if flags.Changed("priority") {
			v, _ := flags.GetBool("priority")
			patch.IsPriority = &v
		}
		if patch == (words.WordPatch{}) {
			return domain.NewValidationError("flags", "nothing to change; see --help")
		}

		return withList(cmd, args[0], func(e *env, p *profile.Profile, l words.WordList) error {
			w, err := p.Words.FindWord(l.ID, args[1])
			if err != nil {
				return err
			}
			w, err = p.Words.UpdateWord(l.ID, w.ID, patch)
			if err != nil {
				return err
			}
			if err := e.svc.Save(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %q in %s (%s)\n", w.Text, l.Name, practiceLabel(w))
			return nil
		})
	},
}

var wordRemoveCmd = &cobra.Command{
	Use:     "remove <list> <word>",
	Aliases: []string{"rm"},
	Short:   "Remove a word from a list",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withList(cmd, args[0], func(e *env, p *profile.Profile, l words.WordList) error {
			w, err := p.Words.FindWord(l.ID, args[1])
			if err != nil {
				return err
			}
			if err := p.Words.RemoveWord(l.ID, w.ID); err != nil {
				return err
			}
			if err := e.svc.Save(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from %s\n", w.Text, l.Name)
			return nil
		})
	},
}

// withList bootstraps, resolves the profile and the list named by ref, and
// runs fn with them.
func withList(cmd *cobra.Command, ref string, fn func(e *env, p *profile.Profile, l words.WordList) error) error {
	e, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.profile()
	if err != nil {
		return err
	}
	l, err := findList(p, ref)
	if err != nil {
		return err
	}
	return fn(e, p, l)
}

func practiceLabel(w words.Word) string {
	var modes []string
	if w.AllowSpelling {
		modes = append(modes, "spelling")
	}
	if w.AllowMeaning {
		modes = append(modes, "meaning")
	}
	return strings.Join(modes, " + ")
}

func init() {
	wordAddCmd.Flags().StringP("definition", "d", "", "What the word means")
	wordAddCmd.Flags().Bool("spelling", true, "Practise spelling of this word")
	wordAddCmd.Flags().Bool("meaning", true, "Practise meaning of this word")
	wordAddCmd.Flags().Bool("priority", false, "Pick this word first in sessions")

	wordEditCmd.Flags().String("text", "", "New spelling of the word")
	wordEditCmd.Flags().StringP("definition", "d", "", "New definition")
	wordEditCmd.Flags().Bool("spelling", true, "Practise spelling of this word")
	wordEditCmd.Flags().Bool("meaning", true, "Practise meaning of this word")
	wordEditCmd.Flags().Bool("priority", false, "Pick this word first in sessions")

	wordsCmd.AddCommand(wordAddCmd, wordEditCmd, wordRemoveCmd)
}
