package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/profile"
	"github.com/vocabflow/vocabflow/internal/words"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Show a profile's word lists in session order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.profile()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		lists := p.Planner().Lists()
		if len(lists) == 0 {
			fmt.Fprintln(out, "No lists with words.")
			return nil
		}
		fmt.Fprintf(out, "%-24s  %-6s  %-6s  %-10s  %-10s  %s\n", "Name", "Kind", "Words", "Struggling", "Mastered", "Progress")
		fmt.Fprintln(out, strings.Repeat("─", 76))
		for _, sl := range lists {
			l, err := p.Words.List(sl.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-24s  %-6s  %-6d  %-10d  %-10d  %.0f%%\n",
				l.Name, sl.Kind.Label(), l.Stats.Total, l.Stats.Struggling, l.Stats.Mastered, l.Stats.Progress*100)
		}
		return nil
	},
}

var wordsCmd = &cobra.Command{
	Use:   "words <list>",
	Short: "Show the words of a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		statuses, _ := cmd.Flags().GetStringSlice("status")
		priority, _ := cmd.Flags().GetBool("priority")

		f := words.Filter{Search: search, PriorityOnly: priority}
		for _, s := range statuses {
			st, ok := words.ParseStatus(s)
			if !ok {
				return domain.NewValidationError("status", fmt.Sprintf("unknown status %q", s))
			}
			f.Statuses = append(f.Statuses, st)
		}

		e, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.profile()
		if err != nil {
			return err
		}
		l, err := findList(p, args[0])
		if err != nil {
			return err
		}
		seq, err := p.Words.Filter(l.ID, f)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "  %-16s  %-12s  %-5s  %-5s  %s\n", "Word", "Status", "Spell", "Mean", "Definition")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		n := 0
		for w := range seq {
			flag := " "
			if w.IsPriority {
				flag = "⚑"
			}
			fmt.Fprintf(out, "%s %-16s  %-12s  %-5.2f  %-5.2f  %s\n",
				flag, w.Text, w.Status(), w.SpellingProgress, w.MeaningProgress, w.Definition)
			n++
		}
		fmt.Fprintf(out, "\n%d of %d words\n", n, l.Stats.Total)
		return nil
	},
}

var listsAddCmd = &cobra.Command{
	Use:   "add <name> [word...]",
	Short: "Create a list, optionally with words",
	Long: `Create a list. Words given after the name are added with spelling and
meaning practice on; use "vocabflow words add" for definitions and other
settings. Lists without words are not offered for sessions.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.profile()
		if err != nil {
			return err
		}
		l, err := p.Words.CreateList(args[0])
		if err != nil {
			return err
		}
		for _, text := range args[1:] {
			if _, err := p.Words.AddWord(l.ID, words.WordInput{Text: text, AllowSpelling: true, AllowMeaning: true}); err != nil {
				// Leave nothing behind for a half-valid command line.
				_ = p.Words.DeleteList(l.ID)
				return err
			}
		}
		if err := e.svc.Save(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %q for %s with %d words\n", l.Name, p.Child.Name, len(args)-1)
		return nil
	},
}

var listsRemoveCmd = &cobra.Command{
	Use:     "remove <list>",
	Aliases: []string{"rm"},
	Short:   "Delete a list and its words",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withList(cmd, args[0], func(e *env, p *profile.Profile, l words.WordList) error {
			if err := p.Words.DeleteList(l.ID); err != nil {
				return err
			}
			if err := e.svc.Save(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q (%d words)\n", l.Name, len(l.Words))
			return nil
		})
	},
}

// findList matches ref against list ids, then names ignoring case.
func findList(p *profile.Profile, ref string) (words.WordList, error) {
	ref = strings.TrimSpace(ref)
	l, ok := lo.Find(p.Words.Lists(), func(l words.WordList) bool {
		return l.ID == ref || strings.EqualFold(l.Name, ref)
	})
	if !ok {
		return words.WordList{}, domain.NotFound("word list", ref)
	}
	return l, nil
}

func init() {
	listsCmd.AddCommand(listsAddCmd, listsRemoveCmd)

	wordsCmd.Flags().StringP("search", "s", "", "Only words whose text or definition contains this")
	wordsCmd.Flags().StringSlice("status", nil, "Only these statuses: struggling, progressing, mastered")
	wordsCmd.Flags().Bool("priority", false, "Only priority words")
}
