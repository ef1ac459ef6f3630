package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vocabflow/vocabflow/internal/words"
)

var resetCmd = &cobra.Command{
	Use:   "reset [list]",
	Short: "Reset spelling and meaning progress of one list or all lists",
	Args:  cobra.MaximumNArgs(1),
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

		lists := p.Words.Lists()
		if len(args) == 1 {
			l, err := findList(p, args[0])
			if err != nil {
				return err
			}
			lists = []words.WordList{l}
		}

		patch := words.WordPatch{SpellingProgress: lo.ToPtr(0.0), MeaningProgress: lo.ToPtr(0.0)}
		n := 0
		for _, l := range lists {
			for _, w := range l.Words {
				if _, err := p.Words.UpdateWord(l.ID, w.ID, patch); err != nil {
					return err
				}
				n++
			}
		}
		if err := e.svc.Save(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %d words in %d lists for %s\n", n, len(lists), p.Child.Name)
		return nil
	},
}
