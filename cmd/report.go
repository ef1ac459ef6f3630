package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vocabflow/vocabflow/internal/progress"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show a profile's progress over the last week or month",
	RunE: func(cmd *cobra.Command, args []string) error {
		periodFlag, _ := cmd.Flags().GetString("period")
		period, err := progress.ParsePeriod(periodFlag)
		if err != nil {
			return err
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
		r := p.Progress.Report(period, time.Now())

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s, last %s (%s to %s)\n\n", p.Child.Name, r.Period,
			r.From.Local().Format("Jan 02"), r.To.Local().Format("Jan 02"))
		fmt.Fprintf(out, "Words:     %d in %d lists, %.0f%% overall\n", r.Words, r.Lists, r.Progress*100)
		fmt.Fprintf(out, "Status:    %d mastered, %d progressing, %d struggling\n", r.Mastered, r.Progressing, r.Struggling)
		fmt.Fprintf(out, "Skills:    spelling %.0f%%, meaning %.0f%%\n", r.Spelling*100, r.Meaning*100)
		fmt.Fprintf(out, "Sessions:  %d started, %d completed (%.0f%%), average score %.0f%%, %d words mastered\n\n",
			r.Sessions.Started, r.Sessions.Completed, r.Sessions.CompletionRate*100,
			r.Sessions.AverageScore*100, r.Sessions.WordsMastered)

		fmt.Fprintf(out, "%-24s  %8s  %8s  %9s  %s\n", "List", "Progress", "Sessions", "Avg score", "Last session")
		fmt.Fprintln(out, strings.Repeat("─", 76))
		for _, ls := range r.PerList {
			last := "-"
			if !ls.LastRun.IsZero() {
				last = ls.LastRun.Local().Format("Jan 02 15:04")
			}
			fmt.Fprintf(out, "%-24s  %7.0f%%  %8d  %8.0f%%  %s\n",
				truncate(ls.Name, 24), ls.Stats.Progress*100, ls.Sessions.Started, ls.Sessions.AverageScore*100, last)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().String("period", string(progress.PeriodWeek), "Report period: week or month")
}
