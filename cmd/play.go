package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vocabflow/vocabflow/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interactive app",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, _ := cmd.Flags().GetString("list")
		return runApp(cmd, list)
	},
}

func init() {
	playCmd.Flags().StringP("list", "l", "", "Start a session on this list right away (needs --profile)")
}

// runApp builds dependencies and launches the TUI. With --profile the
// profile picker is skipped.
func runApp(cmd *cobra.Command, list string) error {
	e, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	opts := app.Options{Service: e.svc}
	if e.cfg.Profile != "" {
		p, err := e.profile()
		if err != nil {
			return err
		}
		opts.Profile = p
		if list != "" {
			l, err := findList(p, list)
			if err != nil {
				return err
			}
			opts.ListID = l.ID
		}
	} else if list != "" {
		return fmt.Errorf("--list needs --profile")
	}

	// stderr belongs to the UI now.
	if e.cfg.Log.File == "" {
		e.log.SetOutput(io.Discard)
	}
	return app.Run(opts)
}
