package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vocabflow/vocabflow/internal/config"
)

// v holds settings from defaults, the config file, VOCABFLOW_* variables
// and the persistent flags bound below.
var v = config.New()

var rootCmd = &cobra.Command{
	Use:   "vocabflow",
	Short: "Story-based vocabulary practice for kids",
	Long: `vocabflow is a terminal app where children meet new words inside short
stories and then check what they mean in a quick quiz.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file (default $XDG_CONFIG_HOME/vocabflow/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides VOCABFLOW_DB env var)")
	pf.StringP("profile", "P", "", "Profile id or name")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")
	pf.String("log-format", "text", "Log format: text or json")
	pf.String("log-file", "", "Write logs to this file instead of stderr")

	for key, flag := range map[string]string{
		"db":         "db",
		"profile":    "profile",
		"log.level":  "log-level",
		"log.format": "log-format",
		"log.file":   "log-file",
	} {
		_ = v.BindPFlag(key, pf.Lookup(flag))
	}

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(listsCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(storyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
