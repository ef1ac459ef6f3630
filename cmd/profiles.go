package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vocabflow/vocabflow/internal/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage child profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return profilesListCmd.RunE(cmd, args)
	},
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		children := e.svc.Profiles().List()
		if len(children) == 0 {
			fmt.Fprintln(out, "No profiles yet. Add one with: vocabflow profiles add <name>")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-10s  %s\n", "ID", "Name", "Grade", "Mastered")
		fmt.Fprintln(out, strings.Repeat("─", 76))
		for _, c := range children {
			p, err := e.svc.Profiles().Get(c.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-36s  %-16s  %-10s  %d\n", c.ID, c.Name, c.GradeLevel, p.MasteredCount())
		}
		return nil
	},
}

var profilesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a profile with the sample word lists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		grade, _ := cmd.Flags().GetString("grade")

		e, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.svc.CreateProfile(cmd.Context(), profile.ChildInput{Name: args[0], GradeLevel: grade}, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s) with %d lists. id: %s\n",
			p.Child.Name, p.Child.GradeLevel, len(p.Words.Lists()), p.Child.ID)
		return nil
	},
}

var profilesRemoveCmd = &cobra.Command{
	Use:   "remove <id-or-name>",
	Short: "Delete a profile and its progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.svc.Resolve(args[0])
		if err != nil {
			return err
		}
		if err := e.svc.DeleteProfile(cmd.Context(), p.Child.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", p.Child.Name)
		return nil
	},
}

func init() {
	profilesAddCmd.Flags().StringP("grade", "g", "2nd Grade",
		"Grade level: "+strings.Join(profile.GradeLevels, ", "))

	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesAddCmd)
	profilesCmd.AddCommand(profilesRemoveCmd)
}
