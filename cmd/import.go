package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vocabflow/vocabflow/internal/wordpack"
	"github.com/vocabflow/vocabflow/internal/words"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a word list from a .csv/.xlsx file or a built-in pack",
	Long: `Import a word list into a profile.

With a file argument, rows are read as word,definition pairs. With --pack,
one of the built-in packs is imported instead. Run with neither to list the
built-in packs. When the title is already used by another list, a number is
appended to it unless --title was given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		packName, _ := cmd.Flags().GetString("pack")
		title, _ := cmd.Flags().GetString("title")
		sheet, _ := cmd.Flags().GetString("sheet")
		noHeader, _ := cmd.Flags().GetBool("no-header")
		spelling, _ := cmd.Flags().GetBool("spelling")
		meaning, _ := cmd.Flags().GetBool("meaning")
		out := cmd.OutOrStdout()

		if len(args) == 0 && packName == "" {
			for _, p := range wordpack.Builtin() {
				fmt.Fprintf(out, "%-22s  %2d words  %s\n", p.Title, len(p.Words), p.Description)
			}
			return nil
		}
		if len(args) == 1 && packName != "" {
			return fmt.Errorf("give a file or --pack, not both")
		}

		var pack wordpack.Pack
		if packName != "" {
			p, err := wordpack.Find(packName)
			if err != nil {
				return err
			}
			pack = p
		} else {
			cfg := wordpack.DefaultImportConfig()
			cfg.Title = title
			cfg.SkipHeader = !noHeader
			if sheet != "" {
				cfg.SheetName = sheet
			}
			res, err := wordpack.ImportFile(args[0], cfg)
			if err != nil {
				return err
			}
			for _, re := range res.Skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", re)
			}
			pack = res.Pack
		}
		if title != "" {
			pack.Title = title
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
		if title == "" {
			// A pack or file name that is already taken gets a " (n)" suffix;
			// an explicit --title must be free.
			pack.Title = p.Words.UniqueName(pack.Title)
		}
		l, err := p.Words.ImportPack(pack.Title, pack.Words, words.PackOptions{AllowSpelling: spelling, AllowMeaning: meaning})
		if err != nil {
			return err
		}
		if err := e.svc.Save(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Fprintf(out, "Imported %q into %s: %s\n", l.Name, p.Child.Name,
			strings.Join(lo.Map(l.Words, func(w words.Word, _ int) string { return w.Text }), ", "))
		return nil
	},
}

func init() {
	importCmd.Flags().String("pack", "", "Import a built-in pack by title")
	importCmd.Flags().StringP("title", "t", "", "List title (defaults to the file name or pack title)")
	importCmd.Flags().String("sheet", "", "Sheet to read from .xlsx files (default Sheet1)")
	importCmd.Flags().Bool("no-header", false, "The file has no header row")
	importCmd.Flags().Bool("spelling", true, "Practise spelling of these words")
	importCmd.Flags().Bool("meaning", true, "Practise meaning of these words")
}
