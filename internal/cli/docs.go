package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/fjglira/mkoptions/internal/domain"
)

var markdown bool

var docsCmd = &cobra.Command{
	Use:   "docs <dir>",
	Short: "Write the manual pages of mkoptions itself",
	Args:  requireArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.NewError("write", dir, 0, "failed to create docs directory", err)
		}

		var err error
		if markdown {
			err = doc.GenMarkdownTree(rootCmd, dir)
		} else {
			err = doc.GenManTree(rootCmd, &doc.GenManHeader{Title: "MKOPTIONS", Section: "1"}, dir)
		}
		if err != nil {
			return domain.NewError("write", dir, 0, "failed to generate CLI docs", err)
		}
		log.WithField("path", dir).Info("CLI docs generated")
		return nil
	},
}

func init() {
	docsCmd.Flags().BoolVar(&markdown, "markdown", false, "write Markdown instead of man pages")
	rootCmd.AddCommand(docsCmd)
}
