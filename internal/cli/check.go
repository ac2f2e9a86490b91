package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <spec-file>...",
	Short: "Parse, validate and resolve specification files without generating anything",
	Args:  requireArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newGenerator().Check(args)
		if err != nil {
			return err
		}

		options, aliases := 0, 0
		for _, m := range c.Modules {
			options += len(m.Options)
			aliases += len(m.Aliases)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d module(s), %d option(s), %d alias(es), long option codes %d..%d\n",
			len(c.Modules), options, aliases, c.Numbering.Base, c.Numbering.End-1)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
