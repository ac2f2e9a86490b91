package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long:  `Loads the configuration file and checks for errors, missing required fields, and invalid values.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Loading and validation happen in the persistent pre-run.
		if cfgFile == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No configuration file given, the defaults are valid.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %q is valid.\n", cfgFile)
		log.Debugf("Loaded config: %+v", cfg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
