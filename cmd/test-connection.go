package cmd

import (
	"github.com/relloyd/hptransform/constants"
	"github.com/spf13/cobra"
)

var testConnectionCmd = &cobra.Command{
	Use:   "test-connection",
	Short: "Test the database connection found in config.json",
	Long: `Connect to the database found in config.json in the data directory, run a trivial query and
print {"status":"success"} on success.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runComponent(cmd, constants.ActionTestConnection)
	},
}

func init() {
	rootCmd.AddCommand(testConnectionCmd)
}
