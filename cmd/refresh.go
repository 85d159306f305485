package cmd

import (
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh package metadata on a guest",
	Args:  cobra.NoArgs,
	RunE:  runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	manager, g, err := getManager(cmd)
	if err != nil {
		return err
	}

	if _, err := manager.RefreshMetadata(cmd.Context()); err != nil {
		return err
	}

	logSuccess("Refreshed %s metadata on %s", manager.Name(), g.Name())
	return nil
}
