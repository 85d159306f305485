package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var reinstallCmd = &cobra.Command{
	Use:   "reinstall <package>...",
	Short: "Reinstall packages already present on a guest",
	Long: `Reinstall packages on the selected guest.

Reinstall presupposes presence: missing packages make the operation
fail rather than install them. Not supported on rpm-ostree guests.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReinstall,
}

func init() {
	rootCmd.AddCommand(reinstallCmd)
	addOptionFlags(reinstallCmd)
}

func runReinstall(cmd *cobra.Command, args []string) error {
	manager, g, err := getManager(cmd)
	if err != nil {
		return err
	}

	if _, err := manager.Reinstall(cmd.Context(), buildOptions(), parseInstallables(args)...); err != nil {
		return err
	}

	logSuccess("Reinstalled %s on %s", strings.Join(args, ", "), g.Name())
	return nil
}
