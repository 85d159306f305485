package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var debuginfoCmd = &cobra.Command{
	Use:   "debuginfo <package>...",
	Short: "Install debug symbols for packages on a guest",
	Long: `Install debug-symbol packages for the named packages.

The debuginfo-install helper is installed first when the guest lacks
it, and presence of each <name>-debuginfo package is verified
afterwards. Only RPM-family guests (dnf5, dnf, yum) support this.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDebuginfo,
}

func init() {
	rootCmd.AddCommand(debuginfoCmd)
	addOptionFlags(debuginfoCmd)
}

func runDebuginfo(cmd *cobra.Command, args []string) error {
	manager, g, err := getManager(cmd)
	if err != nil {
		return err
	}

	if _, err := manager.InstallDebuginfo(cmd.Context(), buildOptions(), packageArgs(args)...); err != nil {
		return err
	}

	logSuccess("Installed debug symbols for %s on %s", strings.Join(args, ", "), g.Name())
	return nil
}
