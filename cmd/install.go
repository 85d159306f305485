package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <package|path|archive>...",
	Short: "Install packages on a guest",
	Long: `Install packages on the selected guest.

Arguments may be package names, absolute filesystem paths (resolved to
the package providing them) or staged package archives (.rpm, .deb,
.apk). Already present packages are skipped unless --no-check-first is
given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
	addOptionFlags(installCmd)
	installCmd.Flags().BoolVar(&allowUntrusted, "allow-untrusted", false, "Allow packages with unverifiable signatures (apk only)")
}

func runInstall(cmd *cobra.Command, args []string) error {
	manager, g, err := getManager(cmd)
	if err != nil {
		return err
	}

	if _, err := manager.Install(cmd.Context(), buildOptions(), parseInstallables(args)...); err != nil {
		return err
	}

	logSuccess("Installed %s on %s via %s", strings.Join(args, ", "), g.Name(), manager.Name())
	return nil
}
