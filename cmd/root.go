package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/guestctl/guestctl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	configPath string
	guestName  string
)

var rootCmd = &cobra.Command{
	Use:   "guestctl",
	Short: "Prepare guest machines for test execution",
	Long: `guestctl puts packages onto provisioned guests - local hosts, SSH
machines or containers - through whichever package manager the guest
actually has.

The backend (dnf5, dnf, yum, apt, rpm-ostree or apk) is discovered
automatically; every operation renders a shell script and runs it on the
guest, so guestctl needs nothing installed on the guest beyond a shell
and one of the supported package managers.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/guestctl/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&guestName, "guest", "g", "", "Guest to operate on (default from config)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
