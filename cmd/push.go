package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/guestctl/guestctl/internal/errors"
	"github.com/guestctl/guestctl/internal/guest"
)

var pushCmd = &cobra.Command{
	Use:   "push <archive>...",
	Short: "Stage package archives on a guest",
	Long: `Copy local package archives into the guest's staging directory so
they can be installed with "guestctl install /path/to/archive".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPush,
}

func init() {
	rootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
	g, cfg, err := getGuest()
	if err != nil {
		return err
	}

	pusher, ok := g.(guest.FilePusher)
	if !ok {
		return errors.GuestError(fmt.Sprintf("guest %s does not support file staging", g.Name()), nil)
	}

	for _, localPath := range args {
		remotePath := filepath.Join(cfg.StagingDir, filepath.Base(localPath))
		if err := pusher.PushFile(cmd.Context(), localPath, remotePath); err != nil {
			return err
		}
		logInfo("Staged %s as %s", localPath, remotePath)
	}

	logSuccess("Staged %d file(s) on %s", len(args), g.Name())
	return nil
}
