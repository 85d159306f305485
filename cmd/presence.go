package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/guestctl/guestctl/internal/errors"
)

var failMissing bool

var presenceCmd = &cobra.Command{
	Use:   "presence <package|path>...",
	Short: "Check whether packages are present on a guest",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPresence,
}

func init() {
	rootCmd.AddCommand(presenceCmd)
	presenceCmd.Flags().BoolVar(&failMissing, "fail-missing", false, "Exit nonzero when any package is missing")
}

var (
	presentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func runPresence(cmd *cobra.Command, args []string) error {
	manager, g, err := getManager(cmd)
	if err != nil {
		return err
	}

	installables := parseInstallables(args)

	results, err := manager.CheckPresence(cmd.Context(), installables...)
	if err != nil {
		return err
	}

	missing := 0
	for _, installable := range installables {
		if results[installable] {
			fmt.Printf("%s %s\n", presentStyle.Render("✓ present"), installable)
		} else {
			fmt.Printf("%s %s\n", missingStyle.Render("✗ missing"), installable)
			missing++
		}
	}

	if missing > 0 && failMissing {
		return errors.ValidationError(fmt.Sprintf("%d of %d packages missing on %s", missing, len(installables), g.Name()))
	}
	return nil
}
