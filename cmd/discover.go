package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var rediscover bool

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Show which package managers a guest has",
	Long: `Probe the selected guest for supported package managers and show
which one guestctl would use. Results are cached per guest; pass
--rediscover after installing a new package manager on the guest.`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.Flags().BoolVar(&rediscover, "rediscover", false, "Probe again instead of using the cached result")
}

var activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))

func runDiscover(cmd *cobra.Command, args []string) error {
	g, _, err := getGuest()
	if err != nil {
		return err
	}

	probe := discovery.Discover
	if rediscover {
		probe = discovery.Rediscover
	}

	selection, err := probe(cmd.Context(), g)
	if err != nil {
		return err
	}

	for _, name := range selection.Present {
		if name == selection.Active {
			fmt.Printf("%s (active)\n", activeStyle.Render(string(name)))
		} else {
			fmt.Println(name)
		}
	}
	return nil
}
