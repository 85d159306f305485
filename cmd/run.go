package cmd

import (
	"github.com/spf13/cobra"

	"github.com/guestctl/guestctl/internal/guest"
	"github.com/guestctl/guestctl/internal/plan"
)

var runCmd = &cobra.Command{
	Use:   "run <plan.yaml>",
	Short: "Run a preparation plan against its guests",
	Long: `Execute a preparation plan: every guest the plan names is prepared
concurrently - backend discovery, optional metadata refresh, package
install, debug symbols.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	p, err := plan.Load(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	guests := make([]guest.Guest, 0, len(p.Guests))
	for _, name := range p.Guests {
		gc, err := cfg.Lookup(name)
		if err != nil {
			return err
		}
		g, err := buildGuest(cfg, gc)
		if err != nil {
			return err
		}
		guests = append(guests, g)
	}

	result, runErr := plan.NewRunner(discovery).Run(cmd.Context(), p, guests)

	for _, gr := range result.Guests {
		if gr.Err != nil {
			logError("%s: %v", gr.Guest, gr.Err)
		} else {
			logSuccess("%s prepared via %s", gr.Guest, gr.Backend)
		}
	}

	if runErr != nil {
		return runErr
	}

	logSuccess("Plan %s completed (run %s)", p.Name, result.ID)
	return nil
}
