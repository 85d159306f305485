package plan

import (
	"context"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/guestctl/guestctl/internal/guest"
	"github.com/guestctl/guestctl/internal/logging"
	"github.com/guestctl/guestctl/internal/pkgmanager"
)

// GuestResult is the outcome of running a plan on one guest.
type GuestResult struct {
	Guest   string
	Backend pkgmanager.Name
	Err     error
}

// RunResult is the outcome of one plan execution.
type RunResult struct {
	// ID tags the execution; ULIDs sort by start time.
	ID     string
	Plan   string
	Guests []GuestResult
}

// Failed reports whether any guest failed.
func (r *RunResult) Failed() bool {
	for _, g := range r.Guests {
		if g.Err != nil {
			return true
		}
	}
	return false
}

// Runner executes plans against guests. Guests are independent and are
// driven concurrently; operations on a single guest stay sequential.
type Runner struct {
	discovery *pkgmanager.Discovery
}

func NewRunner(discovery *pkgmanager.Discovery) *Runner {
	return &Runner{discovery: discovery}
}

// Run executes the plan on every guest. The returned result always covers
// all guests; the error is the first per-guest failure, if any.
func (r *Runner) Run(ctx context.Context, p *Plan, guests []guest.Guest) (*RunResult, error) {
	result := &RunResult{
		ID:     ulid.Make().String(),
		Plan:   p.Name,
		Guests: make([]GuestResult, len(guests)),
	}

	logging.Info("running plan", "run_id", result.ID, "plan", p.Name, "guests", len(guests))

	group, ctx := errgroup.WithContext(ctx)

	for i, g := range guests {
		i, g := i, g
		result.Guests[i].Guest = g.Name()

		group.Go(func() error {
			err := r.runGuest(ctx, p, g, &result.Guests[i])
			result.Guests[i].Err = err
			return err
		})
	}

	err := group.Wait()
	return result, err
}

func (r *Runner) runGuest(ctx context.Context, p *Plan, g guest.Guest, res *GuestResult) error {
	manager, err := r.discovery.Manager(ctx, g)
	if err != nil {
		return err
	}
	res.Backend = manager.Name()

	if p.RefreshMetadata {
		if _, err := manager.RefreshMetadata(ctx); err != nil {
			return err
		}
	}

	if installables := p.Installables(); len(installables) > 0 {
		if _, err := manager.Install(ctx, p.Options(), installables...); err != nil {
			return err
		}
	}

	if debuginfo := p.DebuginfoInstallables(); len(debuginfo) > 0 {
		if _, err := manager.InstallDebuginfo(ctx, p.Options(), debuginfo...); err != nil {
			return err
		}
	}

	logging.Debug("guest prepared", "guest", g.Name(), "package_manager", res.Backend)
	return nil
}
