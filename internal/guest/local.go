package guest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/guestctl/guestctl/internal/errors"
	"github.com/guestctl/guestctl/internal/logging"
	"github.com/guestctl/guestctl/internal/script"
	"github.com/guestctl/guestctl/internal/system"
)

// LocalGuest runs scripts on the local host. It exists mostly for plans
// that prepare the machine guestctl itself runs on, and for tests.
type LocalGuest struct {
	name     string
	facts    Facts
	executor system.CommandExecutor

	// StagingDir is where PushFile places files. Defaults to os.TempDir().
	StagingDir string
}

// NewLocalGuest creates a guest bound to the local host.
func NewLocalGuest(name string) *LocalGuest {
	return &LocalGuest{
		name:       name,
		facts:      Facts{IsSuperuser: os.Geteuid() == 0},
		executor:   system.DefaultExecutor(),
		StagingDir: os.TempDir(),
	}
}

// WithExecutor replaces the command executor (useful for testing).
func (g *LocalGuest) WithExecutor(executor system.CommandExecutor) *LocalGuest {
	g.executor = executor
	return g
}

func (g *LocalGuest) Name() string {
	return g.name
}

func (g *LocalGuest) Facts() Facts {
	return g.facts
}

func (g *LocalGuest) Execute(ctx context.Context, s script.Script) (CommandOutput, error) {
	logging.Debug("executing script", "guest", g.name, "script", s.String())

	result, err := g.executor.Run(ctx, "/bin/bash", "-c", s.String())
	if err != nil {
		return CommandOutput{}, errors.GuestError(fmt.Sprintf("failed to execute script on guest %s", g.name), err)
	}

	output := CommandOutput{
		Stdout:     string(result.Stdout),
		Stderr:     string(result.Stderr),
		ReturnCode: result.ExitCode,
	}

	if result.ExitCode != 0 {
		return output, &errors.RunError{
			Command:    s.String(),
			ReturnCode: result.ExitCode,
			Stdout:     output.Stdout,
			Stderr:     output.Stderr,
		}
	}

	return output, nil
}

// PushFile copies a local file into the staging directory. The remote path
// is confined under StagingDir so a crafted name cannot escape it.
func (g *LocalGuest) PushFile(ctx context.Context, localPath, remotePath string) error {
	dest, err := securejoin.SecureJoin(g.StagingDir, filepath.Base(remotePath))
	if err != nil {
		return errors.GuestError("invalid staging path", err)
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return errors.GuestError(fmt.Sprintf("failed to read %s", localPath), err)
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return errors.GuestError(fmt.Sprintf("failed to stage %s", dest), err)
	}

	logging.Debug("staged file", "guest", g.name, "source", localPath, "dest", dest)
	return nil
}
