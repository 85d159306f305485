package guest

import (
	"context"
	"fmt"

	"github.com/guestctl/guestctl/internal/errors"
	"github.com/guestctl/guestctl/internal/logging"
	"github.com/guestctl/guestctl/internal/script"
	"github.com/guestctl/guestctl/internal/system"
)

// ContainerGuest runs scripts inside an already provisioned container via
// `podman exec` or `docker exec`. Container lifecycle (create, start,
// destroy) belongs to the provisioning step, not to this layer.
type ContainerGuest struct {
	// Command is the container runtime binary, "podman" or "docker".
	Command string

	// ContainerName is the name of the running container.
	ContainerName string

	facts    Facts
	executor system.CommandExecutor
}

// NewContainerGuest creates a guest bound to a running container.
// Container workloads run as root unless the image says otherwise.
func NewContainerGuest(command, containerName string) *ContainerGuest {
	return &ContainerGuest{
		Command:       command,
		ContainerName: containerName,
		facts:         Facts{IsSuperuser: true},
		executor:      system.DefaultExecutor(),
	}
}

// WithExecutor replaces the command executor (useful for testing).
func (g *ContainerGuest) WithExecutor(executor system.CommandExecutor) *ContainerGuest {
	g.executor = executor
	return g
}

// WithFacts overrides the guest facts.
func (g *ContainerGuest) WithFacts(facts Facts) *ContainerGuest {
	g.facts = facts
	return g
}

func (g *ContainerGuest) Name() string {
	return g.ContainerName
}

func (g *ContainerGuest) Facts() Facts {
	return g.facts
}

func (g *ContainerGuest) Execute(ctx context.Context, s script.Script) (CommandOutput, error) {
	logging.Debug("executing script", "guest", g.ContainerName, "runtime", g.Command, "script", s.String())

	result, err := g.executor.Run(ctx, g.Command, "exec", g.ContainerName, "/bin/bash", "-c", s.String())
	if err != nil {
		return CommandOutput{}, errors.GuestError(
			fmt.Sprintf("failed to execute script in container %s", g.ContainerName), err)
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

// PushFile copies a local file into the container via `<runtime> cp`.
func (g *ContainerGuest) PushFile(ctx context.Context, localPath, remotePath string) error {
	result, err := g.executor.Run(ctx, g.Command, "cp", localPath,
		fmt.Sprintf("%s:%s", g.ContainerName, remotePath))
	if err != nil {
		return errors.GuestError(fmt.Sprintf("failed to copy %s into container", localPath), err)
	}
	if result.ExitCode != 0 {
		return errors.GuestError(
			fmt.Sprintf("failed to copy %s into container: %s", localPath, string(result.Stderr)), nil)
	}

	logging.Debug("staged file", "guest", g.ContainerName, "source", localPath, "dest", remotePath)
	return nil
}
