package guest

import (
	"context"
	"fmt"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/guestctl/guestctl/internal/errors"
	"github.com/guestctl/guestctl/internal/logging"
	"github.com/guestctl/guestctl/internal/script"
	"github.com/guestctl/guestctl/internal/system"
)

// Default SSH configuration values.
const (
	DefaultSSHUser           = "root"
	DefaultSSHPort           = 22
	DefaultSSHConnectTimeout = 10
)

// SSHOptions configures SSH connection parameters.
type SSHOptions struct {
	Host               string
	Port               int
	User               string
	IdentityFile       string
	StrictHostKeyCheck bool
	ConnectTimeout     int
}

// DefaultSSHOptions returns SSHOptions with sensible defaults for guest
// connections.
func DefaultSSHOptions(host string) SSHOptions {
	return SSHOptions{
		Host:               host,
		Port:               DefaultSSHPort,
		User:               DefaultSSHUser,
		StrictHostKeyCheck: false,
		ConnectTimeout:     DefaultSSHConnectTimeout,
	}
}

// BaseArgs returns the common SSH arguments (options only, no user@host).
func (o SSHOptions) BaseArgs() []string {
	args := []string{
		"-p", fmt.Sprintf("%d", o.Port),
		"-o", fmt.Sprintf("ConnectTimeout=%d", o.ConnectTimeout),
		"-o", "BatchMode=yes",
	}

	if !o.StrictHostKeyCheck {
		args = append(args,
			"-o", "StrictHostKeyChecking=no",
			"-o", "UserKnownHostsFile=/dev/null",
		)
	}

	if o.IdentityFile != "" {
		args = append(args, "-i", o.IdentityFile)
	}

	return args
}

// Destination returns the user@host connection target.
func (o SSHOptions) Destination() string {
	return fmt.Sprintf("%s@%s", o.User, o.Host)
}

// SSHGuest runs scripts on a remote machine over SSH. Connection
// establishment and key provisioning belong to the provisioning step.
type SSHGuest struct {
	name     string
	options  SSHOptions
	facts    Facts
	executor system.CommandExecutor
}

// NewSSHGuest creates a guest reachable over SSH.
func NewSSHGuest(name string, options SSHOptions) *SSHGuest {
	return &SSHGuest{
		name:     name,
		options:  options,
		facts:    Facts{IsSuperuser: options.User == "root"},
		executor: system.DefaultExecutor(),
	}
}

// WithExecutor replaces the command executor (useful for testing).
func (g *SSHGuest) WithExecutor(executor system.CommandExecutor) *SSHGuest {
	g.executor = executor
	return g
}

func (g *SSHGuest) Name() string {
	return g.name
}

func (g *SSHGuest) Facts() Facts {
	return g.facts
}

func (g *SSHGuest) Execute(ctx context.Context, s script.Script) (CommandOutput, error) {
	logging.Debug("executing script", "guest", g.name, "host", g.options.Host, "script", s.String())

	// The script travels as a single ssh argument; quote it so the remote
	// shell receives it intact.
	remote := shellquote.Join("/bin/bash", "-c", s.String())
	args := append(g.options.BaseArgs(), g.options.Destination(), remote)

	result, err := g.executor.Run(ctx, "ssh", args...)
	if err != nil {
		return CommandOutput{}, errors.GuestError(fmt.Sprintf("failed to reach guest %s over ssh", g.name), err)
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

// PushFile copies a local file to the guest with scp.
func (g *SSHGuest) PushFile(ctx context.Context, localPath, remotePath string) error {
	args := []string{
		"-P", fmt.Sprintf("%d", g.options.Port),
		"-o", fmt.Sprintf("ConnectTimeout=%d", g.options.ConnectTimeout),
	}
	if !g.options.StrictHostKeyCheck {
		args = append(args,
			"-o", "StrictHostKeyChecking=no",
			"-o", "UserKnownHostsFile=/dev/null",
		)
	}
	if g.options.IdentityFile != "" {
		args = append(args, "-i", g.options.IdentityFile)
	}
	args = append(args, localPath, fmt.Sprintf("%s:%s", g.options.Destination(), remotePath))

	result, err := g.executor.Run(ctx, "scp", args...)
	if err != nil {
		return errors.GuestError(fmt.Sprintf("failed to copy %s to guest %s", localPath, g.name), err)
	}
	if result.ExitCode != 0 {
		return errors.GuestError(
			fmt.Sprintf("failed to copy %s to guest %s: %s", localPath, g.name, string(result.Stderr)), nil)
	}

	return nil
}
