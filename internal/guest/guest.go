// Package guest defines the execution contract for provisioned guest
// machines. A guest accepts a shell script and returns its output; it has
// no package-manager knowledge. This is the only boundary the
// package-manager layer crosses to reach the outside world.
package guest

import (
	"context"

	"github.com/guestctl/guestctl/internal/script"
)

// CommandOutput is the result of one script execution on a guest.
type CommandOutput struct {
	Stdout     string
	Stderr     string
	ReturnCode int
}

// Facts holds properties of a guest that affect how commands are rendered.
type Facts struct {
	// IsSuperuser reports whether scripts run as root. When false,
	// mutating package-manager commands are prefixed with sudo.
	IsSuperuser bool
}

// Guest runs shell scripts on one machine. Implementations are bound to a
// single machine for their lifetime. Timeouts and cancellation are the
// caller's concern, delivered through the context.
type Guest interface {
	// Name identifies the guest, e.g. for discovery caching and logs.
	Name() string

	// Facts returns the guest's known properties.
	Facts() Facts

	// Execute runs the script through /bin/bash on the guest. A nonzero
	// exit code is returned as *errors.RunError carrying the command text
	// and the captured output; the CommandOutput is valid in both cases.
	Execute(ctx context.Context, s script.Script) (CommandOutput, error)
}

// FilePusher is implemented by guests that can receive staged files, such
// as locally downloaded package archives.
type FilePusher interface {
	// PushFile copies a local file to the given path on the guest.
	PushFile(ctx context.Context, localPath, remotePath string) error
}
