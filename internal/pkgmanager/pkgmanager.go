package pkgmanager

import (
	"context"

	"github.com/guestctl/guestctl/internal/errors"
	"github.com/guestctl/guestctl/internal/guest"
	"github.com/guestctl/guestctl/internal/logging"
	"github.com/guestctl/guestctl/internal/script"
)

// Name identifies one supported package manager backend.
type Name string

const (
	NameDnf5      Name = "dnf5"
	NameDnf       Name = "dnf"
	NameYum       Name = "yum"
	NameApt       Name = "apt"
	NameRpmOstree Name = "rpm-ostree"
	NameApk       Name = "apk"
)

// renderer builds the shell scripts for one backend. Renderers are pure:
// they turn (operation, installables, options) into a Script plus, for
// presence checks, a classification rule; they never touch the guest.
type renderer interface {
	install(opts Options, installables ...Installable) (script.Script, error)
	reinstall(opts Options, installables ...Installable) (script.Script, error)
	refreshMetadata() script.Script
	installDebuginfo(opts Options, installables ...Installable) (script.Script, error)
	presenceQueries(installables ...Installable) ([]presenceQuery, error)
}

// presenceQuery is one existence query plus the rule that turns its output
// into per-installable booleans. Classification never fails: "not found"
// is a valid false result, not an error.
type presenceQuery struct {
	script   script.Script
	classify func(out guest.CommandOutput) map[Installable]bool
}

// descriptor registers one backend: its name, the executable probed during
// discovery, and its renderer factory.
type descriptor struct {
	name        Name
	executable  string
	newRenderer func(facts guest.Facts) renderer
}

// registry is the fixed, closed set of supported backends, ordered from
// most to least preferred. Discovery walks this order; ostree guests
// additionally promote rpm-ostree to the front.
var registry = []descriptor{
	{NameDnf5, "dnf5", func(facts guest.Facts) renderer { return newDnfRenderer("dnf5", facts) }},
	{NameDnf, "dnf", func(facts guest.Facts) renderer { return newDnfRenderer("dnf", facts) }},
	{NameYum, "yum", func(facts guest.Facts) renderer { return newDnfRenderer("yum", facts) }},
	{NameApt, "apt", func(facts guest.Facts) renderer { return newAptRenderer(facts) }},
	{NameRpmOstree, "rpm-ostree", func(facts guest.Facts) renderer { return newRpmOstreeRenderer(facts) }},
	{NameApk, "apk", func(facts guest.Facts) renderer { return newApkRenderer(facts) }},
}

func lookupDescriptor(name Name) (descriptor, bool) {
	for _, desc := range registry {
		if desc.name == name {
			return desc, true
		}
	}
	return descriptor{}, false
}

// Names returns all supported backend names in preference order.
func Names() []Name {
	names := make([]Name, 0, len(registry))
	for _, desc := range registry {
		names = append(names, desc.name)
	}
	return names
}

// PackageManager is the uniform facade over one backend on one guest. It
// is bound to a single guest after discovery and is not safe for
// concurrent use; the caller serializes operations per guest.
type PackageManager struct {
	guest    guest.Guest
	name     Name
	renderer renderer
}

// New binds the named backend to a guest. The backend is normally chosen
// by Discovery; New does not verify that the executable actually exists on
// the guest.
func New(g guest.Guest, name Name) (*PackageManager, error) {
	desc, ok := lookupDescriptor(name)
	if !ok {
		return nil, errors.GeneralErrorf("unknown package manager '%s'", name)
	}

	return &PackageManager{
		guest:    g,
		name:     name,
		renderer: desc.newRenderer(g.Facts()),
	}, nil
}

// Name returns the active backend's name.
func (m *PackageManager) Name() Name {
	return m.name
}

// Install installs the given installables. With Options.CheckFirst the
// rendered script runs the mutating command only when a presence query
// fails, so already-satisfied installables are inexpensive no-ops.
func (m *PackageManager) Install(ctx context.Context, opts Options, installables ...Installable) (guest.CommandOutput, error) {
	s, err := m.renderer.install(opts, installables...)
	if err != nil {
		return guest.CommandOutput{}, err
	}

	logging.Debug("install", "guest", m.guest.Name(), "package_manager", m.name, "script", s.String())
	return m.guest.Execute(ctx, s)
}

// Reinstall reinstalls the given installables. Reinstall presupposes
// presence: with Options.CheckFirst the mutating command runs only when
// the presence query succeeds. Unsupported on rpm-ostree.
func (m *PackageManager) Reinstall(ctx context.Context, opts Options, installables ...Installable) (guest.CommandOutput, error) {
	s, err := m.renderer.reinstall(opts, installables...)
	if err != nil {
		return guest.CommandOutput{}, err
	}

	logging.Debug("reinstall", "guest", m.guest.Name(), "package_manager", m.name, "script", s.String())
	return m.guest.Execute(ctx, s)
}

// CheckPresence reports, for each installable, whether it is already
// satisfied on the guest. A missing installable is a false result, never
// an error.
func (m *PackageManager) CheckPresence(ctx context.Context, installables ...Installable) (map[Installable]bool, error) {
	queries, err := m.renderer.presenceQueries(installables...)
	if err != nil {
		return nil, err
	}

	results := make(map[Installable]bool, len(installables))

	for _, query := range queries {
		out, err := m.guest.Execute(ctx, query.script)
		if err != nil {
			var runErr *errors.RunError
			if !errors.As(err, &runErr) {
				return nil, err
			}
			// The query exited nonzero, which for most backends just
			// means "not installed". Classification inspects the output.
			out = guest.CommandOutput{
				Stdout:     runErr.Stdout,
				Stderr:     runErr.Stderr,
				ReturnCode: runErr.ReturnCode,
			}
		}

		for installable, present := range query.classify(out) {
			results[installable] = present
		}
	}

	return results, nil
}

// RefreshMetadata refreshes the backend's package metadata cache.
func (m *PackageManager) RefreshMetadata(ctx context.Context) (guest.CommandOutput, error) {
	s := m.renderer.refreshMetadata()

	logging.Debug("refresh metadata", "guest", m.guest.Name(), "package_manager", m.name, "script", s.String())
	return m.guest.Execute(ctx, s)
}

// InstallDebuginfo installs debug-symbol packages for the given packages,
// bootstrapping the debuginfo-install helper when it is absent and
// verifying afterwards that each <name>-debuginfo package is present.
// Supported on the RPM-family backends only.
func (m *PackageManager) InstallDebuginfo(ctx context.Context, opts Options, installables ...Installable) (guest.CommandOutput, error) {
	s, err := m.renderer.installDebuginfo(opts, installables...)
	if err != nil {
		return guest.CommandOutput{}, err
	}

	logging.Debug("install debuginfo", "guest", m.guest.Name(), "package_manager", m.name, "script", s.String())
	return m.guest.Execute(ctx, s)
}

// sudoPrefix returns the command prefix for guests where scripts do not
// run as root.
func sudoPrefix(facts guest.Facts) string {
	if facts.IsSuperuser {
		return ""
	}
	return "sudo "
}
