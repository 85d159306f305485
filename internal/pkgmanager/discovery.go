package pkgmanager

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/guestctl/guestctl/internal/errors"
	"github.com/guestctl/guestctl/internal/guest"
	"github.com/guestctl/guestctl/internal/logging"
	"github.com/guestctl/guestctl/internal/script"
)

// ostreeBootedMarker is echoed by the probe when the guest runs an
// ostree-based image. An ostree guest usually also carries dnf binaries,
// but mutating the system through them would fail; rpm-ostree must win.
const ostreeBootedMarker = "ostree-booted"

// Selection is the outcome of probing one guest: every backend found on
// it, in preference order, and the one chosen as active.
type Selection struct {
	Present []Name
	Active  Name
}

// Discovery probes guests for usable backends and caches the outcome per
// guest. The cache never invalidates itself: after bootstrapping a new
// backend onto a guest, call Rediscover (or Invalidate) to pick it up.
type Discovery struct {
	mu    sync.Mutex
	cache map[string]*Selection
}

func NewDiscovery() *Discovery {
	return &Discovery{cache: make(map[string]*Selection)}
}

// probeScript tests every registered executable in one round trip. Each
// hit echoes the backend name; the trailing /bin/true keeps the overall
// exit code zero even when nothing is found.
func probeScript() script.Script {
	lines := make([]string, 0, len(registry)+2)

	for _, desc := range registry {
		lines = append(lines, fmt.Sprintf("type %s >/dev/null 2>&1 && echo %s", desc.executable, desc.name))
	}

	lines = append(lines,
		fmt.Sprintf("test -e /run/ostree-booted && echo %s", ostreeBootedMarker),
		"/bin/true",
	)

	return script.Lines(lines...)
}

// Discover returns the cached selection for the guest, probing it first
// if it has not been seen yet.
func (d *Discovery) Discover(ctx context.Context, g guest.Guest) (*Selection, error) {
	d.mu.Lock()
	selection, ok := d.cache[g.Name()]
	d.mu.Unlock()

	if ok {
		return selection, nil
	}

	return d.Rediscover(ctx, g)
}

// Rediscover probes the guest unconditionally and replaces any cached
// selection. Call it after installing a backend that was absent during
// the previous probe.
func (d *Discovery) Rediscover(ctx context.Context, g guest.Guest) (*Selection, error) {
	out, err := g.Execute(ctx, probeScript())
	if err != nil {
		return nil, err
	}

	found := make(map[Name]bool)
	ostreeBooted := false

	for _, line := range strings.Split(out.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == ostreeBootedMarker {
			ostreeBooted = true
			continue
		}
		found[Name(line)] = true
	}

	present := make([]Name, 0, len(registry))
	for _, desc := range registry {
		if found[desc.name] {
			present = append(present, desc.name)
		}
	}

	if ostreeBooted {
		present = promote(present, NameRpmOstree)
	}

	if len(present) == 0 {
		return nil, errors.GeneralErrorf("no supported package manager discovered on guest '%s'", g.Name())
	}

	selection := &Selection{Present: present, Active: present[0]}

	logging.Info(fmt.Sprintf("Discovered package managers: %s", naturalList(present)))

	d.mu.Lock()
	d.cache[g.Name()] = selection
	d.mu.Unlock()

	return selection, nil
}

// Invalidate drops the cached selection for the named guest, forcing the
// next Discover call to probe again.
func (d *Discovery) Invalidate(guestName string) {
	d.mu.Lock()
	delete(d.cache, guestName)
	d.mu.Unlock()
}

// Manager discovers the guest's active backend and returns a facade
// bound to it.
func (d *Discovery) Manager(ctx context.Context, g guest.Guest) (*PackageManager, error) {
	selection, err := d.Discover(ctx, g)
	if err != nil {
		return nil, err
	}
	return New(g, selection.Active)
}

// promote moves name to the front of names, preserving the relative
// order of the rest. No-op when name is absent.
func promote(names []Name, name Name) []Name {
	for i, n := range names {
		if n != name {
			continue
		}
		promoted := make([]Name, 0, len(names))
		promoted = append(promoted, name)
		promoted = append(promoted, names[:i]...)
		promoted = append(promoted, names[i+1:]...)
		return promoted
	}
	return names
}

// naturalList joins backend names for the discovery log line: commas
// between items with "and" before the last, e.g. "dnf5, dnf and yum".
func naturalList(names []Name) string {
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = string(name)
	}

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}
