package pkgmanager

import (
	"strings"

	"github.com/guestctl/guestctl/internal/errors"
	"github.com/guestctl/guestctl/internal/guest"
	"github.com/guestctl/guestctl/internal/script"
)

// debuginfoInstallPath is the helper tool required by InstallDebuginfo; it
// is bootstrapped through the regular install path when absent.
const debuginfoInstallPath = FileSystemPath("/usr/bin/debuginfo-install")

// dnfRenderer covers the three RPM-family generations: dnf5, dnf and yum.
// They share command syntax; the differences are the skip-missing flag
// spelling and yum's unreliable exit codes, which force an explicit
// re-verification after every mutating command.
type dnfRenderer struct {
	tool string
	sudo string

	// skipFlag is the backend's "tolerate missing" flag.
	skipFlag string

	// postVerify re-checks presence after install/reinstall. Needed for
	// yum, whose exit code does not reflect individual missing packages.
	postVerify bool
}

func newDnfRenderer(tool string, facts guest.Facts) *dnfRenderer {
	r := &dnfRenderer{
		tool:     tool,
		sudo:     sudoPrefix(facts),
		skipFlag: "--skip-broken",
	}

	switch tool {
	case "dnf5":
		r.skipFlag = "--skip-unavailable"
	case "yum":
		r.postVerify = true
	}

	return r
}

// whatProvides builds the combined presence query for the given
// installables. rpm resolves package names and filesystem paths alike.
func (r *dnfRenderer) whatProvides(installables ...Installable) script.Script {
	return script.New("rpm -q --whatprovides %s", joinInstallables(installables...))
}

func (r *dnfRenderer) install(opts Options, installables ...Installable) (script.Script, error) {
	extra := ""
	if opts.SkipMissing {
		extra = r.skipFlag
	}

	s := script.New("%s%s install -y %s %s", r.sudo, r.tool, extra, joinInstallables(installables...))

	if opts.CheckFirst {
		s = r.whatProvides(installables...).Or(s)
	}

	if r.postVerify {
		if opts.SkipMissing {
			s = s.Or(script.True)
		} else {
			s = s.And(r.whatProvides(installables...))
		}
	}

	return s, nil
}

func (r *dnfRenderer) reinstall(opts Options, installables ...Installable) (script.Script, error) {
	extra := ""
	if opts.SkipMissing {
		extra = r.skipFlag
	}

	s := script.New("%s%s reinstall -y %s %s", r.sudo, r.tool, extra, joinInstallables(installables...))

	if opts.CheckFirst {
		s = r.whatProvides(installables...).And(s)
	}

	if r.postVerify {
		if opts.SkipMissing {
			s = s.Or(script.True)
		} else {
			s = s.And(r.whatProvides(installables...))
		}
	}

	return s, nil
}

func (r *dnfRenderer) refreshMetadata() script.Script {
	if r.tool == "yum" {
		return script.New("%syum makecache", r.sudo)
	}
	return script.New("%s%s makecache -y --refresh", r.sudo, r.tool)
}

func (r *dnfRenderer) installDebuginfo(opts Options, installables ...Installable) (script.Script, error) {
	packages := make([]Package, 0, len(installables))
	for _, installable := range installables {
		pkg, ok := installable.(Package)
		if !ok {
			return script.Script{}, errors.GeneralErrorf(
				"debuginfo installation requires package names, got '%s'.", installable)
		}
		packages = append(packages, pkg)
	}

	// Make sure the helper tool exists before calling it.
	bootstrap, err := r.install(Options{CheckFirst: true}, debuginfoInstallPath)
	if err != nil {
		return script.Script{}, err
	}

	extra := ""
	if opts.SkipMissing {
		// debuginfo-install understands --skip-broken across all three
		// generations.
		extra = "--skip-broken"
	}

	s := bootstrap.And(script.New("%sdebuginfo-install -y %s %s",
		r.sudo, extra, joinInstallables(installables...)))

	if !opts.SkipMissing {
		// A zero exit from debuginfo-install does not prove the packages
		// arrived; assert the post-condition explicitly.
		debugPackages := make([]string, 0, len(packages))
		for _, pkg := range packages {
			debugPackages = append(debugPackages, string(pkg)+"-debuginfo")
		}
		s = s.And(script.New("rpm -q %s", strings.Join(debugPackages, " ")))
	}

	return s, nil
}

func (r *dnfRenderer) presenceQueries(installables ...Installable) ([]presenceQuery, error) {
	queries := make([]presenceQuery, 0, len(installables))

	for _, installable := range installables {
		installable := installable
		queries = append(queries, presenceQuery{
			script: r.whatProvides(installable),
			classify: func(out guest.CommandOutput) map[Installable]bool {
				return map[Installable]bool{installable: out.ReturnCode == 0}
			},
		})
	}

	return queries, nil
}
