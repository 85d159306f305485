package pkgmanager

import (
	"strings"

	"github.com/guestctl/guestctl/internal/errors"
	"github.com/guestctl/guestctl/internal/guest"
	"github.com/guestctl/guestctl/internal/script"
)

// rpmOstreeRenderer targets image-based, atomic guests. Installs layer
// packages onto the booted image with --apply-live; reinstall has no
// counterpart in the layering model and is rejected outright.
type rpmOstreeRenderer struct {
	sudo string
}

func newRpmOstreeRenderer(facts guest.Facts) *rpmOstreeRenderer {
	return &rpmOstreeRenderer{sudo: sudoPrefix(facts)}
}

// presenceScript queries the rpm database directly. Filesystem paths ask
// "which package owns this file" (rpm -qf); everything else resolves via
// whatprovides.
func (r *rpmOstreeRenderer) presenceScript(installables ...Installable) script.Script {
	var packages []string
	var s script.Script

	for _, installable := range installables {
		if path, ok := installable.(FileSystemPath); ok {
			s = s.And(script.New("rpm -qf %s", escapeInstallables(path)[0]))
			continue
		}
		packages = append(packages, escapeInstallables(installable)...)
	}

	if len(packages) > 0 {
		s = script.New("rpm -q --whatprovides %s", strings.Join(packages, " ")).And(s)
	}

	return s
}

func (r *rpmOstreeRenderer) install(opts Options, installables ...Installable) (script.Script, error) {
	s := script.New("%srpm-ostree install --apply-live --idempotent --allow-inactive --assumeyes  %s",
		r.sudo, joinInstallables(installables...))

	if opts.CheckFirst {
		s = r.presenceScript(installables...).Or(s)
	}

	if opts.SkipMissing {
		s = s.Or(script.True)
	}

	return s, nil
}

func (r *rpmOstreeRenderer) reinstall(opts Options, installables ...Installable) (script.Script, error) {
	return script.Script{}, errors.GeneralErrorf("rpm-ostree does not support reinstall operation.")
}

func (r *rpmOstreeRenderer) refreshMetadata() script.Script {
	return script.New("%srpm-ostree refresh-md --force", r.sudo)
}

func (r *rpmOstreeRenderer) installDebuginfo(opts Options, installables ...Installable) (script.Script, error) {
	return script.Script{}, errors.GeneralErrorf("There is no support for debuginfo packages in rpm-ostree.")
}

func (r *rpmOstreeRenderer) presenceQueries(installables ...Installable) ([]presenceQuery, error) {
	queries := make([]presenceQuery, 0, len(installables))

	for _, installable := range installables {
		installable := installable
		queries = append(queries, presenceQuery{
			script: r.presenceScript(installable),
			classify: func(out guest.CommandOutput) map[Installable]bool {
				return map[Installable]bool{installable: out.ReturnCode == 0}
			},
		})
	}

	return queries, nil
}
