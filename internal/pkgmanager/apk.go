package pkgmanager

import (
	"strings"

	"github.com/guestctl/guestctl/internal/errors"
	"github.com/guestctl/guestctl/internal/guest"
	"github.com/guestctl/guestctl/internal/script"
)

// alpinePathPackages maps filesystem paths to the Alpine packages that
// provide them. Alpine has no reliable "which package owns this file"
// query for packages that are not yet installed (apk-file exists but is
// unreliable), so only this fixed set of paths is resolvable.
var alpinePathPackages = map[FileSystemPath]Package{
	"/usr/bin/awk":      "gawk",
	"/usr/bin/arch":     "busybox",
	"/usr/bin/flock":    "flock",
	"/usr/bin/python3":  "python3",
	"/usr/bin/dos2unix": "dos2unix",
}

// apkRenderer targets Alpine guests.
type apkRenderer struct {
	sudo string
}

func newApkRenderer(facts guest.Facts) *apkRenderer {
	return &apkRenderer{sudo: sudoPrefix(facts)}
}

// reduce replaces filesystem paths with the packages providing them;
// other installables pass through unchanged.
func (r *apkRenderer) reduce(installables ...Installable) ([]Installable, error) {
	reduced := make([]Installable, 0, len(installables))

	for _, installable := range installables {
		path, ok := installable.(FileSystemPath)
		if !ok {
			reduced = append(reduced, installable)
			continue
		}

		pkg, ok := alpinePathPackages[path]
		if !ok {
			return nil, errors.GeneralErrorf("Unsupported package path '%s' for Alpine Linux.", path)
		}
		reduced = append(reduced, pkg)
	}

	return reduced, nil
}

func (r *apkRenderer) presenceScript(reduced ...Installable) script.Script {
	return script.New("apk info -e %s", joinInstallables(reduced...))
}

func (r *apkRenderer) install(opts Options, installables ...Installable) (script.Script, error) {
	reduced, err := r.reduce(installables...)
	if err != nil {
		return script.Script{}, err
	}

	untrusted := ""
	if opts.AllowUntrusted {
		untrusted = "--allow-untrusted "
	}

	s := script.New("%sapk add %s%s", r.sudo, untrusted, joinInstallables(reduced...))

	if opts.CheckFirst {
		s = r.presenceScript(reduced...).Or(s)
	}

	if opts.SkipMissing {
		s = s.Or(script.True)
	}

	return s, nil
}

func (r *apkRenderer) reinstall(opts Options, installables ...Installable) (script.Script, error) {
	reduced, err := r.reduce(installables...)
	if err != nil {
		return script.Script{}, err
	}

	s := script.New("%sapk fix %s", r.sudo, joinInstallables(reduced...))

	if opts.CheckFirst {
		s = r.presenceScript(reduced...).And(s)
	}

	if opts.SkipMissing {
		s = s.Or(script.True)
	}

	return s, nil
}

func (r *apkRenderer) refreshMetadata() script.Script {
	return script.New("%sapk update", r.sudo)
}

func (r *apkRenderer) installDebuginfo(opts Options, installables ...Installable) (script.Script, error) {
	return script.Script{}, errors.GeneralErrorf("There is no support for debuginfo packages in apk.")
}

// presenceQueries issues a single combined apk query. apk info -e prints
// one line per installed package, so classification matches each reduced
// package name against the output lines.
func (r *apkRenderer) presenceQueries(installables ...Installable) ([]presenceQuery, error) {
	reduced, err := r.reduce(installables...)
	if err != nil {
		return nil, err
	}

	query := presenceQuery{
		script: r.presenceScript(reduced...),
		classify: func(out guest.CommandOutput) map[Installable]bool {
			installed := make(map[string]bool)
			for _, line := range strings.Split(out.Stdout, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					installed[line] = true
				}
			}

			results := make(map[Installable]bool, len(installables))
			for i, installable := range installables {
				results[installable] = installed[reduced[i].String()]
			}
			return results
		},
	}

	return []presenceQuery{query}, nil
}
