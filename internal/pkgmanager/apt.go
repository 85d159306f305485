package pkgmanager

import (
	"fmt"
	"strings"

	"github.com/guestctl/guestctl/internal/errors"
	"github.com/guestctl/guestctl/internal/guest"
	"github.com/guestctl/guestctl/internal/script"
)

// presenceMarker prefixes the echo lines emitted by apt presence checks.
// dpkg-query has no stable per-package exit code when queried in bulk, so
// the result is smuggled through stdout and parsed line by line.
const presenceMarker = "PRESENCE-TEST"

// aptRenderer targets Debian-family guests. Scripts run dpkg-query and
// apt with DEBIAN_FRONTEND=noninteractive, and resolve filesystem paths
// to owning packages through apt-file at execution time, since the
// mapping cannot be known locally.
type aptRenderer struct {
	sudo string
}

func newAptRenderer(facts guest.Facts) *aptRenderer {
	return &aptRenderer{sudo: sudoPrefix(facts)}
}

// stageInstallables renders the preamble that collects all installables
// into the installable_packages shell variable. Plain packages are
// inlined; filesystem paths are resolved via apt-file on the guest, and
// an unresolvable path aborts the script with exit code 1.
func (r *aptRenderer) stageInstallables(installables ...Installable) []string {
	packages := make([]string, 0, len(installables))
	var paths []FileSystemPath

	for _, installable := range installables {
		if path, ok := installable.(FileSystemPath); ok {
			paths = append(paths, path)
			continue
		}
		packages = append(packages, escapeInstallables(installable)...)
	}

	lines := []string{
		"set -x",
		"export DEBIAN_FRONTEND=noninteractive",
		fmt.Sprintf(`installable_packages="%s"`, strings.Join(packages, " ")),
	}

	for _, path := range paths {
		lines = append(lines,
			fmt.Sprintf(`fs_path_package="$(apt-file search --package-only %s)"`, path),
			fmt.Sprintf(`[ -z "$fs_path_package" ] && echo "No package found for path %s" && exit 1`, path),
			`installable_packages="$installable_packages $fs_path_package"`,
		)
	}

	return lines
}

func (r *aptRenderer) install(opts Options, installables ...Installable) (script.Script, error) {
	extra := ""
	exit := "exit $?"
	if opts.SkipMissing {
		extra = "--ignore-missing"
		exit = "exit 0"
	}

	// Without the presence guard the install must always run, hence the
	// /bin/false stand-in on the left side of the ||.
	guard := `/bin/false \`
	if opts.CheckFirst {
		guard = `dpkg-query --show $installable_packages \`
	}

	lines := r.stageInstallables(installables...)
	lines = append(lines,
		guard,
		fmt.Sprintf(`|| %sapt install -y %s $installable_packages`, r.sudo, extra),
		exit,
	)

	return script.Lines(lines...), nil
}

func (r *aptRenderer) reinstall(opts Options, installables ...Installable) (script.Script, error) {
	extra := ""
	exit := "exit $?"
	if opts.SkipMissing {
		extra = "--ignore-missing"
		exit = "exit 0"
	}

	guard := `/bin/true \`
	if opts.CheckFirst {
		guard = `dpkg-query --show $installable_packages \`
	}

	lines := r.stageInstallables(installables...)
	lines = append(lines,
		guard,
		fmt.Sprintf(`&& %sapt reinstall -y %s $installable_packages`, r.sudo, extra),
		exit,
	)

	return script.Lines(lines...), nil
}

func (r *aptRenderer) refreshMetadata() script.Script {
	return script.New("export DEBIAN_FRONTEND=noninteractive; %sapt update", r.sudo)
}

func (r *aptRenderer) installDebuginfo(opts Options, installables ...Installable) (script.Script, error) {
	return script.Script{}, errors.GeneralErrorf("There is no support for debuginfo packages in apt.")
}

// presenceQueries emits one marker echo per installable. Each line has
// the shape "PRESENCE-TEST:<installable>:<resolved>:<dpkg-query output>";
// the installable is present exactly when the final field is non-empty.
// The echo itself always succeeds, so absence never shows up as a nonzero
// exit code.
func (r *aptRenderer) presenceQueries(installables ...Installable) ([]presenceQuery, error) {
	queries := make([]presenceQuery, 0, len(installables))

	for _, installable := range installables {
		installable := installable

		lines := []string{
			"set -x",
			"export DEBIAN_FRONTEND=noninteractive",
		}

		if path, ok := installable.(FileSystemPath); ok {
			lines = append(lines,
				fmt.Sprintf(`fs_path_package="$(apt-file search --package-only %s)"`, path),
				fmt.Sprintf(`echo "%s:%s:${fs_path_package}:$(dpkg-query --show $fs_path_package)"`,
					presenceMarker, path),
			)
		} else {
			lines = append(lines,
				fmt.Sprintf(`echo "%s:%s:%s:$(dpkg-query --show %s)"`,
					presenceMarker, installable, installable, installable),
			)
		}

		queries = append(queries, presenceQuery{
			script: script.Lines(lines...),
			classify: func(out guest.CommandOutput) map[Installable]bool {
				marker := fmt.Sprintf("%s:%s:", presenceMarker, installable)
				present := false

				for _, line := range strings.Split(out.Stdout, "\n") {
					if !strings.HasPrefix(line, marker) {
						continue
					}
					fields := strings.SplitN(strings.TrimPrefix(line, marker), ":", 2)
					present = len(fields) == 2 && strings.TrimSpace(fields[1]) != ""
					break
				}

				return map[Installable]bool{installable: present}
			},
		})
	}

	return queries, nil
}
