package pkgmanager

import (
	"fmt"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// Installable identifies something to install or check: a package name, a
// filesystem path whose owning package is unknown, or a package archive
// already staged on the guest. Installables are immutable values identified
// by their rendered string, so they can be used as map keys in presence
// check results.
type Installable interface {
	fmt.Stringer

	// installable seals the variant set to the three kinds above.
	installable()
}

// Package is a package name known to the backend's repository metadata.
type Package string

func (p Package) String() string { return string(p) }
func (Package) installable()     {}

// FileSystemPath is an absolute path on the guest whose owning package is
// resolved by the backend ("which package provides this file").
type FileSystemPath string

func (p FileSystemPath) String() string { return string(p) }
func (FileSystemPath) installable()     {}

// PackagePath is a package archive already staged on the guest filesystem,
// installed directly without repository lookup.
type PackagePath string

func (p PackagePath) String() string { return string(p) }
func (PackagePath) installable()     {}

// escapeInstallables renders installables as shell-safe argument tokens.
func escapeInstallables(installables ...Installable) []string {
	tokens := make([]string, 0, len(installables))
	for _, installable := range installables {
		tokens = append(tokens, shellquote.Join(installable.String()))
	}
	return tokens
}

// joinInstallables renders installables as a single space-separated
// argument list.
func joinInstallables(installables ...Installable) string {
	return strings.Join(escapeInstallables(installables...), " ")
}
