package pkgmanager

// Options configures package-manager operations.
type Options struct {
	// CheckFirst verifies current state before mutating: install is
	// skipped when the installables are already present, reinstall runs
	// only when they are.
	CheckFirst bool

	// SkipMissing keeps the operation successful when some installables
	// cannot be satisfied. Backends with a native "tolerate missing" flag
	// use it; the rest fall back to an unconditional-success tail.
	SkipMissing bool

	// AllowUntrusted permits packages with unverifiable signatures.
	// Honored by apk only.
	AllowUntrusted bool
}

// DefaultOptions returns the options applied when the caller has no
// preference: check first, fail on missing packages.
func DefaultOptions() Options {
	return Options{CheckFirst: true}
}
