// Package pkgmanager provides a uniform contract over the package
// managers found on guest systems.
//
// Six backends are supported: dnf5, dnf, yum, apt, rpm-ostree and apk.
// They disagree on command syntax, on how success and failure are
// signaled, and on which operations exist at all; this package hides the
// differences behind one facade with five operations:
//   - Install, Reinstall: mutate the guest's package set
//   - CheckPresence: query without mutating
//   - RefreshMetadata: refresh the backend's cache
//   - InstallDebuginfo: install debug-symbol packages (RPM family only)
//
// # Installables
//
// Operations accept three kinds of arguments: Package (a plain name),
// FileSystemPath (resolved to the owning package by the backend) and
// PackagePath (a local package file). The set is closed; see Installable.
//
// # Discovery
//
// Discovery probes a guest for all usable backends in a single round
// trip and selects the most preferred one as active:
//
//	discovery := pkgmanager.NewDiscovery()
//	manager, err := discovery.Manager(ctx, g)
//	if err != nil {
//	    return err
//	}
//	out, err := manager.Install(ctx, pkgmanager.DefaultOptions(), pkgmanager.Package("tree"))
//
// Selections are cached per guest. After installing a backend that was
// absent during the first probe, call Rediscover to make it eligible.
//
// # Script rendering
//
// Each backend turns an operation into a single shell script executed on
// the guest via the guest.Guest contract. With Options.CheckFirst the
// script guards the mutating command behind a presence query, so a
// satisfied request is a cheap no-op on the guest.
package pkgmanager
