package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guestctl/guestctl/internal/config"
	"github.com/guestctl/guestctl/internal/errors"
	"github.com/guestctl/guestctl/internal/guest"
	"github.com/guestctl/guestctl/internal/pkgmanager"
)

// discovery caches backend probes across commands within one invocation.
var discovery = pkgmanager.NewDiscovery()

// Shared operation flags; each command registers the subset it supports.
var (
	skipMissing    bool
	noCheckFirst   bool
	allowUntrusted bool
)

func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&skipMissing, "skip-missing", false, "Succeed even when some packages cannot be found")
	cmd.Flags().BoolVar(&noCheckFirst, "no-check-first", false, "Skip the presence check before mutating")
}

func buildOptions() pkgmanager.Options {
	opts := pkgmanager.DefaultOptions()
	opts.CheckFirst = !noCheckFirst
	opts.SkipMissing = skipMissing
	opts.AllowUntrusted = allowUntrusted
	return opts
}

// loadConfig reads the config file named by --config, falling back to the
// default location.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.Path()
	}
	return config.Load(path)
}

// selectGuest resolves --guest (or the config default) to a guest entry.
func selectGuest(cfg *config.Config) (config.GuestConfig, error) {
	name := guestName
	if name == "" {
		name = cfg.DefaultGuest
	}
	if name == "" {
		return config.GuestConfig{}, errors.ValidationError("no guest selected: pass --guest or set default_guest in the config")
	}
	return cfg.Lookup(name)
}

// buildGuest turns a config entry into a connected guest.
func buildGuest(cfg *config.Config, gc config.GuestConfig) (guest.Guest, error) {
	switch gc.Kind {
	case config.KindLocal:
		g := guest.NewLocalGuest(gc.Name)
		g.StagingDir = cfg.StagingDir
		return g, nil

	case config.KindContainer:
		return guest.NewContainerGuest(gc.Runtime, gc.Container), nil

	case config.KindSSH:
		options := guest.DefaultSSHOptions(gc.Host)
		options.User = gc.User
		options.Port = gc.Port
		options.IdentityFile = gc.IdentityFile
		return guest.NewSSHGuest(gc.Name, options), nil

	default:
		return nil, errors.ConfigError(fmt.Sprintf("guest %q has unknown kind %q", gc.Name, gc.Kind), nil)
	}
}

// getGuest resolves config and flags to the guest the command targets.
func getGuest() (guest.Guest, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	gc, err := selectGuest(cfg)
	if err != nil {
		return nil, nil, err
	}

	g, err := buildGuest(cfg, gc)
	if err != nil {
		return nil, nil, err
	}

	return g, cfg, nil
}

// getManager resolves the target guest and discovers its backend.
func getManager(cmd *cobra.Command) (*pkgmanager.PackageManager, guest.Guest, error) {
	g, _, err := getGuest()
	if err != nil {
		return nil, nil, err
	}

	manager, err := discovery.Manager(cmd.Context(), g)
	if err != nil {
		return nil, nil, err
	}

	return manager, g, nil
}

// parseInstallables classifies command-line arguments: absolute paths
// ending in a package-archive suffix are staged archives, other absolute
// paths are filesystem paths to resolve, everything else is a package
// name.
func parseInstallables(args []string) []pkgmanager.Installable {
	installables := make([]pkgmanager.Installable, 0, len(args))

	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "/") && isArchive(arg):
			installables = append(installables, pkgmanager.PackagePath(arg))
		case strings.HasPrefix(arg, "/"):
			installables = append(installables, pkgmanager.FileSystemPath(arg))
		default:
			installables = append(installables, pkgmanager.Package(arg))
		}
	}

	return installables
}

func isArchive(path string) bool {
	for _, suffix := range []string{".rpm", ".deb", ".apk"} {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// packageArgs converts arguments to plain package names, for operations
// that accept nothing else.
func packageArgs(args []string) []pkgmanager.Installable {
	installables := make([]pkgmanager.Installable, 0, len(args))
	for _, arg := range args {
		installables = append(installables, pkgmanager.Package(arg))
	}
	return installables
}
