package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/guestctl/guestctl/internal/errors"
)

// guestNameRegex validates guest names.
// Names must start with a lowercase letter or digit, followed by lowercase
// letters, digits, underscores, or hyphens. Maximum length is 63 characters
// (common container name limit).
var guestNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

// ValidateGuestName checks if a guest name is valid.
func ValidateGuestName(name string) error {
	if name == "" {
		return errors.ValidationError("guest name cannot be empty")
	}

	if !guestNameRegex.MatchString(name) {
		return errors.ValidationError(fmt.Sprintf(
			"invalid guest name %q: must start with a lowercase letter or digit, contain only lowercase letters, digits, underscores, or hyphens, and be at most 63 characters",
			name))
	}

	return nil
}

// Guest kinds.
const (
	KindLocal     = "local"
	KindContainer = "container"
	KindSSH       = "ssh"
)

// DefaultStagingDir is where pushed package archives land on guests.
const DefaultStagingDir = "/var/tmp/guestctl"

// GuestConfig describes how to reach one guest.
type GuestConfig struct {
	Name string `toml:"name"`
	Kind string `toml:"kind"`

	// SSH guests.
	Host         string `toml:"host"`
	User         string `toml:"user"`
	Port         int    `toml:"port"`
	IdentityFile string `toml:"identity_file"`

	// Container guests.
	Runtime   string `toml:"runtime"`
	Container string `toml:"container"`
}

// Config is the top-level guestctl configuration.
type Config struct {
	// DefaultGuest names the guest used when no --guest flag is given.
	DefaultGuest string `toml:"default_guest"`

	// StagingDir receives pushed package archives on guests.
	StagingDir string `toml:"staging_dir"`

	Guests []GuestConfig `toml:"guests"`
}

// DefaultConfig returns the configuration used when no config file exists:
// a single local guest.
func DefaultConfig() *Config {
	return &Config{
		DefaultGuest: "localhost",
		StagingDir:   DefaultStagingDir,
		Guests: []GuestConfig{
			{Name: "localhost", Kind: KindLocal},
		},
	}
}

// Path returns the config file location: $GUESTCTL_CONFIG when set,
// otherwise ~/.config/guestctl/config.toml.
func Path() string {
	if path := os.Getenv("GUESTCTL_CONFIG"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "guestctl", "config.toml")
}

// Load reads the config file at path. A missing file is not an error; the
// defaults apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.ConfigError(fmt.Sprintf("failed to read config file %s", path), err)
	}

	// A config file replaces the default guest list entirely.
	cfg.Guests = nil

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse config file %s", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every guest entry for a usable kind and connection
// details, applying per-kind defaults (SSH port 22, podman runtime).
func (c *Config) Validate() error {
	if c.StagingDir == "" {
		c.StagingDir = DefaultStagingDir
	}

	seen := make(map[string]bool, len(c.Guests))

	for i := range c.Guests {
		g := &c.Guests[i]

		if err := ValidateGuestName(g.Name); err != nil {
			return err
		}
		if seen[g.Name] {
			return errors.ValidationError(fmt.Sprintf("duplicate guest name %q", g.Name))
		}
		seen[g.Name] = true

		switch g.Kind {
		case KindLocal:

		case KindSSH:
			if g.Host == "" {
				return errors.ValidationError(fmt.Sprintf("guest %q: ssh guests require a host", g.Name))
			}
			if g.Port == 0 {
				g.Port = 22
			}
			if g.User == "" {
				g.User = "root"
			}

		case KindContainer:
			if g.Runtime == "" {
				g.Runtime = "podman"
			}
			if g.Runtime != "podman" && g.Runtime != "docker" {
				return errors.ValidationError(fmt.Sprintf("guest %q: unknown container runtime %q", g.Name, g.Runtime))
			}
			if g.Container == "" {
				g.Container = g.Name
			}

		case "":
			return errors.ValidationError(fmt.Sprintf("guest %q: kind is required", g.Name))

		default:
			return errors.ValidationError(fmt.Sprintf("guest %q: unknown kind %q", g.Name, g.Kind))
		}
	}

	if c.DefaultGuest != "" && len(c.Guests) > 0 && !seen[c.DefaultGuest] {
		return errors.ValidationError(fmt.Sprintf("default guest %q is not defined", c.DefaultGuest))
	}

	return nil
}

// Lookup returns the named guest entry.
func (c *Config) Lookup(name string) (GuestConfig, error) {
	for _, g := range c.Guests {
		if g.Name == name {
			return g, nil
		}
	}
	return GuestConfig{}, errors.ConfigError(fmt.Sprintf("guest %q is not defined", name), nil)
}
