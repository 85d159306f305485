package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/guestctl/guestctl/internal/errors"
	"github.com/guestctl/guestctl/internal/pkgmanager"
)

// Plan is a preparation plan: which guests to prepare and what to install
// on them. Plans are plain YAML files, one plan per file.
type Plan struct {
	Name   string   `yaml:"name"`
	Guests []string `yaml:"guests"`

	// RefreshMetadata refreshes the backend cache before installing.
	RefreshMetadata bool `yaml:"refresh_metadata"`

	Install InstallSpec `yaml:"install"`

	// Debuginfo lists packages whose debug symbols are installed after
	// the regular install step.
	Debuginfo []string `yaml:"debuginfo"`
}

// InstallSpec lists what to install and how.
type InstallSpec struct {
	Packages []string `yaml:"packages"`
	Paths    []string `yaml:"paths"`
	Archives []string `yaml:"archives"`

	SkipMissing    bool `yaml:"skip_missing"`
	AllowUntrusted bool `yaml:"allow_untrusted"`

	// CheckFirst defaults to true when omitted.
	CheckFirst *bool `yaml:"check_first"`
}

// Load reads and validates a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.PlanError(fmt.Sprintf("failed to read plan file %s", path), err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.PlanError(fmt.Sprintf("failed to parse plan file %s", path), err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Validate checks the plan for a name, at least one guest and at least one
// action.
func (p *Plan) Validate() error {
	if p.Name == "" {
		return errors.ValidationError("plan name is required")
	}
	if len(p.Guests) == 0 {
		return errors.ValidationError(fmt.Sprintf("plan %q lists no guests", p.Name))
	}

	hasInstall := len(p.Install.Packages) > 0 || len(p.Install.Paths) > 0 || len(p.Install.Archives) > 0
	if !hasInstall && len(p.Debuginfo) == 0 && !p.RefreshMetadata {
		return errors.ValidationError(fmt.Sprintf("plan %q has nothing to do", p.Name))
	}

	return nil
}

// Installables converts the install spec into package-manager arguments.
func (p *Plan) Installables() []pkgmanager.Installable {
	installables := make([]pkgmanager.Installable, 0,
		len(p.Install.Packages)+len(p.Install.Paths)+len(p.Install.Archives))

	for _, name := range p.Install.Packages {
		installables = append(installables, pkgmanager.Package(name))
	}
	for _, path := range p.Install.Paths {
		installables = append(installables, pkgmanager.FileSystemPath(path))
	}
	for _, path := range p.Install.Archives {
		installables = append(installables, pkgmanager.PackagePath(path))
	}

	return installables
}

// DebuginfoInstallables converts the debuginfo list into package-manager
// arguments.
func (p *Plan) DebuginfoInstallables() []pkgmanager.Installable {
	installables := make([]pkgmanager.Installable, 0, len(p.Debuginfo))
	for _, name := range p.Debuginfo {
		installables = append(installables, pkgmanager.Package(name))
	}
	return installables
}

// Options converts the install spec into package-manager options.
func (p *Plan) Options() pkgmanager.Options {
	opts := pkgmanager.DefaultOptions()
	if p.Install.CheckFirst != nil {
		opts.CheckFirst = *p.Install.CheckFirst
	}
	opts.SkipMissing = p.Install.SkipMissing
	opts.AllowUntrusted = p.Install.AllowUntrusted
	return opts
}
