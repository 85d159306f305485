package testutil

import (
	"embed"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/guestctl/guestctl/internal/config"
	"github.com/guestctl/guestctl/internal/guest"
	"github.com/guestctl/guestctl/internal/plan"
	"github.com/guestctl/guestctl/internal/script"
)

//go:embed fixtures/*.toml fixtures/*.yaml
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadConfigFixture loads a config fixture without validating it.
func LoadConfigFixture(name string) (*config.Config, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidConfig returns the valid config fixture.
func ValidConfig() (*config.Config, error) {
	return LoadConfigFixture("valid_config.toml")
}

// InvalidConfig returns a config fixture that must fail validation.
func InvalidConfig() (*config.Config, error) {
	return LoadConfigFixture("invalid_config.toml")
}

// ValidPlan returns the valid plan fixture.
func ValidPlan() (*plan.Plan, error) {
	data, err := LoadFixture("valid_plan.yaml")
	if err != nil {
		return nil, err
	}
	var p plan.Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// NewGuestWithBackends returns a mock guest that answers the discovery
// probe by claiming the given backends are installed. All other scripts
// succeed with empty output.
func NewGuestWithBackends(name string, backends ...string) *guest.MockGuest {
	g := guest.NewMockGuest(name)
	stdout := strings.Join(backends, "\n") + "\n"

	g.Respond = func(s script.Script) guest.CommandOutput {
		if strings.Contains(s.String(), "echo dnf5") {
			return guest.CommandOutput{Stdout: stdout}
		}
		return guest.CommandOutput{}
	}

	return g
}
