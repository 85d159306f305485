package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/guestctl/guestctl/internal/pkgmanager"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writePlan(t, `
name: smoke
guests:
  - fedora-41
  - alpine
refresh_metadata: true
install:
  packages:
    - tree
    - nano
  paths:
    - /usr/bin/flock
  skip_missing: true
debuginfo:
  - tree
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if p.Name != "smoke" {
		t.Errorf("name = %q", p.Name)
	}
	if len(p.Guests) != 2 {
		t.Errorf("guests = %v", p.Guests)
	}
	if !p.RefreshMetadata {
		t.Error("refresh_metadata should be true")
	}

	installables := p.Installables()
	want := []pkgmanager.Installable{
		pkgmanager.Package("tree"),
		pkgmanager.Package("nano"),
		pkgmanager.FileSystemPath("/usr/bin/flock"),
	}
	if len(installables) != len(want) {
		t.Fatalf("installables = %v", installables)
	}
	for i, installable := range want {
		if installables[i] != installable {
			t.Errorf("installable %d = %v, want %v", i, installables[i], installable)
		}
	}

	opts := p.Options()
	if !opts.CheckFirst {
		t.Error("CheckFirst should default to true")
	}
	if !opts.SkipMissing {
		t.Error("SkipMissing should carry over")
	}
}

func TestLoadCheckFirstOverride(t *testing.T) {
	path := writePlan(t, `
name: forced
guests: [g1]
install:
  packages: [tree]
  check_first: false
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if p.Options().CheckFirst {
		t.Error("CheckFirst should be overridden to false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		plan  Plan
		valid bool
	}{
		{
			name: "minimal install",
			plan: Plan{
				Name:    "p",
				Guests:  []string{"g1"},
				Install: InstallSpec{Packages: []string{"tree"}},
			},
			valid: true,
		},
		{
			name:  "refresh only",
			plan:  Plan{Name: "p", Guests: []string{"g1"}, RefreshMetadata: true},
			valid: true,
		},
		{
			name: "missing name",
			plan: Plan{Guests: []string{"g1"}, RefreshMetadata: true},
		},
		{
			name: "no guests",
			plan: Plan{Name: "p", RefreshMetadata: true},
		},
		{
			name: "nothing to do",
			plan: Plan{Name: "p", Guests: []string{"g1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writePlan(t, "name: [unclosed")

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
