package pkgmanager

import (
	"context"
	"strings"
	"testing"

	"github.com/guestctl/guestctl/internal/guest"
)

func TestAptInstall(t *testing.T) {
	tests := []struct {
		name         string
		opts         Options
		installables []Installable
		want         []string
	}{
		{
			name:         "default",
			opts:         DefaultOptions(),
			installables: []Installable{Package("tree")},
			want: []string{
				"set -x",
				"export DEBIAN_FRONTEND=noninteractive",
				`installable_packages="tree"`,
				`dpkg-query --show $installable_packages \`,
				"|| apt install -y  $installable_packages",
				"exit $?",
			},
		},
		{
			name:         "multiple packages",
			opts:         DefaultOptions(),
			installables: []Installable{Package("tree"), Package("nano")},
			want: []string{
				"set -x",
				"export DEBIAN_FRONTEND=noninteractive",
				`installable_packages="tree nano"`,
				`dpkg-query --show $installable_packages \`,
				"|| apt install -y  $installable_packages",
				"exit $?",
			},
		},
		{
			name:         "without presence check",
			opts:         Options{},
			installables: []Installable{Package("tree")},
			want: []string{
				"set -x",
				"export DEBIAN_FRONTEND=noninteractive",
				`installable_packages="tree"`,
				`/bin/false \`,
				"|| apt install -y  $installable_packages",
				"exit $?",
			},
		},
		{
			name:         "skip missing",
			opts:         Options{CheckFirst: true, SkipMissing: true},
			installables: []Installable{Package("tree-but-spelled-wrong")},
			want: []string{
				"set -x",
				"export DEBIAN_FRONTEND=noninteractive",
				`installable_packages="tree-but-spelled-wrong"`,
				`dpkg-query --show $installable_packages \`,
				"|| apt install -y --ignore-missing $installable_packages",
				"exit 0",
			},
		},
		{
			name:         "filesystem path resolved via apt-file",
			opts:         DefaultOptions(),
			installables: []Installable{FileSystemPath("/usr/bin/dos2unix")},
			want: []string{
				"set -x",
				"export DEBIAN_FRONTEND=noninteractive",
				`installable_packages=""`,
				`fs_path_package="$(apt-file search --package-only /usr/bin/dos2unix)"`,
				`[ -z "$fs_path_package" ] && echo "No package found for path /usr/bin/dos2unix" && exit 1`,
				`installable_packages="$installable_packages $fs_path_package"`,
				`dpkg-query --show $installable_packages \`,
				"|| apt install -y  $installable_packages",
				"exit $?",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, g := newTestManager(t, NameApt)

			if _, err := manager.Install(context.Background(), tt.opts, tt.installables...); err != nil {
				t.Fatalf("Install failed: %v", err)
			}

			want := strings.Join(tt.want, "\n")
			if got := g.LastScript(); got != want {
				t.Errorf("script mismatch:\n got: %s\nwant: %s", got, want)
			}
		})
	}
}

func TestAptReinstall(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "default",
			opts: DefaultOptions(),
			want: []string{
				"set -x",
				"export DEBIAN_FRONTEND=noninteractive",
				`installable_packages="tar"`,
				`dpkg-query --show $installable_packages \`,
				"&& apt reinstall -y  $installable_packages",
				"exit $?",
			},
		},
		{
			name: "without presence check",
			opts: Options{},
			want: []string{
				"set -x",
				"export DEBIAN_FRONTEND=noninteractive",
				`installable_packages="tar"`,
				`/bin/true \`,
				"&& apt reinstall -y  $installable_packages",
				"exit $?",
			},
		},
		{
			name: "skip missing",
			opts: Options{CheckFirst: true, SkipMissing: true},
			want: []string{
				"set -x",
				"export DEBIAN_FRONTEND=noninteractive",
				`installable_packages="tar"`,
				`dpkg-query --show $installable_packages \`,
				"&& apt reinstall -y --ignore-missing $installable_packages",
				"exit 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, g := newTestManager(t, NameApt)

			if _, err := manager.Reinstall(context.Background(), tt.opts, Package("tar")); err != nil {
				t.Fatalf("Reinstall failed: %v", err)
			}

			want := strings.Join(tt.want, "\n")
			if got := g.LastScript(); got != want {
				t.Errorf("script mismatch:\n got: %s\nwant: %s", got, want)
			}
		})
	}
}

func TestAptRefreshMetadata(t *testing.T) {
	manager, g := newTestManager(t, NameApt)

	if _, err := manager.RefreshMetadata(context.Background()); err != nil {
		t.Fatalf("RefreshMetadata failed: %v", err)
	}

	want := "export DEBIAN_FRONTEND=noninteractive; apt update"
	if got := g.LastScript(); got != want {
		t.Errorf("script mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestAptInstallDebuginfoUnsupported(t *testing.T) {
	manager, g := newTestManager(t, NameApt)

	_, err := manager.InstallDebuginfo(context.Background(), DefaultOptions(), Package("tree"))
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "There is no support for debuginfo packages in apt." {
		t.Errorf("unexpected error message: %v", err)
	}
	if len(g.ExecutedScripts()) != 0 {
		t.Errorf("no script should run, got %v", g.ExecutedScripts())
	}
}

func TestAptCheckPresence(t *testing.T) {
	manager, g := newTestManager(t, NameApt)

	packageQuery := strings.Join([]string{
		"set -x",
		"export DEBIAN_FRONTEND=noninteractive",
		`echo "PRESENCE-TEST:util-linux:util-linux:$(dpkg-query --show util-linux)"`,
	}, "\n")
	missingQuery := strings.Join([]string{
		"set -x",
		"export DEBIAN_FRONTEND=noninteractive",
		`echo "PRESENCE-TEST:tree-but-spelled-wrong:tree-but-spelled-wrong:$(dpkg-query --show tree-but-spelled-wrong)"`,
	}, "\n")
	pathQuery := strings.Join([]string{
		"set -x",
		"export DEBIAN_FRONTEND=noninteractive",
		`fs_path_package="$(apt-file search --package-only /usr/bin/flock)"`,
		`echo "PRESENCE-TEST:/usr/bin/flock:${fs_path_package}:$(dpkg-query --show $fs_path_package)"`,
	}, "\n")

	// dpkg-query output lands in the marker line's final field; absence
	// leaves the field empty while the echo itself still exits zero.
	g.SetResult(packageQuery, guest.CommandOutput{
		Stdout: "PRESENCE-TEST:util-linux:util-linux:util-linux\t2.40.2-4\n",
	})
	g.SetResult(missingQuery, guest.CommandOutput{
		Stdout: "PRESENCE-TEST:tree-but-spelled-wrong:tree-but-spelled-wrong:\n",
		Stderr: "dpkg-query: no packages found matching tree-but-spelled-wrong\n",
	})
	g.SetResult(pathQuery, guest.CommandOutput{
		Stdout: "PRESENCE-TEST:/usr/bin/flock:util-linux:util-linux\t2.40.2-4\n",
	})

	present, err := manager.CheckPresence(context.Background(),
		Package("util-linux"), Package("tree-but-spelled-wrong"), FileSystemPath("/usr/bin/flock"))
	if err != nil {
		t.Fatalf("CheckPresence failed: %v", err)
	}

	if !present[Package("util-linux")] {
		t.Error("util-linux should be present")
	}
	if present[Package("tree-but-spelled-wrong")] {
		t.Error("tree-but-spelled-wrong should be absent")
	}
	if !present[FileSystemPath("/usr/bin/flock")] {
		t.Error("/usr/bin/flock should be present")
	}
}
