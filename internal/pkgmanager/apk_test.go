package pkgmanager

import (
	"context"
	"strings"
	"testing"

	"github.com/guestctl/guestctl/internal/guest"
)

func TestApkInstall(t *testing.T) {
	tests := []struct {
		name         string
		opts         Options
		installables []Installable
		want         string
	}{
		{
			name:         "default",
			opts:         DefaultOptions(),
			installables: []Installable{Package("tree")},
			want:         "apk info -e tree || apk add tree",
		},
		{
			name:         "without presence check",
			opts:         Options{},
			installables: []Installable{Package("tree")},
			want:         "apk add tree",
		},
		{
			name:         "skip missing",
			opts:         Options{CheckFirst: true, SkipMissing: true},
			installables: []Installable{Package("tree-but-spelled-wrong")},
			want:         "apk info -e tree-but-spelled-wrong || apk add tree-but-spelled-wrong || /bin/true",
		},
		{
			name:         "allow untrusted",
			opts:         Options{CheckFirst: true, AllowUntrusted: true},
			installables: []Installable{Package("tree")},
			want:         "apk info -e tree || apk add --allow-untrusted tree",
		},
		{
			name:         "filesystem path mapped to package",
			opts:         DefaultOptions(),
			installables: []Installable{FileSystemPath("/usr/bin/awk")},
			want:         "apk info -e gawk || apk add gawk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, g := newTestManager(t, NameApk)

			if _, err := manager.Install(context.Background(), tt.opts, tt.installables...); err != nil {
				t.Fatalf("Install failed: %v", err)
			}

			if got := g.LastScript(); got != tt.want {
				t.Errorf("script mismatch:\n got: %s\nwant: %s", got, tt.want)
			}
		})
	}
}

func TestApkInstallUnknownPath(t *testing.T) {
	manager, g := newTestManager(t, NameApk)

	_, err := manager.Install(context.Background(), DefaultOptions(), FileSystemPath("/usr/bin/unmapped"))
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Unsupported package path '/usr/bin/unmapped' for Alpine Linux." {
		t.Errorf("unexpected error message: %v", err)
	}
	if len(g.ExecutedScripts()) != 0 {
		t.Errorf("no script should run, got %v", g.ExecutedScripts())
	}
}

func TestApkReinstall(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "default",
			opts: DefaultOptions(),
			want: "apk info -e bash && apk fix bash",
		},
		{
			name: "without presence check",
			opts: Options{},
			want: "apk fix bash",
		},
		{
			name: "skip missing",
			opts: Options{CheckFirst: true, SkipMissing: true},
			want: "apk info -e bash && apk fix bash || /bin/true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, g := newTestManager(t, NameApk)

			if _, err := manager.Reinstall(context.Background(), tt.opts, Package("bash")); err != nil {
				t.Fatalf("Reinstall failed: %v", err)
			}

			if got := g.LastScript(); got != tt.want {
				t.Errorf("script mismatch:\n got: %s\nwant: %s", got, tt.want)
			}
		})
	}
}

func TestApkRefreshMetadata(t *testing.T) {
	manager, g := newTestManager(t, NameApk)

	if _, err := manager.RefreshMetadata(context.Background()); err != nil {
		t.Fatalf("RefreshMetadata failed: %v", err)
	}

	if got := g.LastScript(); got != "apk update" {
		t.Errorf("script mismatch: got %s", got)
	}
}

func TestApkInstallDebuginfoUnsupported(t *testing.T) {
	manager, _ := newTestManager(t, NameApk)

	_, err := manager.InstallDebuginfo(context.Background(), DefaultOptions(), Package("tree"))
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "There is no support for debuginfo packages in apk." {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestApkCheckPresence(t *testing.T) {
	manager, g := newTestManager(t, NameApk)

	// One combined query; installed packages echo their names on stdout,
	// missing ones complain on stderr and flip the exit code.
	g.SetResult("apk info -e busybox tree-but-spelled-wrong gawk", guest.CommandOutput{
		Stdout:     "busybox\ngawk\n",
		ReturnCode: 1,
	})

	present, err := manager.CheckPresence(context.Background(),
		Package("busybox"), Package("tree-but-spelled-wrong"), FileSystemPath("/usr/bin/awk"))
	if err != nil {
		t.Fatalf("CheckPresence failed: %v", err)
	}

	if !present[Package("busybox")] {
		t.Error("busybox should be present")
	}
	if present[Package("tree-but-spelled-wrong")] {
		t.Error("tree-but-spelled-wrong should be absent")
	}
	if !present[FileSystemPath("/usr/bin/awk")] {
		t.Error("/usr/bin/awk should be present via gawk")
	}

	if len(g.ExecutedScripts()) != 1 {
		t.Errorf("expected one combined query, got %v", g.ExecutedScripts())
	}
	if !strings.HasPrefix(g.LastScript(), "apk info -e ") {
		t.Errorf("unexpected query: %s", g.LastScript())
	}
}
