package pkgmanager

import (
	"context"
	"errors"
	"testing"

	guestctlerrors "github.com/guestctl/guestctl/internal/errors"
	"github.com/guestctl/guestctl/internal/guest"
)

func TestNewUnknownBackend(t *testing.T) {
	_, err := New(guest.NewMockGuest("test-guest"), Name("pacman"))
	if err == nil {
		t.Fatal("expected error")
	}

	var generalErr *guestctlerrors.GeneralError
	if !errors.As(err, &generalErr) {
		t.Errorf("expected GeneralError, got %T", err)
	}
}

func TestNames(t *testing.T) {
	want := []Name{NameDnf5, NameDnf, NameYum, NameApt, NameRpmOstree, NameApk}

	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("Names()[%d] = %s, want %s", i, got[i], name)
		}
	}
}

func TestCheckPresencePropagatesTransportErrors(t *testing.T) {
	g := guest.NewMockGuest("test-guest")
	g.ExecuteErr = errors.New("connection lost")

	manager, err := New(g, NameDnf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := manager.CheckPresence(context.Background(), Package("tree")); err == nil {
		t.Fatal("transport errors must not be classified as absence")
	}
}

func TestInstallReturnsRunError(t *testing.T) {
	g := guest.NewMockGuest("test-guest")
	g.SetResult("rpm -q --whatprovides tree-but-spelled-wrong || dnf install -y  tree-but-spelled-wrong",
		guest.CommandOutput{
			Stderr:     "Error: Unable to find a match: tree-but-spelled-wrong\n",
			ReturnCode: 1,
		})

	manager, err := New(g, NameDnf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = manager.Install(context.Background(), DefaultOptions(), Package("tree-but-spelled-wrong"))
	if err == nil {
		t.Fatal("expected error")
	}

	var runErr *guestctlerrors.RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected RunError, got %T", err)
	}
	if runErr.ReturnCode != 1 {
		t.Errorf("return code = %d, want 1", runErr.ReturnCode)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := DefaultOptions()

	if !opts.CheckFirst {
		t.Error("CheckFirst should default to true")
	}
	if opts.SkipMissing {
		t.Error("SkipMissing should default to false")
	}
	if opts.AllowUntrusted {
		t.Error("AllowUntrusted should default to false")
	}
}

func TestEscapeInstallables(t *testing.T) {
	tokens := escapeInstallables(Package("tree"), Package("weird name"), FileSystemPath("/usr/bin/flock"))

	want := []string{"tree", "'weird name'", "/usr/bin/flock"}
	for i, token := range want {
		if tokens[i] != token {
			t.Errorf("token %d = %q, want %q", i, tokens[i], token)
		}
	}
}
