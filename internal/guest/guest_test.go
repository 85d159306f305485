package guest

import (
	"context"
	"testing"

	"github.com/guestctl/guestctl/internal/errors"
	"github.com/guestctl/guestctl/internal/script"
	"github.com/guestctl/guestctl/internal/system"
)

func TestContainerGuest_Execute(t *testing.T) {
	executor := system.NewMockExecutor()
	executor.SetResult("podman exec fedora-1 /bin/bash -c apk update", system.Result{
		Stdout: []byte("OK: 17 distinct packages available\n"),
	})

	g := NewContainerGuest("podman", "fedora-1").WithExecutor(executor)

	output, err := g.Execute(context.Background(), script.New("apk update"))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if output.Stdout != "OK: 17 distinct packages available\n" {
		t.Errorf("Stdout = %q", output.Stdout)
	}
	if output.ReturnCode != 0 {
		t.Errorf("ReturnCode = %d, want 0", output.ReturnCode)
	}
}

func TestContainerGuest_Execute_NonzeroExit(t *testing.T) {
	executor := system.NewMockExecutor()
	executor.Default = system.Result{
		Stderr:   []byte("No match for argument: tree-but-spelled-wrong\n"),
		ExitCode: 1,
	}

	g := NewContainerGuest("podman", "fedora-1").WithExecutor(executor)

	output, err := g.Execute(context.Background(), script.New("dnf install -y  tree-but-spelled-wrong"))
	if err == nil {
		t.Fatal("Execute() should fail for nonzero exit")
	}

	var runErr *errors.RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("error type = %T, want *errors.RunError", err)
	}
	if runErr.ReturnCode != 1 {
		t.Errorf("ReturnCode = %d, want 1", runErr.ReturnCode)
	}
	if runErr.Command != "dnf install -y  tree-but-spelled-wrong" {
		t.Errorf("Command = %q", runErr.Command)
	}
	if runErr.Stderr != "No match for argument: tree-but-spelled-wrong\n" {
		t.Errorf("Stderr = %q", runErr.Stderr)
	}

	// Output is still populated alongside the error.
	if output.ReturnCode != 1 {
		t.Errorf("output.ReturnCode = %d, want 1", output.ReturnCode)
	}
}

func TestSSHGuest_Execute_QuotesScript(t *testing.T) {
	executor := system.NewMockExecutor()
	g := NewSSHGuest("web-1", DefaultSSHOptions("203.0.113.7")).WithExecutor(executor)

	_, err := g.Execute(context.Background(), script.New("rpm -q --whatprovides tree"))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	calls := executor.CallLines()
	if len(calls) != 1 {
		t.Fatalf("recorded %d calls, want 1", len(calls))
	}
	want := `ssh -p 22 -o ConnectTimeout=10 -o BatchMode=yes -o StrictHostKeyChecking=no -o UserKnownHostsFile=/dev/null root@203.0.113.7 /bin/bash -c 'rpm -q --whatprovides tree'`
	if calls[0] != want {
		t.Errorf("ssh call = %q\nwant       %q", calls[0], want)
	}
}

func TestMockGuest_RecordsAndClassifies(t *testing.T) {
	g := NewMockGuest("mock-1")
	g.SetResult("rpm -q --whatprovides tree", CommandOutput{
		Stdout:     "no package provides tree\n",
		ReturnCode: 1,
	})

	_, err := g.Execute(context.Background(), script.New("rpm -q --whatprovides tree"))

	var runErr *errors.RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("error type = %T, want *errors.RunError", err)
	}

	if g.LastScript() != "rpm -q --whatprovides tree" {
		t.Errorf("LastScript() = %q", g.LastScript())
	}
}
