package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetup_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected 'test message' in output, got: %s", output)
	}
}

func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, true, &buf)

	Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "{") {
		t.Errorf("Expected JSON output, got: %s", output)
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected 'test message' in output, got: %s", output)
	}
}

func TestSetup_VerboseMode(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)

	if !Verbose {
		t.Error("Verbose flag should be true after Setup(true, ...)")
	}

	Debug("debug message")

	output := buf.String()
	if !strings.Contains(output, "debug message") {
		t.Errorf("Debug message should appear in verbose mode, got: %s", output)
	}
}

func TestSetup_QuietDebug(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Debug("hidden message")

	if strings.Contains(buf.String(), "hidden message") {
		t.Errorf("Debug message should not appear without verbose, got: %s", buf.String())
	}
}

func TestDiscoveryLine_ExactMessage(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Info("Discovered package managers: dnf and yum")

	if !strings.Contains(buf.String(), "Discovered package managers: dnf and yum") {
		t.Errorf("discovery line missing from output: %s", buf.String())
	}
}
