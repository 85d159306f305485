package guest

import (
	"context"
	"sync"

	"github.com/guestctl/guestctl/internal/errors"
	"github.com/guestctl/guestctl/internal/script"
)

// MockGuest is a scripted Guest implementation for testing. Results are
// keyed by the rendered script text; every executed script is recorded.
type MockGuest struct {
	mu sync.Mutex

	// GuestName is returned by Name().
	GuestName string

	// GuestFacts is returned by Facts().
	GuestFacts Facts

	// Results maps script text to predefined outputs.
	Results map[string]CommandOutput

	// Respond, when set, handles scripts with no entry in Results.
	Respond func(s script.Script) CommandOutput

	// ExecuteErr is returned from every call when set, standing in for a
	// transport-level failure rather than a nonzero exit.
	ExecuteErr error

	// Executed records the text of every script passed to Execute.
	Executed []string
}

// NewMockGuest creates a mock guest that succeeds with empty output by
// default. Mock guests report superuser facts, matching the containers the
// real backends are exercised against.
func NewMockGuest(name string) *MockGuest {
	return &MockGuest{
		GuestName:  name,
		GuestFacts: Facts{IsSuperuser: true},
		Results:    make(map[string]CommandOutput),
	}
}

// SetResult registers a canned output for an exact script text.
func (m *MockGuest) SetResult(scriptText string, output CommandOutput) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Results[scriptText] = output
}

// ExecutedScripts returns the text of every executed script.
func (m *MockGuest) ExecutedScripts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Executed...)
}

// LastScript returns the most recently executed script text, or "".
func (m *MockGuest) LastScript() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Executed) == 0 {
		return ""
	}
	return m.Executed[len(m.Executed)-1]
}

func (m *MockGuest) Name() string {
	return m.GuestName
}

func (m *MockGuest) Facts() Facts {
	return m.GuestFacts
}

func (m *MockGuest) Execute(ctx context.Context, s script.Script) (CommandOutput, error) {
	m.mu.Lock()
	m.Executed = append(m.Executed, s.String())

	if m.ExecuteErr != nil {
		err := m.ExecuteErr
		m.mu.Unlock()
		return CommandOutput{}, err
	}

	output, ok := m.Results[s.String()]
	respond := m.Respond
	m.mu.Unlock()

	if !ok && respond != nil {
		output = respond(s)
	}

	if output.ReturnCode != 0 {
		return output, &errors.RunError{
			Command:    s.String(),
			ReturnCode: output.ReturnCode,
			Stdout:     output.Stdout,
			Stderr:     output.Stderr,
		}
	}

	return output, nil
}
