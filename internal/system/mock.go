package system

import (
	"context"
	"strings"
	"sync"
)

// MockExecutor implements CommandExecutor for testing.
type MockExecutor struct {
	mu sync.Mutex

	// Results maps full command lines (name + args joined by spaces) to
	// predefined results.
	Results map[string]Result

	// Default is returned when no entry in Results matches.
	Default Result

	// RunErr is returned from every call when set.
	RunErr error

	// Calls records every executed command line.
	Calls []string
}

// NewMockExecutor creates a MockExecutor with no canned results.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{Results: make(map[string]Result)}
}

// SetResult registers a canned result for a command line.
func (m *MockExecutor) SetResult(commandLine string, result Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Results[commandLine] = result
}

// CallLines returns all recorded command lines.
func (m *MockExecutor) CallLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Calls...)
}

func (m *MockExecutor) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return m.RunWithStdin(ctx, "", name, args...)
}

func (m *MockExecutor) RunWithStdin(ctx context.Context, stdin string, name string, args ...string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	line := strings.Join(append([]string{name}, args...), " ")
	m.Calls = append(m.Calls, line)

	if m.RunErr != nil {
		return Result{}, m.RunErr
	}

	if result, ok := m.Results[line]; ok {
		return result, nil
	}
	return m.Default, nil
}
