package system

import (
	"context"
	"strings"
	"sync"
)

// MockExecutor implements CommandExecutor for testing.
type MockExecutor struct {
	mu sync.Mutex

	// Commands records all executed commands.
	Commands []MockCommand

	// Started records commands launched through Start.
	Started []MockCommand

	// DefaultResponse is used when no rule matches.
	DefaultResponse MockResponse

	// StartErr is returned by Start if set.
	StartErr error

	rules []mockRule
}

// MockCommand records an executed command.
type MockCommand struct {
	Name string
	Args []string
}

// String renders the command as a single space-separated line.
func (c MockCommand) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// MockResponse defines the response for a command.
type MockResponse struct {
	Output []byte
	Err    error
}

// MockHandler computes a response from the command and may have side effects.
type MockHandler func(cmd MockCommand) ([]byte, error)

type mockRule struct {
	pattern string
	handler MockHandler
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

// AddResponse registers a fixed response for commands whose command line
// contains pattern. Rules are checked in registration order.
func (m *MockExecutor) AddResponse(pattern string, output []byte, err error) {
	m.AddHandler(pattern, func(MockCommand) ([]byte, error) {
		return output, err
	})
}

// AddHandler registers a handler for commands whose command line contains pattern.
func (m *MockExecutor) AddHandler(pattern string, h MockHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, mockRule{pattern: pattern, handler: h})
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	cmd := MockCommand{Name: name, Args: append([]string(nil), args...)}
	m.Commands = append(m.Commands, cmd)

	line := cmd.String()
	var handler MockHandler
	for _, r := range m.rules {
		if strings.Contains(line, r.pattern) {
			handler = r.handler
			break
		}
	}
	def := m.DefaultResponse
	m.mu.Unlock()

	if handler != nil {
		return handler(cmd)
	}
	return def.Output, def.Err
}

func (m *MockExecutor) Start(name string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Started = append(m.Started, MockCommand{Name: name, Args: append([]string(nil), args...)})
	return m.StartErr
}

// LastCommand returns the most recently executed command.
func (m *MockExecutor) LastCommand() (MockCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Commands) == 0 {
		return MockCommand{}, false
	}
	return m.Commands[len(m.Commands)-1], true
}

// CommandLines returns every executed command rendered as a string.
func (m *MockExecutor) CommandLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, len(m.Commands))
	for i, c := range m.Commands {
		lines[i] = c.String()
	}
	return lines
}

// Reset clears all recorded commands.
func (m *MockExecutor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = nil
	m.Started = nil
}
