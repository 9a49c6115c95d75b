package errors

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/parallax-dev/parallax/internal/logging"
)

func TestParallaxError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *ParallaxError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     New(ExitGeneralError, "something went wrong"),
			wantMsg: "something went wrong",
		},
		{
			name:    "with cause",
			err:     Wrap(ExitGeneralError, "operation failed", fmt.Errorf("underlying error")),
			wantMsg: "operation failed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestParallaxError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ExitGeneralError, "wrapped", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if unwrapped := New(ExitGeneralError, "no cause").Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("exit status 128")

	tests := []struct {
		name     string
		err      *ParallaxError
		wantCode int
		wantIs   error
		contains string
	}{
		{"outside root", OutsideWorkspaceRoot("/tmp/escape"), ExitOutsideWorkspaceRoot, ErrOutsideWorkspaceRoot, "/tmp/escape"},
		{"missing provenance", MissingProvenance("/ws/repo__task"), ExitMissingProvenance, ErrMissingProvenance, "/ws/repo__task"},
		{"git failed", GitFailed("fetch", cause), ExitGitFailed, cause, "git fetch failed"},
		{"workspace", WorkspaceError("copy", cause), ExitWorkspaceFailed, cause, "workspace copy failed"},
		{"config", ConfigError("bad settings", cause), ExitConfigError, cause, "bad settings"},
		{"not found", NotFound("repository", "api"), ExitNotFound, nil, "repository not found: api"},
		{"validation", ValidationError("missing argument"), ExitGeneralError, nil, "missing argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("Error() = %q, want substring %q", tt.err.Error(), tt.contains)
			}
			if tt.wantIs != nil && !errors.Is(tt.err, tt.wantIs) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.wantIs)
			}
		})
	}
}

type taskNameFailure struct{}

func (taskNameFailure) Error() string { return "task name cannot be empty" }
func (taskNameFailure) Is(target error) bool { return target == ErrInvalidTaskName }

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"parallax error", New(ExitNotFound, "gone"), ExitNotFound},
		{"wrapped parallax error", fmt.Errorf("outer: %w", GitFailed("checkout", nil)), ExitGitFailed},
		{"family member", taskNameFailure{}, ExitInvalidTaskName},
		{"wrapped sentinel", fmt.Errorf("create: %w", ErrOutsideWorkspaceRoot), ExitOutsideWorkspaceRoot},
		{"regular error", fmt.Errorf("plain"), ExitGeneralError},
		{"nil error", nil, ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("context: %w", MissingProvenance("/ws/x__y"))

	var target *ParallaxError
	if !As(err, &target) {
		t.Fatal("As() should find ParallaxError in chain")
	}
	if target.Code != ExitMissingProvenance {
		t.Errorf("Code = %d, want %d", target.Code, ExitMissingProvenance)
	}
	if !Is(err, ErrMissingProvenance) {
		t.Error("Is() should match the provenance sentinel through the chain")
	}
}

func TestPolicy_Handle(t *testing.T) {
	var buf bytes.Buffer
	logging.Setup(false, false, &buf)
	t.Cleanup(func() { logging.Setup(false, false, nil) })

	boom := fmt.Errorf("disk full")

	if got := Fatal.Handle(boom, "ignored"); got != boom {
		t.Errorf("Fatal.Handle() = %v, want %v", got, boom)
	}
	if buf.Len() != 0 {
		t.Errorf("Fatal should not log, got: %s", buf.String())
	}

	if got := LogAndContinue.Handle(boom, "metadata write failed", "path", "/x"); got != nil {
		t.Errorf("LogAndContinue.Handle() = %v, want nil", got)
	}
	out := buf.String()
	for _, want := range []string{"metadata write failed", "disk full", "path=/x"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}

	if got := LogAndContinue.Handle(nil, "nothing"); got != nil {
		t.Errorf("Handle(nil) = %v, want nil", got)
	}
}

func TestPolicy_String(t *testing.T) {
	if Fatal.String() != "fatal" || LogAndContinue.String() != "log-and-continue" {
		t.Errorf("unexpected names: %s, %s", Fatal, LogAndContinue)
	}
	if Policy(42).String() != "unknown" {
		t.Errorf("Policy(42) = %s", Policy(42))
	}
}
