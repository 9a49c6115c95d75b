package editor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/parallax-dev/parallax/internal/system"
)

func TestLauncher_Open(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		wantName string
		wantArgs []string
	}{
		{"plain", "zed", "zed", []string{"/ws/app__fix"}},
		{"with flags", "code --new-window", "code", []string{"--new-window", "/ws/app__fix"}},
		{"quoted", `"/opt/My Editor/bin/edit" -w`, "/opt/My Editor/bin/edit", []string{"-w", "/ws/app__fix"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := system.NewMockExecutor()
			if err := NewLauncher(mock).Open(tt.command, "/ws/app__fix"); err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			if len(mock.Started) != 1 {
				t.Fatalf("started %d commands, want 1", len(mock.Started))
			}
			got := mock.Started[0]
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if diff := cmp.Diff(tt.wantArgs, got.Args); diff != "" {
				t.Errorf("Args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLauncher_OpenErrors(t *testing.T) {
	startErr := errors.New("exec: not found")

	tests := []struct {
		name    string
		command string
		start   error
		wantErr error
	}{
		{"empty", "   ", nil, errEmptyCommand},
		{"unbalanced quote", `"zed`, nil, nil},
		{"start fails", "zed", startErr, startErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := system.NewMockExecutor()
			mock.StartErr = tt.start

			err := NewLauncher(mock).Open(tt.command, "/ws/x__y")
			var launchErr *LaunchError
			if !errors.As(err, &launchErr) {
				t.Fatalf("Open() error = %v, want *LaunchError", err)
			}
			if launchErr.Path != "/ws/x__y" || launchErr.Editor != tt.command {
				t.Errorf("LaunchError = %+v", launchErr)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Open() error = %v, want wrapping %v", err, tt.wantErr)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"zed", "Zed", true},
		{"VS Code", "VS Code", true},
		{" CODE ", "VS Code", true},
		{"goland", "GoLand", true},
		{"vim", "", false},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.in)
		if ok != tt.ok || got.Name != tt.want {
			t.Errorf("Lookup(%q) = %+v, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
