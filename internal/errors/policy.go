package errors

import "github.com/parallax-dev/parallax/internal/logging"

// Policy classifies how a call site treats a failure.
type Policy int

const (
	// Fatal propagates the error to the caller.
	Fatal Policy = iota

	// LogAndContinue logs the error and swallows it. Used where the failing
	// step only maintains a cache (metadata, usage history, branch refresh).
	LogAndContinue
)

func (p Policy) String() string {
	switch p {
	case Fatal:
		return "fatal"
	case LogAndContinue:
		return "log-and-continue"
	default:
		return "unknown"
	}
}

// Handle applies the policy to err. It returns err unchanged for Fatal and
// nil for LogAndContinue, after logging msg with args and the error.
func (p Policy) Handle(err error, msg string, args ...any) error {
	if err == nil {
		return nil
	}
	if p == Fatal {
		return err
	}
	logging.Warn(msg, append(args, "error", err)...)
	return nil
}
