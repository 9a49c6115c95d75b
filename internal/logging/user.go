package logging

import (
	"fmt"
	"io"
	"os"
)

// Destinations for user-facing messages. They are separate from the
// structured logger so piped command output stays clean.
var (
	UserOut io.Writer = os.Stdout
	UserErr io.Writer = os.Stderr
)

func userf(w io.Writer, glyph, format string, args ...any) {
	fmt.Fprintf(w, glyph+" "+format+"\n", args...)
}

// UserInfo prints an info message to UserOut.
func UserInfo(format string, args ...any) {
	userf(UserOut, "ℹ", format, args...)
}

// UserSuccess prints a success message to UserOut.
func UserSuccess(format string, args ...any) {
	userf(UserOut, "✓", format, args...)
}

// UserWarning prints a warning to UserErr.
func UserWarning(format string, args ...any) {
	userf(UserErr, "⚠", format, args...)
}

// UserError prints an error to UserErr.
func UserError(format string, args ...any) {
	userf(UserErr, "✗", format, args...)
}
