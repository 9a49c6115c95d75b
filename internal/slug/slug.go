// Package slug turns free-text task names into tokens that are safe both as
// a directory-name component and as a git branch suffix.
package slug

import (
	"strings"
	"unicode"

	perrors "github.com/parallax-dev/parallax/internal/errors"
)

// Error is a task-name validation failure. Every Error matches
// errors.ErrInvalidTaskName under errors.Is.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

// Is reports membership in the invalid-task-name family.
func (e *Error) Is(target error) bool {
	return target == perrors.ErrInvalidTaskName
}

var (
	ErrEmptyTaskName     = &Error{"task name cannot be empty"}
	ErrInvalidCharacters = &Error{"task name can only use letters, numbers, spaces, '-', '_', and '.'"}
	ErrInvalidResult     = &Error{"task name produced an invalid slug"}
)

// Slug is a validated task token: lower-case, drawn from [a-z0-9._-], with
// no leading or trailing separator and no ".." anywhere.
type Slug string

func (s Slug) String() string { return string(s) }

// Make sanitizes raw into a Slug.
func Make(raw string) (Slug, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyTaskName
	}

	var b strings.Builder
	var prev rune
	for _, r := range strings.ToLower(trimmed) {
		if unicode.IsSpace(r) {
			if prev != '-' {
				b.WriteRune('-')
				prev = '-'
			}
			continue
		}
		if !allowed(r) {
			return "", ErrInvalidCharacters
		}
		if (r == '-' || r == '_') && prev == r {
			continue
		}
		b.WriteRune(r)
		prev = r
	}

	s := strings.Trim(b.String(), "-_.")
	if s == "" || s == "." || s == ".." || strings.Contains(s, "..") {
		return "", ErrInvalidResult
	}
	return Slug(s), nil
}

// Preview returns the slug raw would produce, for live feedback while typing.
func Preview(raw string) (string, bool) {
	s, err := Make(raw)
	if err != nil {
		return "", false
	}
	return string(s), true
}

func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_', r == '.':
		return true
	}
	return false
}
