package theme

import (
	"errors"
	"fmt"
)

var (
	ErrThemeNotFound  = errors.New("theme not found")
	ErrMalformedTheme = errors.New("malformed theme")
	ErrBuiltinTheme   = errors.New("theme is built in")
)

// MalformedThemeError is a structural problem that rejects a whole theme.
// Rule is -1 when the problem is not tied to a single settings entry.
type MalformedThemeError struct {
	Theme  string
	Rule   int
	Reason string
	Err    error
}

func (e *MalformedThemeError) Error() string {
	msg := "malformed theme"
	if e.Theme != "" {
		msg += fmt.Sprintf(" %q", e.Theme)
	}
	if e.Rule >= 0 {
		msg += fmt.Sprintf(": rule %d", e.Rule)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedThemeError) Unwrap() error {
	return e.Err
}

func (e *MalformedThemeError) Is(target error) bool {
	return target == ErrMalformedTheme
}

func malformed(theme string, rule int, reason string, err error) *MalformedThemeError {
	return &MalformedThemeError{Theme: theme, Rule: rule, Reason: reason, Err: err}
}
