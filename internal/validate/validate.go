package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Error is a field-level input violation. It names the offending field so
// the caller can surface the message next to the right input.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func Errorf(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Clean trims surrounding whitespace and strips angle brackets so stored
// values cannot carry markup.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	return s
}

func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsAbsoluteURL reports whether s parses as an absolute http(s) URL with a
// host.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// Length checks rune length against inclusive bounds and returns a
// field-level error naming the bound that was violated.
func Length(field, label, value string, min, max int) *Error {
	n := utf8.RuneCountInString(value)
	if n < min {
		return Errorf(field, "%s must be at least %d characters", label, min)
	}
	if n > max {
		return Errorf(field, "%s must be at most %d characters", label, max)
	}
	return nil
}
