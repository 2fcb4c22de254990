package util

import (
	"strings"
	"unicode"
)

const (
	// MaxLogValueLength caps attacker-controlled values before they hit a
	// log line. Message text can legitimately be 255 characters; anything
	// past that is noise.
	MaxLogValueLength = 256
)

// SanitizeLogValue prepares an attacker-controlled string (username,
// message text) for structured logging. It strips control characters to
// prevent log injection and truncates oversized input.
func SanitizeLogValue(s string) string {
	if s == "" {
		return ""
	}

	if len(s) > MaxLogValueLength {
		s = s[:MaxLogValueLength] + "... [truncated]"
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		// Newlines and other control runes forge extra log lines
		if unicode.IsControl(r) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
