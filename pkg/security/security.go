package security

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/wikibots/jobledger/pkg/core"
)

// Field limits, matching the ledger schema.
const (
	// MaxQIDLength is the maximum length for a QID
	MaxQIDLength = 15

	// MaxMessageLength is the maximum length for stored messages,
	// error texts and notes
	MaxMessageLength = 255
)

// validQID matches a letter followed by letters and digits.
// QIDs are case-sensitive; no normalization is applied.
var validQID = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// ValidateQID validates a QID before any storage access.
func ValidateQID(qid string) error {
	if qid == "" {
		return core.ErrInvalidQID
	}
	if len(qid) > MaxQIDLength {
		return core.ErrQIDTooLong
	}
	if !validQID.MatchString(qid) {
		return core.ErrInvalidQID
	}
	return nil
}

// SanitizeMessage truncates and sanitizes free text for storage.
func SanitizeMessage(msg string) string {
	if msg == "" {
		return ""
	}

	// Remove any null bytes or control characters (except newlines)
	var sanitized strings.Builder
	sanitized.Grow(len(msg))

	for _, r := range msg {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			sanitized.WriteRune(r)
		}
	}

	result := sanitized.String()

	// Truncate if too long
	if utf8.RuneCountInString(result) > MaxMessageLength {
		runes := []rune(result)
		result = string(runes[:MaxMessageLength-3]) + "..."
	}

	return result
}
