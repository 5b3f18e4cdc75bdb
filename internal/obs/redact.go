package obs

import "github.com/cairnlog/cairnlog/internal/errkind"

// Redact scrubs API-key-shaped substrings from a string before it is logged
// or attached to a span, reusing the same redaction rules errkind applies to
// error context.
func Redact(s string) string {
	return errkind.Redact(s)
}
