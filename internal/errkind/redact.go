package errkind

import (
	"regexp"
	"strings"
)

var secretLikeKey = regexp.MustCompile(`(?i)(api[_-]?key|token|secret|password)=[^&\s]+`)

// Redact scrubs a context string before it is attached to an Error. Paths are
// left alone unless they contain something that looks like an embedded
// secret (api_key/token/secret/password=value pairs). An "sk-" prefix
// (case-insensitive) is treated as an API key: it and everything after it
// are replaced. Keys in other formats are not recognized.
func Redact(s string) string {
	if s == "" {
		return s
	}
	out := secretLikeKey.ReplaceAllString(s, "$1=REDACTED")
	if idx := strings.Index(strings.ToLower(out), "sk-"); idx >= 0 {
		out = out[:idx] + "REDACTED"
	}
	return out
}
