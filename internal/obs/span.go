// Package obs provides explicit-span telemetry: a lightweight stand-in for
// the decorator-based tracing the original system used. Spans are recorded
// to the structured debug log only; there is no exporter. A missing or
// disabled tracer must never alter behavior, so every method is safe to call
// even when tracing is off.
package obs

import (
	"time"

	"github.com/google/uuid"

	"github.com/cairnlog/cairnlog/internal/debug"
)

// Span is a single named operation's attribute bag, closed by End.
type Span struct {
	id         string
	name       string
	start      time.Time
	attributes map[string]interface{}
}

// StartSpan begins a new span named name.
func StartSpan(name string) *Span {
	return &Span{
		id:         uuid.NewString(),
		name:       name,
		start:      time.Now(),
		attributes: make(map[string]interface{}),
	}
}

// SetBool records a boolean attribute on the span.
func (s *Span) SetBool(key string, value bool) {
	s.attributes[key] = value
}

// SetInt records an integer attribute on the span.
func (s *Span) SetInt(key string, value int64) {
	s.attributes[key] = value
}

// SetString records a string attribute on the span, redacting anything that
// looks like a secret first.
func (s *Span) SetString(key string, value string) {
	s.attributes[key] = Redact(value)
}

// End closes the span and logs its attributes at debug level.
func (s *Span) End() {
	debug.Logf("span %s (%s) duration=%s attrs=%v", s.name, s.id, time.Since(s.start), s.attributes)
}
