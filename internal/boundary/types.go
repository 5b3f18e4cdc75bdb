// Package boundary implements the AI-driven conversation boundary filter:
// given a candidate window of chat messages and commit context, it asks an
// AI provider which message starts "this commit's conversation" and slices
// accordingly.
package boundary

import (
	"context"

	"github.com/cairnlog/cairnlog/internal/cursordb"
	"github.com/cairnlog/cairnlog/internal/gitutil"
)

// Response is the AI's boundary decision.
type Response struct {
	BubbleID   string
	Confidence int
	Reasoning  string
}

// Projected is the final {speaker, text} pair the journal entry generator
// consumes.
type Projected struct {
	Speaker string
	Text    string
}

// Invoker is the minimal AI-calling contract boundary needs; satisfied by
// internal/aiprovider.Invoker.
type Invoker interface {
	Invoke(ctx context.Context, system, user string) (string, error)
}

// Input bundles everything the Filter needs beyond the raw message list.
type Input struct {
	Messages        []cursordb.ChatMessage
	Commit          gitutil.CommitContext
	PreviousCommit  *gitutil.CommitContext
	PreviousJournal string
}

// ErrEmptyBubbleID indicates an upstream bug: the Message Assembler promised
// every message carries a non-empty bubbleId and one did not.
var ErrEmptyBubbleID = &validationError{"message with empty bubbleId reached the boundary filter"}

type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }
