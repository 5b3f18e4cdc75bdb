package boundary

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cairnlog/cairnlog/internal/cursordb"
	"github.com/cairnlog/cairnlog/internal/debug"
)

const maxContextMessages = 250

// Filter validates, truncates, prompts an AI provider, parses its decision,
// and slices the message window down to the commit's relevant conversation.
// On any error along the way it degrades to the last 250 messages (or all,
// whichever is smaller), projected to {speaker, text} — it never returns an
// error to the caller; an empty bubbleId anywhere in the input is itself
// logged before degrading, since it indicates an upstream bug.
func Filter(ctx context.Context, in Input, invoker Invoker) []Projected {
	if len(in.Messages) == 0 {
		return nil
	}

	if err := validateBubbleIDs(in.Messages); err != nil {
		debug.Logf("boundary: %v; degrading to fallback window", err)
		return fallbackProjection(in.Messages)
	}

	truncated := truncate(in.Messages, maxContextMessages)
	simplified := simplify(truncated)

	prompt, err := buildPrompt(simplified, in)
	if err != nil {
		debug.Logf("boundary: prompt build failed: %v", err)
		return fallbackProjection(in.Messages)
	}

	raw, err := invoker.Invoke(ctx, prompt, "")
	if err != nil || raw == "" {
		debug.Logf("boundary: AI invocation failed or empty: %v", err)
		return fallbackProjection(in.Messages)
	}

	resp, err := parseResponse(raw)
	if err != nil {
		debug.Logf("boundary: response parse failed: %v", err)
		return fallbackProjection(in.Messages)
	}

	logConfidence(resp)

	boundaryIdx := indexOfBubble(in.Messages, resp.BubbleID)
	if boundaryIdx < 0 {
		boundaryIdx, resp = substituteBoundary(in.Messages)
		logConfidence(resp)
	}

	return project(in.Messages[boundaryIdx:])
}

func validateBubbleIDs(messages []cursordb.ChatMessage) error {
	for _, m := range messages {
		if m.BubbleID == "" {
			return ErrEmptyBubbleID
		}
	}
	return nil
}

func logConfidence(resp Response) {
	if resp.Confidence < 7 {
		debug.Logf("boundary: low-confidence decision (%d): %s", resp.Confidence, resp.Reasoning)
	} else {
		debug.Logf("boundary: decision confidence %d: %s", resp.Confidence, resp.Reasoning)
	}
}

func parseResponse(raw string) (Response, error) {
	var parsed struct {
		BubbleID   string `json:"bubbleId"`
		Confidence int    `json:"confidence"`
		Reasoning  string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return Response{}, fmt.Errorf("boundary: invalid JSON response: %w", err)
	}
	if parsed.BubbleID == "" {
		return Response{}, fmt.Errorf("boundary: missing bubbleId in response")
	}
	if parsed.Confidence < 1 || parsed.Confidence > 10 {
		return Response{}, fmt.Errorf("boundary: confidence %d out of range 1-10", parsed.Confidence)
	}
	if parsed.Reasoning == "" {
		return Response{}, fmt.Errorf("boundary: missing reasoning in response")
	}
	return Response{BubbleID: parsed.BubbleID, Confidence: parsed.Confidence, Reasoning: parsed.Reasoning}, nil
}

func indexOfBubble(messages []cursordb.ChatMessage, bubbleID string) int {
	for i, m := range messages {
		if m.BubbleID == bubbleID {
			return i
		}
	}
	return -1
}

// substituteBoundary implements the fallback-index rule for an AI response
// whose bubbleId doesn't appear in the original message list: index
// len-250 if the list was truncated, otherwise index 0.
func substituteBoundary(messages []cursordb.ChatMessage) (int, Response) {
	if len(messages) > maxContextMessages {
		idx := len(messages) - maxContextMessages
		return idx, Response{
			BubbleID:   messages[idx].BubbleID,
			Confidence: 1,
			Reasoning:  "AI returned invalid bubbleId, defaulted to last 250 messages",
		}
	}
	return 0, Response{
		BubbleID:   messages[0].BubbleID,
		Confidence: 1,
		Reasoning:  "AI returned invalid bubbleId, defaulted to first message (250 or fewer total)",
	}
}

func fallbackProjection(messages []cursordb.ChatMessage) []Projected {
	n := len(messages)
	start := 0
	if n > maxContextMessages {
		start = n - maxContextMessages
	}
	return project(messages[start:])
}

func truncate(messages []cursordb.ChatMessage, max int) []cursordb.ChatMessage {
	if len(messages) <= max {
		return messages
	}
	return messages[len(messages)-max:]
}

func simplify(messages []cursordb.ChatMessage) []simplifiedMessage {
	out := make([]simplifiedMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, simplifiedMessage{
			BubbleID:  m.BubbleID,
			Speaker:   m.Role,
			Timestamp: m.TimestampMs,
			Preview:   preview(m.Text),
		})
	}
	return out
}

func preview(text string) string {
	const max = 100
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	return string(r[:max]) + "..."
}

func project(messages []cursordb.ChatMessage) []Projected {
	out := make([]Projected, 0, len(messages))
	for _, m := range messages {
		out = append(out, Projected{Speaker: m.Role, Text: m.Text})
	}
	return out
}
