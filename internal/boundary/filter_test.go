package boundary

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cairnlog/cairnlog/internal/cursordb"
)

type stubInvoker struct {
	response string
	err      error
}

func (s stubInvoker) Invoke(ctx context.Context, system, user string) (string, error) {
	return s.response, s.err
}

func messagesWithIDs(n int) []cursordb.ChatMessage {
	out := make([]cursordb.ChatMessage, n)
	for i := range out {
		out[i] = cursordb.ChatMessage{
			BubbleID:    fmt.Sprintf("bubble-%d", i),
			Role:        "user",
			Text:        fmt.Sprintf("message %d", i),
			TimestampMs: int64(i),
		}
	}
	return out
}

func TestFilter_HappyPath(t *testing.T) {
	messages := messagesWithIDs(5)
	invoker := stubInvoker{response: `{"bubbleId":"bubble-2","confidence":8,"reasoning":"new topic starts here"}`}

	result := Filter(context.Background(), Input{Messages: messages}, invoker)

	if len(result) != 3 {
		t.Fatalf("expected 3 projected messages from boundary index 2, got %d", len(result))
	}
	if result[0].Text != "message 2" {
		t.Errorf("expected first projected message to be 'message 2', got %q", result[0].Text)
	}
}

func TestFilter_InvalidBubbleIDSubstitution_Over250(t *testing.T) {
	messages := messagesWithIDs(500)
	invoker := stubInvoker{response: `{"bubbleId":"does-not-exist","confidence":9,"reasoning":"x"}`}

	result := Filter(context.Background(), Input{Messages: messages}, invoker)

	if len(result) != 250 {
		t.Fatalf("expected exactly 250 projected messages (len-250 boundary), got %d", len(result))
	}
	if result[0].Text != "message 250" {
		t.Errorf("expected boundary at index 250, got first message %q", result[0].Text)
	}
}

func TestFilter_InvalidBubbleIDSubstitution_Under250(t *testing.T) {
	messages := messagesWithIDs(10)
	invoker := stubInvoker{response: `{"bubbleId":"does-not-exist","confidence":9,"reasoning":"x"}`}

	result := Filter(context.Background(), Input{Messages: messages}, invoker)

	if len(result) != 10 {
		t.Fatalf("expected all 10 messages when under 250, got %d", len(result))
	}
}

func TestFilter_EmptyBubbleIDDegrades(t *testing.T) {
	messages := messagesWithIDs(3)
	messages[1].BubbleID = ""
	invoker := stubInvoker{response: `{"bubbleId":"bubble-0","confidence":9,"reasoning":"x"}`}

	result := Filter(context.Background(), Input{Messages: messages}, invoker)

	if len(result) != 3 {
		t.Fatalf("expected fallback to all messages, got %d", len(result))
	}
}

func TestFilter_AIErrorDegrades(t *testing.T) {
	messages := messagesWithIDs(300)
	invoker := stubInvoker{err: errors.New("network down")}

	result := Filter(context.Background(), Input{Messages: messages}, invoker)

	if len(result) != 250 {
		t.Fatalf("expected fallback to last 250, got %d", len(result))
	}
}

func TestFilter_MalformedResponseDegrades(t *testing.T) {
	messages := messagesWithIDs(5)
	invoker := stubInvoker{response: `not json`}

	result := Filter(context.Background(), Input{Messages: messages}, invoker)

	if len(result) != 5 {
		t.Fatalf("expected fallback to all messages, got %d", len(result))
	}
}

func TestFilter_InvariantBoundaryInInput(t *testing.T) {
	messages := messagesWithIDs(50)
	invoker := stubInvoker{response: `{"bubbleId":"bubble-10","confidence":7,"reasoning":"x"}`}

	result := Filter(context.Background(), Input{Messages: messages}, invoker)
	if len(result) != 40 {
		t.Fatalf("expected 40 messages from boundary 10, got %d", len(result))
	}
}

func TestPreview_TruncatesAt100Chars(t *testing.T) {
	long := make([]byte, 150)
	for i := range long {
		long[i] = 'a'
	}
	got := preview(string(long))
	if len([]rune(got)) != 103 {
		t.Errorf("expected 100 chars + '...', got length %d", len([]rune(got)))
	}
}
