package cursordb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cairnlog/cairnlog/internal/debug"
	"github.com/cairnlog/cairnlog/internal/errkind"
)

// AssembleMessages reads session metadata and message bodies from the
// workspace database at workspaceDBPath and the global database at
// globalDBPath, keeping only messages whose timestamp falls in
// [startMs, endMs], and returns them sorted ascending by timestamp. Malformed
// records are logged and skipped rather than aborting the assembly.
func AssembleMessages(ctx context.Context, workspaceDBPath, globalDBPath string, startMs, endMs int64) ([]ChatMessage, error) {
	composers, err := readComposers(ctx, workspaceDBPath)
	if err != nil {
		return nil, err
	}
	if len(composers) == 0 {
		return nil, nil
	}

	globalDB, err := openReadOnly(globalDBPath)
	if err != nil {
		return nil, err
	}
	defer globalDB.Close()

	sessions := make([]SessionMetadata, 0, len(composers))
	for _, c := range composers {
		headers, err := readHeaders(ctx, globalDB, c.ComposerID)
		if err != nil {
			debug.Logf("assembler: headers for %s unreadable: %v", c.ComposerID, err)
			continue
		}
		sessions = append(sessions, SessionMetadata{
			ComposerID: c.ComposerID,
			Name:       c.Name,
			Headers:    headers,
		})
	}
	if len(sessions) == 0 {
		return nil, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	resultsBySession := make([][]ChatMessage, len(sessions))

	for i, session := range sessions {
		i, session := i, session
		g.Go(func() error {
			msgs, err := assembleSession(gctx, globalDB, session, startMs, endMs)
			if err != nil {
				debug.Logf("assembler: session %s failed: %v", session.ComposerID, err)
				return nil
			}
			resultsBySession[i] = msgs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []ChatMessage
	for _, msgs := range resultsBySession {
		all = append(all, msgs...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].TimestampMs < all[j].TimestampMs
	})

	return all, nil
}

func assembleSession(ctx context.Context, globalDB *sql.DB, session SessionMetadata, startMs, endMs int64) ([]ChatMessage, error) {
	var out []ChatMessage
	for _, header := range session.Headers {
		if header.BubbleID == "" {
			continue
		}
		body, err := queryValue(ctx, globalDB, "cursorDiskKV", "bubbleId:"+session.ComposerID+":"+header.BubbleID)
		if err != nil {
			debug.Logf("assembler: bubble %s unreadable: %v", header.BubbleID, err)
			continue
		}

		var parsed struct {
			Text      string `json:"text"`
			Timestamp int64  `json:"timestamp"`
		}
		if err := json.Unmarshal([]byte(body), &parsed); err != nil {
			debug.Logf("assembler: malformed bubble body %s: %v", header.BubbleID, err)
			continue
		}

		if parsed.Timestamp < startMs || parsed.Timestamp > endMs {
			continue
		}

		out = append(out, ChatMessage{
			BubbleID:    header.BubbleID,
			ComposerID:  session.ComposerID,
			Session:     session.Name,
			Role:        roleForType(header.Type),
			Text:        parsed.Text,
			TimestampMs: parsed.Timestamp,
		})
	}
	return out, nil
}

func roleForType(t int) string {
	if t == 2 {
		return "assistant"
	}
	return "user"
}

type composerRef struct {
	ComposerID string
	Name       string
}

// readComposers reads the workspace database's composer.composerData entry,
// returning the bare {composerId, name} list. Header and body data live in
// the separate global database, read by the caller.
func readComposers(ctx context.Context, workspaceDBPath string) ([]composerRef, error) {
	db, err := openReadOnly(workspaceDBPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	raw, err := queryValue(ctx, db, "ItemTable", "composer.composerData")
	if err != nil {
		var kindErr *errkind.Error
		if errors.As(err, &kindErr) && kindErr.Kind == errkind.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var composerData struct {
		AllComposers []struct {
			ComposerID string `json:"composerId"`
			Name       string `json:"name"`
		} `json:"allComposers"`
	}
	if err := json.Unmarshal([]byte(raw), &composerData); err != nil {
		return nil, errkind.New(errkind.Schema, "composer.composerData", "workspace database composer data is malformed", err)
	}

	out := make([]composerRef, 0, len(composerData.AllComposers))
	for _, c := range composerData.AllComposers {
		out = append(out, composerRef{ComposerID: c.ComposerID, Name: c.Name})
	}
	return out, nil
}

// readHeaders reads the composer's header list from the *global* database,
// not the workspace database — composerData:{id} lives alongside bubble
// bodies in cursorDiskKV. Callers pass the global DB handle.
func readHeaders(ctx context.Context, globalDB *sql.DB, composerID string) ([]BubbleHeader, error) {
	raw, err := queryValue(ctx, globalDB, "cursorDiskKV", "composerData:"+composerID)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Headers []struct {
			BubbleID string `json:"bubbleId"`
			Type     int    `json:"type"`
		} `json:"fullConversationHeadersOnly"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, errkind.New(errkind.Schema, composerID, "composer header data is malformed", err)
	}

	out := make([]BubbleHeader, 0, len(parsed.Headers))
	for _, h := range parsed.Headers {
		out = append(out, BubbleHeader{BubbleID: h.BubbleID, Type: h.Type})
	}
	return out, nil
}
