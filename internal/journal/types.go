// Package journal implements the three file-writer entry points
// (AppendEntry, AddReflection, CaptureContext) that share the journal's
// append-only mechanics: date-partitioned paths, on-demand directory
// creation, a header on the first write to a new daily file, and a fixed
// separator between entries. Section *content* is supplied by an injected
// SectionGenerator; the bit-exact markdown shape in spec.md §6 is rendered
// here.
package journal

import (
	"context"

	"github.com/cairnlog/cairnlog/internal/boundary"
	"github.com/cairnlog/cairnlog/internal/gitutil"
)

// DiscussionLine is one line of the Discussion Notes section: a chat turn
// attributed to a speaker, or unattributed narrative.
type DiscussionLine struct {
	Speaker string // "" renders as an unattributed blockquote line
	Text    string
}

// Sections holds the generated content for one journal entry, in the exact
// order spec.md §6 lists them.
type Sections struct {
	Summary             string
	TechnicalSynopsis    string
	Accomplishments      []string
	Frustrations         []string
	Mood                 string
	MoodIndicators       string
	Discussion           []DiscussionLine
	CommitMetadata       string
}

// SectionGenerator produces the narrative content for a commit's journal
// entry. This is the external interface spec.md §1 places out of scope: the
// per-section AI calls themselves, not the file mechanics around them.
type SectionGenerator interface {
	Generate(ctx context.Context, commit gitutil.CommitContext, chat []boundary.Projected, includeChat, includeMood bool) (Sections, error)
}
