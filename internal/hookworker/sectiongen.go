package hookworker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/cairnlog/cairnlog/internal/aiprovider"
	"github.com/cairnlog/cairnlog/internal/boundary"
	"github.com/cairnlog/cairnlog/internal/gitutil"
	"github.com/cairnlog/cairnlog/internal/journal"
)

// aiSectionGenerator is the default journal.SectionGenerator: one AI call
// per commit that returns every narrative section as a single JSON object,
// mirroring the Boundary Filter's single-JSON-response contract rather than
// one round trip per section.
type aiSectionGenerator struct {
	invoker *aiprovider.Invoker
}

// SetInvoker swaps in the invoker built from the repository's resolved
// configuration; NewPipeline constructs generators before that
// configuration is loaded.
func (g *aiSectionGenerator) SetInvoker(invoker *aiprovider.Invoker) {
	g.invoker = invoker
}

type sectionResponse struct {
	Summary            string   `json:"summary"`
	TechnicalSynopsis   string   `json:"technical_synopsis"`
	Accomplishments     []string `json:"accomplishments"`
	Frustrations        []string `json:"frustrations"`
	Mood                string   `json:"mood"`
	MoodIndicators      string   `json:"mood_indicators"`
}

var sectionPromptTemplate = template.Must(template.New("sections").Parse(`You are writing one engineering journal entry for a single git commit.

Task: using the commit's diff summary and (if present) the developer's chat
transcript, produce a JSON object with exactly these fields and nothing else:
{"summary": "...", "technical_synopsis": "...", "accomplishments": ["..."], "frustrations": ["..."], "mood": "...", "mood_indicators": "..."}

- summary: one or two sentences describing what this commit does.
- technical_synopsis: a short paragraph on the technical approach.
- accomplishments: short bullet phrases, can be empty.
- frustrations: short bullet phrases describing any roadblocks, can be empty.
- mood: one short phrase describing the developer's apparent tone.
- mood_indicators: one short phrase naming what in the commit or chat suggests that mood.

Commit:
{{.Commit}}

Chat transcript (oldest first, may be empty):
{{.Chat}}
`))

func (g *aiSectionGenerator) Generate(ctx context.Context, commit gitutil.CommitContext, chat []boundary.Projected, includeChat, includeMood bool) (journal.Sections, error) {
	prompt, err := buildSectionPrompt(commit, chat)
	if err != nil {
		return fallbackSections(commit, chat, includeChat, includeMood), err
	}

	raw, err := g.invoker.Invoke(ctx, prompt, "")
	if err != nil || raw == "" {
		return fallbackSections(commit, chat, includeChat, includeMood), err
	}

	var parsed sectionResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return fallbackSections(commit, chat, includeChat, includeMood), fmt.Errorf("hookworker: section response invalid JSON: %w", err)
	}

	sections := journal.Sections{
		Summary:            parsed.Summary,
		TechnicalSynopsis:  parsed.TechnicalSynopsis,
		Accomplishments:    parsed.Accomplishments,
		Frustrations:       parsed.Frustrations,
		CommitMetadata:     commitMetadata(commit),
	}
	if includeMood {
		sections.Mood = parsed.Mood
		sections.MoodIndicators = parsed.MoodIndicators
	}
	if includeChat {
		sections.Discussion = discussionLines(chat)
	}
	return sections, nil
}

func buildSectionPrompt(commit gitutil.CommitContext, chat []boundary.Projected) (string, error) {
	commitJSON, err := json.MarshalIndent(commit, "", "  ")
	if err != nil {
		return "", err
	}
	chatJSON, err := json.MarshalIndent(chat, "", "  ")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := sectionPromptTemplate.Execute(&buf, struct{ Commit, Chat string }{string(commitJSON), string(chatJSON)}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// fallbackSections builds a minimal entry from the commit's own metadata
// when AI generation is unavailable or fails, so a journal entry always
// gets written even with no AI key configured.
func fallbackSections(commit gitutil.CommitContext, chat []boundary.Projected, includeChat, includeMood bool) journal.Sections {
	s := journal.Sections{
		Summary:        commit.Message,
		CommitMetadata: commitMetadata(commit),
	}
	if includeChat {
		s.Discussion = discussionLines(chat)
	}
	return s
}

func discussionLines(chat []boundary.Projected) []journal.DiscussionLine {
	out := make([]journal.DiscussionLine, 0, len(chat))
	for _, m := range chat {
		out = append(out, journal.DiscussionLine{Speaker: m.Speaker, Text: m.Text})
	}
	return out
}

func commitMetadata(commit gitutil.CommitContext) string {
	return fmt.Sprintf("**Hash:** %s\n**Author:** %s\n**Files changed:** %d (%s)",
		commit.Hash, commit.Author, len(commit.ChangedFiles), commit.SizeClass)
}
