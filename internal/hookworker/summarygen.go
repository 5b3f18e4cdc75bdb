package hookworker

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/cairnlog/cairnlog/internal/aiprovider"
	"github.com/cairnlog/cairnlog/internal/summary"
)

// aiSummaryGenerator is the default summary.Generator: it reads every daily
// journal file covering the period and asks the AI provider for a single
// narrative summary. journalRoot is set per-run by the pipeline once the
// repository's configuration is known.
type aiSummaryGenerator struct {
	invoker     *aiprovider.Invoker
	journalRoot string
}

func (g *aiSummaryGenerator) SetJournalRoot(root string) {
	g.journalRoot = root
}

// SetInvoker swaps in the invoker built from the repository's resolved
// configuration; NewPipeline constructs generators before that
// configuration is loaded.
func (g *aiSummaryGenerator) SetInvoker(invoker *aiprovider.Invoker) {
	g.invoker = invoker
}

var summaryPromptTemplate = template.Must(template.New("summary").Parse(`Summarize the engineering work described in the following daily journal entries, covering {{.Label}} ({{.Start}} to {{.End}}).

Write a few paragraphs in prose: what was accomplished, notable technical decisions, and any recurring friction. Do not repeat the raw entries verbatim.

Journal entries:
{{.Entries}}
`))

func (g *aiSummaryGenerator) Generate(ctx context.Context, period summary.Period) (string, error) {
	entries := g.readDailyEntries(period.Start, period.End)
	if entries == "" {
		return "", nil
	}

	var buf bytes.Buffer
	err := summaryPromptTemplate.Execute(&buf, struct{ Label, Start, End, Entries string }{
		Label:   period.Label,
		Start:   period.Start.Format("2006-01-02"),
		End:     period.End.Format("2006-01-02"),
		Entries: entries,
	})
	if err != nil {
		return "", err
	}

	raw, err := g.invoker.Invoke(ctx, buf.String(), "")
	if err != nil {
		return "", err
	}
	if raw == "" {
		return fmt.Sprintf("# %s Summary\n\n%s\n", period.Label, entries), nil
	}
	return fmt.Sprintf("# %s Summary\n\n%s\n", period.Label, raw), nil
}

func (g *aiSummaryGenerator) readDailyEntries(start, end time.Time) string {
	var out []byte
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		path := filepath.Join(g.journalRoot, "daily", d.Format("2006-01-02")+"-journal.md")
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		out = append(out, data...)
		out = append(out, '\n')
	}
	return string(out)
}
