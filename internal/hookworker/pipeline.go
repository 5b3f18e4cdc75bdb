package hookworker

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/cairnlog/cairnlog/internal/aiprovider"
	"github.com/cairnlog/cairnlog/internal/boundary"
	"github.com/cairnlog/cairnlog/internal/config"
	"github.com/cairnlog/cairnlog/internal/cursordb"
	"github.com/cairnlog/cairnlog/internal/gitutil"
	"github.com/cairnlog/cairnlog/internal/journal"
	"github.com/cairnlog/cairnlog/internal/obs"
	"github.com/cairnlog/cairnlog/internal/platform"
	"github.com/cairnlog/cairnlog/internal/summary"
	"github.com/cairnlog/cairnlog/internal/timewindow"
)

// Pipeline runs the per-commit state machine:
//
//	Start → DetectRepo → DetectWorkspace → ResolveWindow
//	     → AssembleChat → FilterBoundary → GenerateSections
//	     → WriteEntry → CheckSummaries → Exit(0)
//
// Every transition has a failure edge to the next state, never to a
// nonzero exit; Run itself never returns an error a caller needs to act
// on — it only returns one so the CLI layer can decide what to log before
// exiting zero regardless.
type Pipeline struct {
	Sections  journal.SectionGenerator
	Summaries summary.Generator
	Log       *Logger

	// OverrideAPIKey and OverrideModel, if set, take precedence over
	// whatever .cairnrc.yaml resolves — the CLI layer sets these from
	// --api-key/--model so a flag always wins over the config file.
	OverrideAPIKey string
	OverrideModel  string
}

// NewPipeline builds a Pipeline with the default AI-driven section and
// summary generators. The invoker passed in is a placeholder: Run rebuilds
// it from each repo's resolved configuration before use.
func NewPipeline(invoker *aiprovider.Invoker, log *Logger) *Pipeline {
	return &Pipeline{
		Sections:  &aiSectionGenerator{invoker: invoker},
		Summaries: &aiSummaryGenerator{invoker: invoker},
		Log:       log,
	}
}

// Run executes one commit's pipeline. repoPath is the repository root;
// commitHash is the commit to process ("" means HEAD).
func (p *Pipeline) Run(ctx context.Context, repoPath, commitHash string) error {
	span := obs.StartSpan("hookworker.run")
	defer span.End()

	cfg, err := config.Load(repoPath)
	if err != nil {
		p.Log.Logf("hookworker: aborting, configuration is invalid: %v", err)
		return err
	}

	journalRoot := filepath.Join(repoPath, cfg.Journal.Path)
	summariesRoot := filepath.Join(journalRoot, "summaries")

	if p.OverrideAPIKey != "" {
		cfg.AI.APIKey = p.OverrideAPIKey
	}
	if p.OverrideModel != "" {
		cfg.AI.Model = p.OverrideModel
	}

	invoker := aiprovider.New(cfg.AI.APIKey, cfg.AI.EnvVarName(), cfg.AI.Model)
	if gen, ok := p.Summaries.(*aiSummaryGenerator); ok {
		gen.SetJournalRoot(journalRoot)
		gen.SetInvoker(invoker)
	}
	if gen, ok := p.Sections.(*aiSectionGenerator); ok {
		gen.SetInvoker(invoker)
	}

	commit, err := p.detectRepo(repoPath, commitHash)
	if err != nil {
		p.Log.Logf("DetectRepo failed: %v", err)
		return err
	}
	p.Log.mu.Lock()
	p.Log.commitStamp = commit.Author.When
	p.Log.mu.Unlock()
	p.Log.Logf("DetectRepo: resolved commit %s", commit.Hash.String())

	if journalOnly, err := gitutil.IsJournalOnly(commit, cfg.Journal.Path); err == nil && journalOnly {
		p.Log.Logf("commit touches only the journal directory, skipping")
		return nil
	}

	info := gitutil.ToCommitInfo(commit)
	window := timewindow.Calculate(info)
	if window.Window == nil {
		p.Log.Logf("ResolveWindow: merge commit, skipping")
		return nil
	}
	p.Log.Logf("ResolveWindow: strategy=%s duration=%.1fh", window.Window.Strategy, window.Window.DurationHours)

	commitCtx, err := gitutil.BuildCommitContext(commit, cfg.Git.ExcludePatterns)
	if err != nil {
		p.Log.Logf("building commit context failed: %v", err)
	}

	messages := p.assembleChat(ctx, repoPath, window.Window.StartMs, window.Window.EndMs)
	p.Log.Logf("AssembleChat: %d candidate messages", len(messages))

	previousJournal := boundary.PreviousJournalEntry(journalRoot, commit.Author.When)

	projected := boundary.Filter(ctx, boundary.Input{
		Messages:        messages,
		Commit:          commitCtx,
		PreviousJournal: previousJournal,
	}, invoker)
	p.Log.Logf("FilterBoundary: %d messages kept", len(projected))

	sections, err := p.Sections.Generate(ctx, commitCtx, projected, cfg.Journal.IncludeChat, cfg.Journal.IncludeMood)
	if err != nil {
		p.Log.Logf("GenerateSections degraded: %v", err)
	}

	isNewFile, err := journal.AppendEntry(journalRoot, commit.Author.When, commitCtx, sections, cfg.Journal.IncludeChat, cfg.Journal.IncludeMood)
	if err != nil {
		p.Log.Logf("WriteEntry failed: %v", err)
		return err
	}
	p.Log.Logf("WriteEntry: appended to %s (new file: %v)", filepath.Join(journalRoot, "daily"), isNewFile)

	var lastCommitDate time.Time
	if window.Window.Strategy == timewindow.CommitBased {
		lastCommitDate = time.UnixMilli(window.Window.StartMs)
	}
	p.checkSummaries(ctx, summariesRoot, commit.Author.When, lastCommitDate, isNewFile)

	return nil
}

// detectRepo opens the repository at repoPath and resolves commitHash (or
// HEAD, if commitHash is "") to a commit object.
func (p *Pipeline) detectRepo(repoPath, commitHash string) (*object.Commit, error) {
	repo, err := gitutil.OpenRepo(repoPath)
	if err != nil {
		return nil, fmt.Errorf("hookworker: opening repository: %w", err)
	}

	if commitHash == "" {
		head, err := repo.Head()
		if err != nil {
			return nil, fmt.Errorf("hookworker: resolving HEAD: %w", err)
		}
		return repo.CommitObject(head.Hash())
	}

	return gitutil.ResolveCommit(repo, commitHash)
}

// assembleChat runs Platform Locator, Database Discovery, and the
// Workspace Matcher, then the Message Assembler, degrading to an empty
// message list at any failure.
func (p *Pipeline) assembleChat(ctx context.Context, repoPath string, startMs, endMs int64) []cursordb.ChatMessage {
	storageDirs, err := platform.WorkspaceStoragePaths()
	if err != nil {
		p.Log.Logf("DetectWorkspace: platform locator failed: %v", err)
		return nil
	}

	g, _ := errgroup.WithContext(ctx)
	results := make([][]string, len(storageDirs))
	for i, dir := range storageDirs {
		i, dir := i, dir
		g.Go(func() error {
			dbs, err := cursordb.DiscoverDatabases(dir)
			if err != nil {
				p.Log.Logf("DetectWorkspace: discovery failed for %s: %v", dir, err)
				return nil
			}
			results[i] = dbs
			return nil
		})
	}
	g.Wait()

	var allPaths []string
	pathToDir := map[string]string{}
	for i, dbs := range results {
		for _, db := range dbs {
			allPaths = append(allPaths, db)
			pathToDir[db] = storageDirs[i]
		}
	}

	if len(allPaths) == 0 {
		p.Log.Logf("DetectWorkspace: no candidate databases found")
		return nil
	}

	match, err := cursordb.MatchWorkspace(ctx, repoPath, allPaths)
	if err != nil {
		p.Log.Logf("DetectWorkspace: workspace matching failed: %v", err)
		return nil
	}
	p.Log.Logf("DetectWorkspace: matched %s (type=%s confidence=%.2f)", match.DBPath, match.MatchType, match.Confidence)

	globalDB := platform.GlobalDBPath(pathToDir[match.DBPath])

	messages, err := cursordb.AssembleMessages(ctx, match.DBPath, globalDB, startMs, endMs)
	if err != nil {
		p.Log.Logf("AssembleChat: failed: %v", err)
		return nil
	}
	return messages
}

// checkSummaries runs the Summary Trigger for the weekly/monthly/quarterly/
// yearly periods crossed since the last commit, plus the daily summary if
// this commit's write created a new daily journal file. Every generated
// summary is written idempotently: the existence check that decided it was
// due also guards the write.
func (p *Pipeline) checkSummaries(ctx context.Context, summariesRoot string, commitDate, lastCommitDate time.Time, isNewDailyFile bool) {
	triggers := summary.CalculateTriggers(summariesRoot, lastCommitDate, commitDate)
	p.Log.Logf("CheckSummaries: weekly=%v monthly=%v quarterly=%v yearly=%v", triggers.Weekly, triggers.Monthly, triggers.Quarterly, triggers.Yearly)

	if triggers.Weekly {
		weekEnd := commitDate.AddDate(0, 0, -int(commitDate.Weekday()))
		if commitDate.Weekday() == time.Sunday {
			weekEnd = commitDate
		}
		p.generatePeriod(ctx, summariesRoot, "weekly", weekEnd.AddDate(0, 0, -6), weekEnd, summary.WeeklyPath(summariesRoot, weekEnd.AddDate(0, 0, -6)))
	}
	monthStart := time.Date(commitDate.Year(), commitDate.Month(), 1, 0, 0, 0, 0, commitDate.Location())
	if triggers.Monthly {
		prevMonth := monthStart.AddDate(0, -1, 0)
		start := time.Date(prevMonth.Year(), prevMonth.Month(), 1, 0, 0, 0, 0, prevMonth.Location())
		end := start.AddDate(0, 1, -1)
		p.generatePeriod(ctx, summariesRoot, "monthly", start, end, summary.MonthlyPath(summariesRoot, start))
	}
	if triggers.Quarterly {
		prevQuarter := monthStart.AddDate(0, -3, 0)
		q := (int(prevQuarter.Month())-1)/3 + 1
		start := time.Date(prevQuarter.Year(), time.Month((q-1)*3+1), 1, 0, 0, 0, 0, prevQuarter.Location())
		end := start.AddDate(0, 3, -1)
		p.generatePeriod(ctx, summariesRoot, "quarterly", start, end, summary.QuarterlyPath(summariesRoot, start))
	}
	if triggers.Yearly {
		prevYear := commitDate.AddDate(-1, 0, 0)
		start := time.Date(prevYear.Year(), time.January, 1, 0, 0, 0, 0, prevYear.Location())
		end := start.AddDate(1, 0, -1)
		p.generatePeriod(ctx, summariesRoot, "yearly", start, end, summary.YearlyPath(summariesRoot, start))
	}

	if !isNewDailyFile {
		return
	}
	prevDay := commitDate.AddDate(0, 0, -1)
	if summary.DailyExists(summariesRoot, prevDay) {
		return
	}
	p.generatePeriod(ctx, summariesRoot, "daily", prevDay, prevDay, summary.DailyPath(summariesRoot, prevDay))
}

func (p *Pipeline) generatePeriod(ctx context.Context, summariesRoot, kind string, start, end time.Time, path string) {
	period := summary.Period{Kind: kind, Label: summary.Label(kind, start), Start: start, End: end}
	content, err := p.Summaries.Generate(ctx, period)
	if err != nil {
		p.Log.Logf("CheckSummaries: %s generation failed: %v", kind, err)
		return
	}
	if content == "" {
		p.Log.Logf("CheckSummaries: %s generation returned nothing, not writing", kind)
		return
	}
	if err := writeSummaryFile(path, content); err != nil {
		p.Log.Logf("CheckSummaries: writing %s summary failed: %v", kind, err)
		return
	}
	p.Log.Logf("CheckSummaries: wrote %s summary to %s", kind, path)
}
