package gitutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func TestSizeClassFor(t *testing.T) {
	cases := []struct {
		lines int
		want  SizeClass
	}{
		{0, SizeSmall},
		{9, SizeSmall},
		{10, SizeMedium},
		{49, SizeMedium},
		{50, SizeLarge},
		{500, SizeLarge},
	}
	for _, c := range cases {
		if got := sizeClassFor(c.lines); got != c.want {
			t.Errorf("sizeClassFor(%d) = %s, want %s", c.lines, got, c.want)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		want func(FileStats) int
	}{
		{"internal/foo_test.go", func(s FileStats) int { return s.Tests }},
		{"README.md", func(s FileStats) int { return s.Docs }},
		{"config.yaml", func(s FileStats) int { return s.Config }},
		{"internal/foo.go", func(s FileStats) int { return s.Source }},
	}
	for _, c := range cases {
		var stats FileStats
		classify(&stats, c.name)
		if c.want(stats) != 1 {
			t.Errorf("classify(%q) did not land in expected bucket: %+v", c.name, stats)
		}
	}
}

func TestMatchesAny(t *testing.T) {
	if !matchesAny("vendor/foo.go", []string{"vendor/*"}) {
		t.Error("expected vendor/foo.go to match vendor/*")
	}
	if matchesAny("internal/foo.go", []string{"vendor/*"}) {
		t.Error("did not expect internal/foo.go to match vendor/*")
	}
}

func TestBuildCommitContext_RealRepo(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := wt.Add("main.go"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()}
	hash, err := wt.Commit("initial commit", &git.CommitOptions{Author: sig})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	commit, err := repo.CommitObject(hash)
	if err != nil {
		t.Fatalf("CommitObject: %v", err)
	}

	ctx, err := BuildCommitContext(commit, nil)
	if err != nil {
		t.Fatalf("BuildCommitContext: %v", err)
	}

	if ctx.IsMerge {
		t.Error("expected IsMerge=false for a single-parent-less commit")
	}
	if len(ctx.ChangedFiles) != 1 || ctx.ChangedFiles[0] != "main.go" {
		t.Errorf("changed files = %v, want [main.go]", ctx.ChangedFiles)
	}
	if ctx.FileStats.Source != 1 {
		t.Errorf("expected 1 source file, got %+v", ctx.FileStats)
	}
}

func TestIsJournalOnly(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, _ := repo.Worktree()

	if err := os.MkdirAll(filepath.Join(dir, "journal", "daily"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "journal", "daily", "2025-01-01-journal.md"), []byte("# Daily Journal Entries - January 1, 2025\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add("journal/daily/2025-01-01-journal.md"); err != nil {
		t.Fatal(err)
	}
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()}
	hash, err := wt.Commit("journal entry", &git.CommitOptions{Author: sig})
	if err != nil {
		t.Fatal(err)
	}
	commit, _ := repo.CommitObject(hash)

	only, err := IsJournalOnly(commit, "journal")
	if err != nil {
		t.Fatalf("IsJournalOnly: %v", err)
	}
	if !only {
		t.Error("expected journal-only commit to be detected")
	}
}
