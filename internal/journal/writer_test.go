package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cairnlog/cairnlog/internal/gitutil"
)

func TestAppendEntry_FirstWriteHasHeader(t *testing.T) {
	root := t.TempDir()
	commitTime := time.Date(2025, 3, 14, 9, 5, 0, 0, time.UTC)
	commit := gitutil.CommitContext{Hash: "abc123"}
	sections := Sections{Summary: "Did the thing."}

	isNew, err := AppendEntry(root, commitTime, commit, sections, true, true)
	if err != nil {
		t.Fatalf("AppendEntry: %v", err)
	}
	if !isNew {
		t.Fatal("expected isNewFile=true on first write")
	}

	path := dailyPath(root, commitTime)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading daily file: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# Daily Journal Entries - March 14, 2025") {
		t.Errorf("first line missing expected header, got: %q", firstLine(content))
	}
	if !strings.Contains(content, "### 9:05 AM — Commit abc123") {
		t.Errorf("missing section header, got:\n%s", content)
	}
	if !strings.Contains(content, "#### Summary") {
		t.Errorf("missing Summary section, got:\n%s", content)
	}
}

func TestAppendEntry_SecondWriteUsesSeparator(t *testing.T) {
	root := t.TempDir()
	commitTime := time.Date(2025, 3, 14, 9, 5, 0, 0, time.UTC)
	commit := gitutil.CommitContext{Hash: "abc123"}

	if _, err := AppendEntry(root, commitTime, commit, Sections{Summary: "first"}, true, true); err != nil {
		t.Fatalf("first append: %v", err)
	}

	second := commitTime.Add(2 * time.Hour)
	isNew, err := AppendEntry(root, second, gitutil.CommitContext{Hash: "def456"}, Sections{Summary: "second"}, true, true)
	if err != nil {
		t.Fatalf("second append: %v", err)
	}
	if isNew {
		t.Error("expected isNewFile=false on second write to the same day")
	}

	data, _ := os.ReadFile(dailyPath(root, commitTime))
	if strings.Count(string(data), "# Daily Journal Entries") != 1 {
		t.Error("header should appear exactly once")
	}
	if !strings.Contains(string(data), "\n\n____\n\n") {
		t.Error("expected separator between entries")
	}
}

func TestAddReflection_ValidatesDate(t *testing.T) {
	root := t.TempDir()

	cases := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"valid past date", "2020-01-15", false},
		{"malformed", "01/15/2020", true},
		{"impossible calendar date", "2024-02-30", true},
		{"future date", time.Now().AddDate(1, 0, 0).Format("2006-01-02"), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := AddReflection(root, c.date, "some reflection text")
			if c.wantErr && err == nil {
				t.Fatalf("expected an error for date %q", c.date)
			}
			if !c.wantErr && err != nil {
				t.Fatalf("unexpected error for date %q: %v", c.date, err)
			}
			if c.wantErr {
				var ve *ValidationError
				if !isValidationError(err, &ve) {
					t.Errorf("expected *ValidationError, got %T", err)
				}
			}
		})
	}
}

func isValidationError(err error, target **ValidationError) bool {
	ve, ok := err.(*ValidationError)
	if ok {
		*target = ve
	}
	return ok
}

func TestCaptureContext_WritesToTodaysFile(t *testing.T) {
	root := t.TempDir()
	if err := CaptureContext(root, "learned something"); err != nil {
		t.Fatalf("CaptureContext: %v", err)
	}

	path := dailyPath(root, time.Now())
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading today's file: %v", err)
	}
	if !strings.Contains(string(data), "AI Knowledge Capture") {
		t.Errorf("missing capture header, got:\n%s", data)
	}
}

func TestWriteBlock_CreatesDirectoryOnDemand(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does", "not", "exist", "yet")
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Fatal("precondition: root should not exist")
	}

	if err := CaptureContext(root, "x"); err != nil {
		t.Fatalf("CaptureContext: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "daily")); err != nil {
		t.Errorf("expected daily directory to be created on demand: %v", err)
	}
}

func firstLine(s string) string {
	if i := strings.Index(s, "\n"); i >= 0 {
		return s[:i]
	}
	return s
}
