package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/cairnlog/cairnlog/internal/gitutil"
)

const separator = "\n\n____\n\n"

// ValidationError is returned by AddReflection for a malformed or
// out-of-range date, instead of panicking or returning a generic error.
type ValidationError struct {
	Field   string
	Value   string
	Problem string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("journal: invalid %s %q: %s", e.Field, e.Value, e.Problem)
}

// dailyPath returns <journalRoot>/daily/YYYY-MM-DD-journal.md for the given
// date.
func dailyPath(journalRoot string, date time.Time) string {
	return filepath.Join(journalRoot, "daily", date.Format("2006-01-02")+"-journal.md")
}

// AppendEntry writes one commit's journal entry to the daily file for
// commitTime's calendar date (commitTime is the commit's own timestamp, not
// wall-clock, taken in its own location). Returns whether this write
// created the daily file for the first time, which the caller uses to
// decide whether the previous day's summary is now due.
func AppendEntry(journalRoot string, commitTime time.Time, commit gitutil.CommitContext, sections Sections, includeChat, includeMood bool) (isNewFile bool, err error) {
	body := render(sections, includeChat, includeMood)
	header := fmt.Sprintf("### %s — Commit %s", formatClock(commitTime), commit.Hash)
	return writeBlock(journalRoot, commitTime, header, body)
}

// AddReflection appends a free-form reflection for a calendar date given as
// "YYYY-MM-DD". date must parse as a real Gregorian date and must not be in
// the future; violations return *ValidationError without writing anything.
// The section header uses the current wall-clock time, per spec.md §4.10.
func AddReflection(journalRoot, dateStr, text string) error {
	day, err := validateDate(dateStr)
	if err != nil {
		return err
	}
	now := time.Now()
	header := fmt.Sprintf("### %s — Reflection", formatClock(now))
	_, err = writeBlock(journalRoot, day, header, text)
	return err
}

// CaptureContext appends an AI-knowledge-capture block to today's daily
// file, timestamped at wall-clock.
func CaptureContext(journalRoot, text string) error {
	now := time.Now()
	header := fmt.Sprintf("### %s — AI Knowledge Capture", formatClock(now))
	_, err := writeBlock(journalRoot, now, header, text)
	return err
}

func validateDate(dateStr string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Value: dateStr, Problem: "does not match YYYY-MM-DD"}
	}
	// time.Parse already rejects a day past the end of its month (e.g.
	// 2024-02-30 fails above and is reported as not matching YYYY-MM-DD);
	// re-formatting and comparing is a second, defensive check that the
	// parsed date reads back exactly as given.
	if day.Format("2006-01-02") != dateStr {
		return time.Time{}, &ValidationError{Field: "date", Value: dateStr, Problem: "not a valid calendar date"}
	}
	today := time.Now()
	todayDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if day.After(todayDay) {
		return time.Time{}, &ValidationError{Field: "date", Value: dateStr, Problem: "is in the future"}
	}
	return day, nil
}

func formatClock(t time.Time) string {
	return t.Format("3:04 PM")
}

// writeBlock performs the shared append mechanics: on-demand directory
// creation, a header line if the daily file is new, a separator otherwise,
// then the section header and body block. An advisory file lock narrows
// (but per spec.md §5 does not eliminate) the concurrent-commit separator
// race.
func writeBlock(journalRoot string, date time.Time, header, body string) (isNewFile bool, err error) {
	path := dailyPath(journalRoot, date)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("journal: creating directory for %s: %w", path, err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return false, fmt.Errorf("journal: acquiring lock for %s: %w", path, err)
	}
	defer lock.Unlock()

	_, statErr := os.Stat(path)
	isNewFile = os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("journal: opening %s: %w", path, err)
	}
	defer f.Close()

	var out string
	if isNewFile {
		out = fmt.Sprintf("# Daily Journal Entries - %s\n\n", date.Format("January 2, 2006"))
	} else {
		out = separator
	}
	out += header + "\n\n" + body

	if _, err := f.WriteString(out); err != nil {
		return isNewFile, fmt.Errorf("journal: writing %s: %w", path, err)
	}
	return isNewFile, nil
}
