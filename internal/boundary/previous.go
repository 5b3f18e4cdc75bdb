package boundary

import (
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var journalHeaderPattern = regexp.MustCompile(`(?im)^(#{2,3})\s*(.+?)\s*[-—]\s*Commit\s+([\w-]+)`)

// PreviousJournalEntry walks backward from before, up to 7 days, looking for
// the most recent daily journal file, and returns the trailing content from
// its last commit-entry header to end of file. Returns "" if none is found
// within the window.
func PreviousJournalEntry(journalRoot string, before time.Time) string {
	for i := 1; i <= 7; i++ {
		day := before.AddDate(0, 0, -i)
		path := filepath.Join(journalRoot, "daily", day.Format("2006-01-02")+"-journal.md")
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		locs := journalHeaderPattern.FindAllStringIndex(string(data), -1)
		if len(locs) == 0 {
			continue
		}
		last := locs[len(locs)-1]
		return string(data)[last[0]:]
	}
	return ""
}
