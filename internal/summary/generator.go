package summary

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
)

// Period identifies one period-boundary summary to generate.
type Period struct {
	Kind  string // "daily", "weekly", "monthly", "quarterly", "yearly"
	Label string // human label, e.g. "January 2025", "2025 week 03"
	Start time.Time
	End   time.Time
}

// Generator produces the narrative content for one period summary. This is
// the external interface spec.md §1 places out of scope: per-period
// summaries are themselves just AI calls over the period's source journal
// files, not something the trigger logic itself decides how to render.
type Generator interface {
	Generate(ctx context.Context, period Period) (string, error)
}

// DailyPath, WeeklyPath, MonthlyPath, QuarterlyPath, and YearlyPath return
// the canonical write-side path for a period summary rooted at
// summariesRoot. Read-side existence checks accept the additional aliases
// in weeklyAliases etc; writes always use the canonical (first) form.
func DailyPath(summariesRoot string, day time.Time) string {
	return filepath.Join(summariesRoot, "daily", day.Format("2006-01-02")+"-summary.md")
}

func WeeklyPath(summariesRoot string, weekStart time.Time) string {
	return filepath.Join(summariesRoot, weeklyAliases(weekStart)[0])
}

func MonthlyPath(summariesRoot string, month time.Time) string {
	return filepath.Join(summariesRoot, monthlyAliases(month)[0])
}

func QuarterlyPath(summariesRoot string, quarterStart time.Time) string {
	return filepath.Join(summariesRoot, quarterlyAliases(quarterStart)[0])
}

func YearlyPath(summariesRoot string, year time.Time) string {
	return filepath.Join(summariesRoot, yearlyAliases(year)[0])
}

// DailyExists reports whether day's daily summary file already exists under
// any accepted alias (there is only the one canonical name, but this keeps
// the daily case symmetric with the others).
func DailyExists(summariesRoot string, day time.Time) bool {
	return anyExists(summariesRoot, []string{filepath.Join("daily", day.Format("2006-01-02")+"-summary.md")})
}

// Label returns a human-readable label for a period, used in log lines and
// as the Generator's prompt context.
func Label(kind string, start time.Time) string {
	switch kind {
	case "daily":
		return start.Format("January 2, 2006")
	case "weekly":
		year, week := start.ISOWeek()
		return fmt.Sprintf("%04d week %02d", year, week)
	case "monthly":
		return start.Format("January 2006")
	case "quarterly":
		q := (int(start.Month())-1)/3 + 1
		return fmt.Sprintf("%04d Q%d", start.Year(), q)
	case "yearly":
		return start.Format("2006")
	default:
		return start.Format("2006-01-02")
	}
}
