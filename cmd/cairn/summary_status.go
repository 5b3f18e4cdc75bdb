package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/cairnlog/cairnlog/internal/config"
	"github.com/cairnlog/cairnlog/internal/gitutil"
	"github.com/cairnlog/cairnlog/internal/summary"
	"github.com/cairnlog/cairnlog/internal/ui"
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	GroupID: "journal",
	Short:   "Inspect period summary state",
}

var summaryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report which period summaries are due as of HEAD",
	Run: func(cmd *cobra.Command, args []string) {
		repoPath, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cairn: %v\n", err)
			os.Exit(1)
		}
		cfg, err := config.Load(repoPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cairn: %v\n", err)
			os.Exit(1)
		}
		summariesRoot := filepath.Join(repoPath, cfg.Journal.Path, "summaries")

		currentDate, lastCommitDate := headAndParentDates(repoPath)
		triggers := summary.CalculateTriggers(summariesRoot, lastCommitDate, currentDate)

		rows := [][]string{
			{"weekly", status(triggers.Weekly)},
			{"monthly", status(triggers.Monthly)},
			{"quarterly", status(triggers.Quarterly)},
			{"yearly", status(triggers.Yearly)},
			{"daily (yesterday)", status(!summary.DailyExists(summariesRoot, currentDate.AddDate(0, 0, -1)))},
		}

		out := ui.NewStatusTable(40).
			Headers("Period", "Due").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return ui.TableHeaderStyle
				}
				return lipgloss.NewStyle()
			}).
			String()
		fmt.Println(out)
	},
}

func status(due bool) string {
	if due {
		return "due"
	}
	return "up to date"
}

// headAndParentDates returns HEAD's author date and, if it has a first
// parent, that parent's author date — the same pair the pipeline would use
// as (currentCommitDate, lastCommitDate) for a CommitBased window, letting
// this diagnostic ask the same question CalculateTriggers answers live.
func headAndParentDates(repoPath string) (current, last time.Time) {
	repo, err := gitutil.OpenRepo(repoPath)
	if err != nil {
		return time.Now(), time.Time{}
	}
	head, err := repo.Head()
	if err != nil {
		return time.Now(), time.Time{}
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return time.Now(), time.Time{}
	}
	current = commit.Author.When
	parent, err := commit.Parent(0)
	if err != nil {
		return current, time.Time{}
	}
	return current, parent.Author.When
}

func init() {
	summaryCmd.AddCommand(summaryStatusCmd)
}
