package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairnlog/internal/config"
	"github.com/cairnlog/cairnlog/internal/journal"
)

var reflectDateFlag string

var reflectCmd = &cobra.Command{
	Use:     "reflect <text>",
	GroupID: "journal",
	Short:   "Add a free-form reflection to a daily journal entry",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text := strings.Join(args, " ")

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

		dateStr := reflectDateFlag
		if dateStr == "" {
			dateStr = time.Now().Format("2006-01-02")
		}

		journalRoot := filepath.Join(repoPath, cfg.Journal.Path)
		if err := journal.AddReflection(journalRoot, dateStr, text); err != nil {
			fmt.Fprintf(os.Stderr, "cairn: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Reflection added to %s\n", dateStr)
	},
}

func init() {
	reflectCmd.Flags().StringVar(&reflectDateFlag, "date", "", "calendar date to reflect on (YYYY-MM-DD, default today)")
}
