package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairnlog/internal/config"
	"github.com/cairnlog/cairnlog/internal/journal"
)

var captureContextCmd = &cobra.Command{
	Use:     "capture-context <text>",
	GroupID: "journal",
	Short:   "Append an AI knowledge-capture note to today's journal entry",
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

		journalRoot := filepath.Join(repoPath, cfg.Journal.Path)
		if err := journal.CaptureContext(journalRoot, text); err != nil {
			fmt.Fprintf(os.Stderr, "cairn: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Captured.")
	},
}
