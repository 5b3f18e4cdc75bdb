package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairnlog/internal/aiprovider"
	"github.com/cairnlog/cairnlog/internal/hookworker"
)

var watchCmd = &cobra.Command{
	Use:     "watch [repo-path]",
	GroupID: "internal",
	Short:   "Re-run the journal pipeline against HEAD whenever .cairnrc.yaml changes",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repoPath := "."
		if len(args) == 1 {
			repoPath = args[0]
		}
		abs, err := filepath.Abs(repoPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cairn: %v\n", err)
			os.Exit(1)
		}

		log, err := hookworker.NewLogger(abs, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "cairn: could not open hook log: %v\n", err)
			os.Exit(1)
		}
		pipeline := hookworker.NewPipeline(aiprovider.New("", "", ""), log)
		pipeline.OverrideAPIKey = flagAPIKey
		pipeline.OverrideModel = flagModel

		ctx, cancel := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer cancel()

		fmt.Printf("Watching %s for .cairnrc.yaml changes (Ctrl-C to stop)...\n", abs)
		if err := hookworker.Watch(ctx, pipeline, abs); err != nil {
			fmt.Fprintf(os.Stderr, "cairn: watch ended: %v\n", err)
			os.Exit(1)
		}
	},
}
