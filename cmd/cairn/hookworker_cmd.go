package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairnlog/internal/aiprovider"
	"github.com/cairnlog/cairnlog/internal/hookworker"
)

var hookWorkerCommitFlag string

var hookWorkerCmd = &cobra.Command{
	Use:     "hook-worker <repo-path>",
	GroupID: "internal",
	Short:   "Run the per-commit journal pipeline (invoked by the post-commit hook)",
	Long: `hook-worker is what the installed post-commit hook calls; it is not meant
to be run by hand except to debug a failed entry. It always exits 0 — a
broken AI call or an unreadable config degrades the run rather than
failing the commit that triggered it.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repoPath := args[0]

		timeout, err := resolveTimeout(30 * time.Second)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(0)
		}

		log, err := hookworker.NewLogger(repoPath, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "cairn: could not open hook log: %v\n", err)
			os.Exit(0)
		}

		pipeline := hookworker.NewPipeline(aiprovider.New("", "", ""), log)
		pipeline.OverrideAPIKey = flagAPIKey
		pipeline.OverrideModel = flagModel

		ctx, cancel := context.WithTimeout(rootCtx, timeout)
		defer cancel()

		if err := pipeline.Run(ctx, repoPath, hookWorkerCommitFlag); err != nil {
			log.Logf("hook-worker: run ended with error: %v", err)
		}

		os.Exit(0)
	},
}

func init() {
	hookWorkerCmd.Flags().StringVar(&hookWorkerCommitFlag, "commit", "", "commit SHA to process (default: HEAD)")
}
