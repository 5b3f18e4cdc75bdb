// Command cairn generates an engineering journal from git commits and Cursor
// chat history. See cairn init for setup and cairn hook-worker for the
// post-commit entry point installed git hooks invoke.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	rootCtx = context.Background()

	flagAPIKey  string
	flagModel   string
	flagTimeout string
)

var rootCmd = &cobra.Command{
	Use:   "cairn",
	Short: "Engineering journal generator driven by git commits and chat history",
}

func main() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "setup", Title: "Setup:"},
		&cobra.Group{ID: "journal", Title: "Journal:"},
		&cobra.Group{ID: "internal", Title: "Internal:"},
	)

	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "override the configured AI API key")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "override the configured AI model")
	rootCmd.PersistentFlags().StringVar(&flagTimeout, "timeout", "", "override the hook worker's run timeout (e.g. 30s)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(hookWorkerCmd)
	rootCmd.AddCommand(reflectCmd)
	rootCmd.AddCommand(captureContextCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
