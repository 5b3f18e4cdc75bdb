package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairnlog/internal/hookworker"
	"github.com/cairnlog/cairnlog/internal/ui"
)

const configTemplate = `journal:
  path: journal
  auto_generate: true
  include_chat: true
  include_mood: true

git:
  exclude_patterns:
    - ".git/**"
    - "journal/**"

ai:
  openai_api_key: ${ANTHROPIC_API_KEY}
  model: claude-sonnet-4-5

telemetry:
  enabled: false
`

var initCmd = &cobra.Command{
	Use:     "init",
	GroupID: "setup",
	Short:   "Create .cairnrc.yaml and install the post-commit hook",
	Run: func(cmd *cobra.Command, args []string) {
		repoPath, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cairn: %v\n", err)
			os.Exit(1)
		}

		configPath := filepath.Join(repoPath, ".cairnrc.yaml")
		if _, err := os.Stat(configPath); err == nil {
			fmt.Printf("%s already exists, leaving it alone.\n", configPath)
		} else {
			if err := os.WriteFile(configPath, []byte(configTemplate), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "cairn: writing %s: %v\n", configPath, err)
				os.Exit(1)
			}
			fmt.Printf("Created %s\n", configPath)
		}

		if _, err := os.Stat(filepath.Join(repoPath, ".git")); err != nil {
			fmt.Println("No .git directory found here; skipping hook installation.")
			return
		}

		if !ui.PromptYesNo("Install the post-commit hook now?", true) {
			fmt.Println("Skipped hook installation. Run 'cairn init' again later to install it.")
			return
		}

		if err := hookworker.InstallPostCommitHook(repoPath, hookworker.PromptInstall); err != nil {
			fmt.Fprintf(os.Stderr, "cairn: installing hook: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Post-commit hook installed.")
	},
}
