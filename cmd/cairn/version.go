package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/cairnlog/cairnlog/internal/config"
)

// version is the build version, normally set via -ldflags. "v0.0.0-dev"
// marks an unreleased build so the min_version check never fires locally.
var version = "v0.0.0-dev"

var versionCmd = &cobra.Command{
	Use:     "version",
	GroupID: "setup",
	Short:   "Print the cairn version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("cairn " + version)

		if version == "v0.0.0-dev" {
			return
		}

		repoPath, err := os.Getwd()
		if err != nil {
			return
		}
		cfg, err := config.Load(repoPath)
		if err != nil || cfg.MinVersion == "" {
			return
		}

		want := cfg.MinVersion
		if !semver.IsValid(want) {
			fmt.Fprintf(os.Stderr, "warning: .cairnrc.yaml's min_version %q is not a valid semver string\n", want)
			return
		}
		if semver.Compare(version, want) < 0 {
			fmt.Fprintf(os.Stderr, "warning: this repo's .cairnrc.yaml requires cairn %s or later (running %s)\n", want, version)
		}
	},
}
