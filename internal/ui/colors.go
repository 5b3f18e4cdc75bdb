package ui

import "github.com/charmbracelet/lipgloss"

// Color palette for CLI status output. The teacher's own retrieved tree
// references these identifiers (table.go) without defining them in the
// files the retrieval pack captured; defined here as adaptive colors so
// output stays legible on both light and dark terminal backgrounds.
var (
	ColorAccent = lipgloss.AdaptiveColor{Light: "25", Dark: "75"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "130", Dark: "214"}
	ColorPass   = lipgloss.AdaptiveColor{Light: "28", Dark: "78"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "246", Dark: "242"}
)
