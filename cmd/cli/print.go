package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
)

func printVersionTable(w io.Writer, tool string, pair lib.VersionPair) {
	current := valueOr(pair.Current, "not installed")
	latest := valueOr(pair.Latest, "unknown")
	status := "Update available"
	switch {
	case pair.Current == nil || pair.Latest == nil:
		status = "Unknown"
	case pair.UpToDate():
		status = "Up to date"
	}

	// Determine column widths
	toolW := maxInt(4, len(tool))
	curW := maxInt(9, len(current))
	latW := maxInt(6, len(latest))
	stW := maxInt(6, len(status))

	sep := fmt.Sprintf("+-%s-+-%s-+-%s-+-%s-+\n",
		strings.Repeat("-", toolW), strings.Repeat("-", curW), strings.Repeat("-", latW), strings.Repeat("-", stW))
	fmt.Fprint(w, sep)
	fmt.Fprintf(w, "| %s | %s | %s | %s |\n", pad("TOOL", toolW), pad("INSTALLED", curW), pad("LATEST", latW), pad("STATUS", stW))
	fmt.Fprint(w, sep)
	fmt.Fprintf(w, "| %s | %s | %s | %s |\n", pad(tool, toolW), pad(current, curW), pad(latest, latW), pad(status, stW))
	fmt.Fprint(w, sep)
}

func printOutcome(w io.Writer, outcome, summary string) {
	fmt.Fprintf(w, "[%s] %s\n", outcome, summary)
}

func valueOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
