package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/handiism/bcdl/internal/bandcamp"
)

var (
	errorLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	helpFlagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
)

var sizeUnits = []string{"B", "KiB", "MiB", "GiB", "TiB"}

func kindLabel(pageURL string) (string, error) {
	kind, err := bandcamp.KindFromURL(pageURL)
	if err != nil {
		return "", err
	}
	return string(kind), nil
}

// summary renders the line printed after a successful run.
func summary(tracks int, size int64, elapsed time.Duration) string {
	count := lo.Ternary(tracks == 1, "1 Track", fmt.Sprintf("%d Tracks", tracks))
	return fmt.Sprintf("Downloaded %s and %s in %d Seconds.", count, formatSize(size), int64(elapsed.Seconds()))
}

func formatSize(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}

	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", errorLabelStyle.Render("error:"), err)
	fmt.Fprint(w, "\nUSAGE:\n    bcdl --url <url>\n\n")
	fmt.Fprintf(w, "For more information try %s\n", helpFlagStyle.Render("--help"))
}
