package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"

	"github.com/handiism/bcdl/internal/download"
)

var (
	downloadingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#95E1A3"))
	errorStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFE66D"))
	successStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	infoStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
)

// Console is a download.Sink that draws one progress bar per song and
// prints events as single lines.
//
// Example:
//
//	console := progress.NewConsole(os.Stderr, verbose)
//	defer console.Close()
//	manager := download.NewManager(settings, console, logger)
type Console struct {
	out     io.Writer
	verbose bool

	mu    sync.Mutex
	bar   *progressbar.ProgressBar
	label string
}

// NewConsole creates a Console writing to out. Verbose events are only
// printed when verbose is set.
func NewConsole(out io.Writer, verbose bool) *Console {
	return &Console{out: out, verbose: verbose}
}

// Progress implements download.Sink.
func (c *Console) Progress(u download.Update) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bar == nil || c.label != u.Label {
		c.finishLocked()
		c.bar = c.newBar(u)
		c.label = u.Label
	}

	_ = c.bar.Set64(u.Received)
	if u.Received >= u.Total {
		c.finishLocked()
	}
}

// Event implements download.Sink.
func (c *Console) Event(e download.Event) {
	if e.Level == download.LevelVerbose && !c.verbose {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.finishLocked()
	fmt.Fprintln(c.out, FormatEvent(e))
}

// Close finishes a bar left open by an interrupted download.
func (c *Console) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finishLocked()
}

func (c *Console) newBar(u download.Update) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		u.Total,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription(downloadingStyle.Render("Downloading")+" "+u.Label),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(0),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *Console) finishLocked() {
	if c.bar == nil {
		return
	}
	if !c.bar.IsFinished() {
		_ = c.bar.Finish()
	}
	c.bar = nil
	c.label = ""
}

// FormatEvent renders an event as one styled console line.
func FormatEvent(e download.Event) string {
	switch e.Level {
	case download.LevelError:
		return errorStyle.Render("Error:") + " " + e.Message
	case download.LevelWarning:
		return warningStyle.Render("Warning:") + " " + e.Message
	case download.LevelSuccess:
		return successStyle.Render(e.Message)
	case download.LevelInfo:
		return infoStyle.Render(e.Message)
	default:
		return dimStyle.Render(e.Message)
	}
}
