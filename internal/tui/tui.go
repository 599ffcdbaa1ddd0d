package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/handiism/bcdl/internal/config"
	"github.com/handiism/bcdl/internal/download"
	"github.com/handiism/bcdl/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	albumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

const maxLogs = 10

var errCancelled = errors.New("cancelled by user")

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateInitializing
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.Level
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logger    zerolog.Logger
	logs      []LogEntry
	songs     []model.Song
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	manager *download.Manager
	sink    *channelSink

	current       download.Update
	finishedSongs int
	receivedBytes int64

	verbose bool
	debug   bool

	width  int
	height int
}

// NewModel creates a new TUI model downloading with settings.
func NewModel(settings *config.Settings, logger zerolog.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "https://artist.bandcamp.com/album/name"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logger:    logger,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one chunk-level progress update.
	ProgressMsg struct {
		Update download.Update
	}

	// EventMsg carries a pipeline event.
	EventMsg struct {
		Event download.Event
	}

	// InitDoneMsg is sent when the page has been resolved.
	InitDoneMsg struct {
		Songs   []model.Song
		Manager *download.Manager
		Err     error
	}

	// DownloadDoneMsg is sent when the run ends.
	DownloadDoneMsg struct {
		Received int64
		Err      error
	}
)

// channelSink forwards pipeline output to the program as messages.
type channelSink struct {
	ctx context.Context
	ch  chan tea.Msg
}

func newChannelSink(ctx context.Context) *channelSink {
	return &channelSink{ctx: ctx, ch: make(chan tea.Msg, 64)}
}

func (s *channelSink) Progress(u download.Update) { s.send(ProgressMsg{Update: u}) }
func (s *channelSink) Event(e download.Event)     { s.send(EventMsg{Event: e}) }

func (s *channelSink) send(msg tea.Msg) {
	select {
	case s.ch <- msg:
	case <-s.ctx.Done():
	}
}

// wait returns a command delivering the next sink message.
func (s *channelSink) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-s.ch:
			return msg
		case <-s.ctx.Done():
			return nil
		}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateDownloading || m.state == StateInitializing {
				m.cancel()
				m.state = StateError
				m.err = errCancelled
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StateInitializing
				m.sink = newChannelSink(m.ctx)
				return m, tea.Batch(m.initializeDownload(), m.sink.wait(), m.spinner.Tick)
			}

		case "ctrl+l":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "ctrl+t":
			if m.state == StateInput {
				m.debug = !m.debug
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.reset()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case EventMsg:
		m.appendLog(msg.Event)
		cmds = append(cmds, m.listen())

	case ProgressMsg:
		m.current = msg.Update
		var percent float64
		if msg.Update.Total > 0 {
			percent = float64(msg.Update.Received) / float64(msg.Update.Total)
		}
		if msg.Update.Received >= msg.Update.Total {
			m.finishedSongs++
		}
		cmds = append(cmds, m.progress.SetPercent(percent), m.listen())

	case InitDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.songs = msg.Songs
			m.manager = msg.Manager
			m.state = StateDownloading
			cmds = append(cmds, m.startDownload())
		}

	case DownloadDoneMsg:
		m.receivedBytes = msg.Received
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) appendLog(e download.Event) {
	if e.Level == download.LevelVerbose && !m.verbose {
		return
	}
	m.logs = append(m.logs, LogEntry{Message: e.Message, Level: e.Level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func (m *Model) listen() tea.Cmd {
	if m.sink == nil {
		return nil
	}
	return m.sink.wait()
}

func (m *Model) reset() {
	m.state = StateInput
	m.logs = nil
	m.songs = nil
	m.err = nil
	m.current = download.Update{}
	m.finishedSongs = 0
	m.receivedBytes = 0
	m.manager = nil
	m.sink = nil
	m.cancel()
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Focus()
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♫ Bandcamp Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download music from Bandcamp"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInitializing:
		b.WriteString(m.viewInitializing())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter Bandcamp URL:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s Verbose output (ctrl+l)\n", checkbox(m.verbose))
	fmt.Fprintf(&b, "  %s Dry run, don't save files (ctrl+t)\n", checkbox(m.debug))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Download path: %s", m.outputDir())))
	b.WriteString("\n")

	return b.String()
}

func (m Model) outputDir() string {
	if m.settings.OutputDir == "" {
		return "current directory"
	}
	return m.settings.OutputDir
}

func (m Model) viewInitializing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching page info..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	if len(m.songs) > 0 {
		first := m.songs[0]
		b.WriteString(albumStyle.Render(fmt.Sprintf("♪ %s - %s", first.Artist, first.Album)))
		b.WriteString("\n\n")
	}

	if m.current.Label != "" {
		b.WriteString(successStyle.Render("Downloading"))
		b.WriteString(" ")
		b.WriteString(m.current.Label)
		b.WriteString("\n")
	}
	b.WriteString(m.progress.View())
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Songs: %d/%d | Current: %.2f/%.2f MB",
		m.finishedSongs,
		len(m.songs),
		megabytes(m.current.Received),
		megabytes(m.current.Total),
	)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	return boxStyle.Render(fmt.Sprintf(
		"Download Complete!\n\n"+
			"Songs: %d\n"+
			"Size: %.2f MB",
		m.finishedSongs,
		megabytes(m.receivedBytes),
	))
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		fmt.Fprintf(&b, "  %s", m.err.Error())
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+l: verbose • ctrl+t: dry run • esc: quit"
	case StateInitializing, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download • q: quit"
	}
	return ""
}

func megabytes(n int64) float64 {
	return float64(n) / 1024 / 1024
}

// initializeDownload resolves the page and creates the manager.
func (m Model) initializeDownload() tea.Cmd {
	ctx, url, sink := m.ctx, m.textInput.Value(), m.sink
	settings, logger := m.settings, m.logger

	return func() tea.Msg {
		manager := download.NewManager(settings, sink, logger)
		if err := manager.Initialize(ctx, url); err != nil {
			return InitDoneMsg{Err: err}
		}
		return InitDoneMsg{Songs: manager.Songs(), Manager: manager}
	}
}

// startDownload runs the pipeline in the background.
func (m Model) startDownload() tea.Cmd {
	ctx, manager, debug := m.ctx, m.manager, m.debug

	return func() tea.Msg {
		if manager == nil {
			return DownloadDoneMsg{Err: errors.New("no manager")}
		}
		received, err := manager.StartDownloads(ctx, debug)
		return DownloadDoneMsg{Received: received, Err: err}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings, logger zerolog.Logger) error {
	p := tea.NewProgram(NewModel(settings, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
