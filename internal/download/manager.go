package download

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/handiism/bcdl/internal/audio"
	"github.com/handiism/bcdl/internal/bandcamp"
	"github.com/handiism/bcdl/internal/config"
	"github.com/handiism/bcdl/internal/http"
	"github.com/handiism/bcdl/internal/model"
)

// Manager coordinates the download of one Bandcamp page.
type Manager struct {
	settings   *config.Settings
	httpClient *http.Client
	resolver   *bandcamp.Resolver
	pipeline   *Pipeline
	sink       Sink
	logger     zerolog.Logger

	songs []model.Song
}

// NewManager creates a new download Manager wired from settings.
func NewManager(settings *config.Settings, sink Sink, logger zerolog.Logger) *Manager {
	if sink == nil {
		sink = NopSink{}
	}

	client := http.NewClient(http.Options{
		UserAgent: settings.UserAgent,
		Timeout:   settings.RequestTimeout,
	})
	tagger := audio.NewTagger(client, audio.TagOptions{
		CoverMaxSize: settings.CoverArtMaxSize,
		CoverToJPEG:  settings.ConvertCoverArtToJPG,
	})

	return &Manager{
		settings:   settings,
		httpClient: client,
		resolver:   bandcamp.NewResolver(logger),
		pipeline: NewPipeline(client, tagger, sink, logger, Options{
			SanitizeFileNames: settings.SanitizeFileNames,
		}),
		sink:   sink,
		logger: logger,
	}
}

// Initialize fetches the page at pageURL and resolves its songs.
func (m *Manager) Initialize(ctx context.Context, pageURL string) error {
	kind, err := bandcamp.KindFromURL(pageURL)
	if err != nil {
		return err
	}

	m.progress(Event{Message: fmt.Sprintf("Fetching %s info: %s", kind, pageURL), Level: LevelVerbose})
	m.logger.Debug().Str("url", pageURL).Str("kind", string(kind)).Msg("Fetching page")

	html, err := m.httpClient.GetString(ctx, pageURL)
	if err != nil {
		return err
	}

	songs, err := m.resolver.ResolvePage(kind, html)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", pageURL, err)
	}
	m.songs = songs

	if len(songs) > 0 {
		m.progress(Event{Message: foundMessage(kind, songs), Level: LevelInfo})
	}

	return nil
}

// foundMessage describes a resolved page, e.g.
// "Found album: Band - Title (2 tracks)" or "Found track: Band - Song A".
func foundMessage(kind model.Kind, songs []model.Song) string {
	first := songs[0]
	if kind == model.KindTrack {
		return fmt.Sprintf("Found track: %s - %s", first.Artist, first.Name)
	}
	count := lo.Ternary(len(songs) == 1, "1 track", fmt.Sprintf("%d tracks", len(songs)))
	return fmt.Sprintf("Found album: %s - %s (%s)", first.Artist, first.Album, count)
}

// Songs returns the songs resolved by Initialize.
func (m *Manager) Songs() []model.Song {
	return m.songs
}

// StartDownloads downloads the resolved songs into the configured output
// directory and returns the number of bytes received.
func (m *Manager) StartDownloads(ctx context.Context, debug bool) (int64, error) {
	total, err := m.pipeline.DownloadAll(ctx, m.songs, debug, m.settings.OutputDir)
	if err != nil {
		m.progress(Event{Message: err.Error(), Level: LevelError})
		return total, err
	}

	m.progress(Event{Message: fmt.Sprintf("Finished %d songs", len(m.songs)), Level: LevelSuccess})
	return total, nil
}

func (m *Manager) progress(event Event) {
	m.sink.Event(event)
}
