package download

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/handiism/bcdl/internal/http"
	ioutils "github.com/handiism/bcdl/internal/io"
	"github.com/handiism/bcdl/internal/model"
)

// Fetcher opens audio streams. *http.Client satisfies it.
type Fetcher interface {
	Open(ctx context.Context, url string) (*http.Stream, error)
}

// Tagger writes tags to a downloaded file. *audio.Tagger satisfies it.
type Tagger interface {
	WriteTags(ctx context.Context, path string, song model.Song) error
}

// WriteError is returned when a song cannot be written to disk.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("couldn't write file to disk: %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Options configures a Pipeline.
type Options struct {
	// SanitizeFileNames replaces characters that are invalid in file names
	// in the artist, album and song path segments.
	SanitizeFileNames bool
}

// Pipeline downloads songs one after another and tags them.
type Pipeline struct {
	fetcher Fetcher
	tagger  Tagger
	sink    Sink
	logger  zerolog.Logger
	opts    Options
}

// NewPipeline creates a new Pipeline. A nil sink is replaced by NopSink.
func NewPipeline(fetcher Fetcher, tagger Tagger, sink Sink, logger zerolog.Logger, opts Options) *Pipeline {
	if sink == nil {
		sink = NopSink{}
	}
	return &Pipeline{
		fetcher: fetcher,
		tagger:  tagger,
		sink:    sink,
		logger:  logger,
		opts:    opts,
	}
}

// DownloadAll downloads every song in list order and returns the number of
// bytes received.
//
// Each song is saved to root/artist/album/name.mp3 and tagged before the
// next one starts. An empty root means the working directory. Songs without
// an audio URL are reported to the sink and skipped. In debug mode the
// audio is received but neither written nor tagged.
//
// The first transport, write or tagging error stops the run. The bytes
// received up to that point are returned with the error.
func (p *Pipeline) DownloadAll(ctx context.Context, songs []model.Song, debug bool, root string) (int64, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return 0, err
		}
		root = wd
	}

	var total int64
	for _, song := range songs {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		n, err := p.downloadSong(ctx, song, debug, root)
		total += n
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

func (p *Pipeline) downloadSong(ctx context.Context, song model.Song, debug bool, root string) (int64, error) {
	if !song.HasAudio() {
		p.sink.Event(Event{Message: fmt.Sprintf("Audio URL not found for %q", song.Name), Level: LevelWarning})
		p.logger.Warn().Str("song", song.Name).Uint("track", song.TrackNum).Msg("Song has no audio URL")
		return 0, nil
	}

	stream, err := p.fetcher.Open(ctx, song.AudioURL)
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	label := song.Label()
	length := stream.Length()
	buf := make([]byte, 0, length)
	var received int64

	for chunk, err := range stream.Chunks() {
		if err != nil {
			return received, err
		}
		buf = append(buf, chunk...)
		received += int64(len(chunk))
		p.sink.Progress(Update{Label: label, Received: received, Total: length})
	}

	if debug {
		p.logger.Debug().Str("song", song.Name).Int64("bytes", received).Msg("Debug mode, file not written")
		p.sink.Event(Event{Message: fmt.Sprintf("Received %s (not saved)", label), Level: LevelVerbose})
		return received, nil
	}

	dir := song.Dir(root, p.opts.SanitizeFileNames)
	path := song.Path(root, p.opts.SanitizeFileNames)

	if err := ioutils.EnsureDir(dir); err != nil {
		return received, &WriteError{Path: dir, Err: err}
	}
	if err := ioutils.WriteFile(path, buf); err != nil {
		return received, &WriteError{Path: path, Err: err}
	}

	if err := p.tagger.WriteTags(ctx, path, song); err != nil {
		return received, fmt.Errorf("tag %q: %w", song.Name, err)
	}

	p.logger.Debug().Str("path", path).Int64("bytes", received).Msg("Song saved")
	p.sink.Event(Event{Message: fmt.Sprintf("Downloaded: %s", song.FileName()), Level: LevelVerbose})
	return received, nil
}
