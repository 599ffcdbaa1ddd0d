package download

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/bcdl/internal/bandcamp"
	"github.com/handiism/bcdl/internal/config"
	"github.com/handiism/bcdl/internal/model"
)

// newBandcampServer serves an album page whose ld+json points back at the
// server for the audio and cover art.
func newBandcampServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/album/title", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><script type="application/ld+json">{
			"name": "Title",
			"image": "%[1]s/cover.jpg",
			"@id": "%[1]s/album/title",
			"byArtist": {"name": "Band"},
			"datePublished": "Mon, 01 Jan 2024 00:00:00 +0000",
			"description": "desc",
			"track": {"itemListElement": [
				{"position": 1, "item": {"name": "Song A", "additionalProperty": [
					{"name": "file_mp3-128", "value": "%[1]s/a.mp3"}
				]}},
				{"position": 2, "item": {"name": "Song B", "additionalProperty": []}}
			]}
		}</script></head><body></body></html>`, srv.URL)
	})
	mux.HandleFunc("/track/song-a", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><script type="application/ld+json">{
			"name": "Song A",
			"image": "%[1]s/cover.jpg",
			"@id": "%[1]s/track/song-a",
			"byArtist": {"name": "Band"},
			"inAlbum": {"name": "Title"},
			"datePublished": "Mon, 01 Jan 2024 00:00:00 +0000",
			"additionalProperty": [
				{"name": "tracknum", "value": 1},
				{"name": "file_mp3-128", "value": "%[1]s/a.mp3"}
			]
		}</script></head><body></body></html>`, srv.URL)
	})
	mux.HandleFunc("/a.mp3", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "8")
		w.Write([]byte("mp3 data"))
	})
	mux.HandleFunc("/cover.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("cover"))
	})
	mux.HandleFunc("/music", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	})

	return srv
}

func TestManager_EndToEnd(t *testing.T) {
	srv := newBandcampServer(t)
	settings := config.DefaultSettings()
	settings.OutputDir = t.TempDir()
	sink := &recordingSink{}

	m := NewManager(settings, sink, zerolog.Nop())
	require.NoError(t, m.Initialize(context.Background(), srv.URL+"/album/title"))
	require.Len(t, m.Songs(), 2)

	total, err := m.StartDownloads(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)

	tag, err := id3v2.Open(filepath.Join(settings.OutputDir, "Band", "Title", "Song A.mp3"), id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tag.Close()
	assert.Equal(t, "Song A", tag.Title())
	assert.Equal(t, "1", tag.GetTextFrame("TRCK").Text)

	var messages []string
	for _, e := range sink.events {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "Found album: Band - Title (2 tracks)")
	assert.Contains(t, messages, `Audio URL not found for "Song B"`)
}

func TestManager_Initialize_Track(t *testing.T) {
	srv := newBandcampServer(t)
	settings := config.DefaultSettings()
	settings.OutputDir = t.TempDir()
	sink := &recordingSink{}

	m := NewManager(settings, sink, zerolog.Nop())
	require.NoError(t, m.Initialize(context.Background(), srv.URL+"/track/song-a"))
	require.Len(t, m.Songs(), 1)

	require.NotEmpty(t, sink.events)
	assert.Equal(t, "Found track: Band - Song A", sink.events[len(sink.events)-1].Message)

	total, err := m.StartDownloads(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)
}

func TestFoundMessage(t *testing.T) {
	songA := model.Song{Artist: "Band", Album: "Title", Name: "Song A", TrackNum: 1}
	songB := model.Song{Artist: "Band", Album: "Title", Name: "Song B", TrackNum: 2}

	tests := []struct {
		name  string
		kind  model.Kind
		songs []model.Song
		want  string
	}{
		{
			name:  "album",
			kind:  model.KindAlbum,
			songs: []model.Song{songA, songB},
			want:  "Found album: Band - Title (2 tracks)",
		},
		{
			name:  "single track album",
			kind:  model.KindAlbum,
			songs: []model.Song{songA},
			want:  "Found album: Band - Title (1 track)",
		},
		{
			name:  "track page",
			kind:  model.KindTrack,
			songs: []model.Song{songA},
			want:  "Found track: Band - Song A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, foundMessage(tt.kind, tt.songs))
		})
	}
}

func TestManager_Initialize_Errors(t *testing.T) {
	srv := newBandcampServer(t)
	m := NewManager(config.DefaultSettings(), nil, zerolog.Nop())

	err := m.Initialize(context.Background(), srv.URL+"/music")
	assert.ErrorIs(t, err, bandcamp.ErrUnsupportedKind)

	err = m.Initialize(context.Background(), srv.URL+"/track/none")
	assert.Error(t, err, "404 page")
}
