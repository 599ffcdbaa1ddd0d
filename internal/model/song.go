package model

import (
	"fmt"
	"path/filepath"

	ioutils "github.com/handiism/bcdl/internal/io"
)

// Kind selects which structured-data shape a page carries.
//
// The kind is taken from the first path segment of a Bandcamp page URL:
//
//	https://artist.bandcamp.com/album/name -> KindAlbum
//	https://artist.bandcamp.com/track/name -> KindTrack
type Kind string

const (
	// KindAlbum is a track-listing document (one song per list item).
	KindAlbum Kind = "album"

	// KindTrack is a single-track document nested under its album.
	KindTrack Kind = "track"
)

// Song is one resolved song of an album or track page.
//
// A Song is built once by the resolver and is never modified afterwards; the
// download pipeline and the tagger only read it. All string fields hold
// decoded text, so no JSON quoting is left in them.
type Song struct {
	// Album is the album title.
	Album string

	// Artist is the album artist name.
	Artist string

	// Name is the song title with ":" replaced by ".".
	Name string

	// TrackNum is the 1-based position taken from the document's explicit
	// position field, not from list order.
	TrackNum uint

	// AudioURL is the URL of the mp3-128 stream.
	// Empty string means no audio preview was advertised for this song.
	AudioURL string

	// ImageURL is the absolute URL of the cover art.
	ImageURL string

	// SiteURL is the absolute URL of the page the song was resolved from.
	SiteURL string

	// ReleaseDate is the raw RFC 2822 date text. It is parsed when tags are written.
	ReleaseDate string

	// Description is the album description. Always empty for track pages.
	Description string
}

// HasAudio reports whether an audio stream was advertised for the song.
func (s Song) HasAudio() bool {
	return s.AudioURL != ""
}

// Label returns the text shown next to the song's progress bar.
//
// Example:
//
//	song.Label() // "Track 3 - Song Title"
func (s Song) Label() string {
	return fmt.Sprintf("Track %d - %s", s.TrackNum, s.Name)
}

// FileName returns the song's file name with the .mp3 extension.
func (s Song) FileName() string {
	return s.Name + ".mp3"
}

// Dir returns the directory the song is saved to: root/artist/album.
//
// Artist and album are used verbatim as path segments unless sanitize is set,
// in which case characters that are invalid in file names are replaced.
func (s Song) Dir(root string, sanitize bool) string {
	artist, album := s.Artist, s.Album
	if sanitize {
		artist = ioutils.SanitizeFileName(artist)
		album = ioutils.SanitizeFileName(album)
	}
	return filepath.Join(root, artist, album)
}

// Path returns the full file path the song is saved to:
// root/artist/album/name.mp3.
//
// Example:
//
//	song := Song{Artist: "Band", Album: "Title", Name: "Song A"}
//	song.Path("/music", false) // "/music/Band/Title/Song A.mp3"
func (s Song) Path(root string, sanitize bool) string {
	name := s.FileName()
	if sanitize {
		name = ioutils.SanitizeFileName(s.Name) + ".mp3"
	}
	return filepath.Join(s.Dir(root, sanitize), name)
}
