package bandcamp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/handiism/bcdl/internal/bandcamp/dto"
	"github.com/handiism/bcdl/internal/model"
)

// Resolver turns the ld+json document of a Bandcamp page into songs.
//
// Two document shapes are supported: the track page, which describes one
// recording nested under its album, and the album page, which carries a
// track listing. Every call returns a fresh list; the Resolver keeps no
// state between calls.
//
// Example usage:
//
//	resolver := bandcamp.NewResolver(logger)
//
//	kind, _ := bandcamp.KindFromURL("https://artist.bandcamp.com/album/name")
//	songs, err := resolver.ResolvePage(kind, pageHTML)
//	if err != nil {
//	    return err
//	}
//	for _, song := range songs {
//	    fmt.Println(song.Label())
//	}
type Resolver struct {
	logger zerolog.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(logger zerolog.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// KindFromURL returns the page kind named by the first path segment of
// pageURL. Only /album/ and /track/ pages are supported.
func KindFromURL(pageURL string) (model.Kind, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnsupportedKind, err)
	}

	segment, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	switch kind := model.Kind(segment); kind {
	case model.KindAlbum, model.KindTrack:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, segment)
	}
}

// ResolvePage locates the first ld+json block of an HTML page and resolves
// it as a document of the given kind.
func (r *Resolver) ResolvePage(kind model.Kind, html string) ([]model.Song, error) {
	block, err := FirstStructuredData(html)
	if err != nil {
		return nil, err
	}
	return r.Resolve(kind, []byte(block))
}

// Resolve dispatches raw to ResolveAlbum or ResolveTrack.
func (r *Resolver) Resolve(kind model.Kind, raw []byte) ([]model.Song, error) {
	switch kind {
	case model.KindAlbum:
		return r.ResolveAlbum(raw)
	case model.KindTrack:
		return r.ResolveTrack(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, string(kind))
	}
}

// ResolveTrack resolves a track page document into a one-element list.
//
// The track number is read from the "tracknum" property and the audio URL
// from the "file_mp3-128" property. A document without the audio property
// still yields its song, with an empty AudioURL.
func (r *Resolver) ResolveTrack(raw []byte) ([]model.Song, error) {
	var doc dto.LDTrack
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	switch {
	case doc.InAlbum == nil || doc.InAlbum.Name == nil:
		return nil, missing("inAlbum.name")
	case doc.Name == nil:
		return nil, missing("name")
	case doc.Image == nil:
		return nil, missing("image")
	case doc.ID == nil:
		return nil, missing("@id")
	case doc.ByArtist == nil || doc.ByArtist.Name == nil:
		return nil, missing("byArtist.name")
	}

	prop, ok := dto.FindProperty(doc.AdditionalProperty, dto.PropTrackNum)
	if !ok {
		return nil, missing(dto.PropTrackNum)
	}
	trackNum, ok := prop.Uint()
	if !ok {
		return nil, &InvalidFieldError{Field: dto.PropTrackNum, Value: string(prop.Value)}
	}

	audioURL, err := audioURLOf(doc.AdditionalProperty)
	if err != nil {
		return nil, err
	}

	song := model.Song{
		Album:       clean(*doc.InAlbum.Name),
		Artist:      clean(*doc.ByArtist.Name),
		Name:        cleanName(*doc.Name),
		TrackNum:    trackNum,
		AudioURL:    audioURL,
		ImageURL:    clean(*doc.Image),
		SiteURL:     clean(*doc.ID),
		ReleaseDate: clean(doc.DatePublished),
	}

	r.logger.Debug().
		Str("album", song.Album).
		Str("name", song.Name).
		Bool("has_audio", song.HasAudio()).
		Msg("resolved track document")

	return []model.Song{song}, nil
}

// ResolveAlbum resolves an album page document into its track listing.
//
// Songs are returned in listing order with one song per distinct position.
// When several items share a position, the first item carrying an audio URL
// wins. An item without an audio URL produces a placeholder song that a
// later item with audio at the same position replaces in place.
func (r *Resolver) ResolveAlbum(raw []byte) ([]model.Song, error) {
	var doc dto.LDAlbum
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	switch {
	case doc.Name == nil:
		return nil, missing("name")
	case doc.Image == nil:
		return nil, missing("image")
	case doc.ID == nil:
		return nil, missing("@id")
	case doc.ByArtist == nil || doc.ByArtist.Name == nil:
		return nil, missing("byArtist.name")
	case doc.Track == nil || doc.Track.ItemListElement == nil:
		return nil, missing("track.itemListElement")
	}

	base := model.Song{
		Album:       clean(*doc.Name),
		Artist:      clean(*doc.ByArtist.Name),
		ImageURL:    clean(*doc.Image),
		SiteURL:     clean(*doc.ID),
		ReleaseDate: clean(doc.DatePublished),
		Description: clean(doc.Description),
	}

	listing := *doc.Track.ItemListElement
	songs := make([]model.Song, 0, len(listing))
	seen := make(map[uint]int, len(listing))
	skipped := 0

	for _, entry := range listing {
		trackNum, ok := dto.DecodeUint(entry.Position)
		if !ok {
			return nil, &InvalidFieldError{Field: "position", Value: string(entry.Position)}
		}
		if entry.Item == nil || entry.Item.Name == nil {
			return nil, missing("item.name")
		}

		audioURL, err := audioURLOf(entry.Item.AdditionalProperty)
		if err != nil {
			return nil, err
		}

		song := base
		song.Name = cleanName(*entry.Item.Name)
		song.TrackNum = trackNum
		song.AudioURL = audioURL

		idx, dup := seen[trackNum]
		switch {
		case !dup:
			seen[trackNum] = len(songs)
			songs = append(songs, song)
		case song.HasAudio() && !songs[idx].HasAudio():
			songs[idx] = song
		default:
			skipped++
		}
	}

	r.logger.Debug().
		Str("album", base.Album).
		Int("songs", len(songs)).
		Int("duplicates", skipped).
		Msg("resolved album document")

	return songs, nil
}

// audioURLOf returns the mp3-128 stream URL of a property list, or an
// empty string when the list advertises none.
func audioURLOf(props []dto.LDProperty) (string, error) {
	prop, ok := dto.FindProperty(props, dto.PropMP3128)
	if !ok {
		return "", nil
	}
	text, ok := prop.Text()
	if !ok {
		return "", &InvalidFieldError{Field: dto.PropMP3128}
	}
	return clean(text), nil
}

// clean removes literal double quotes from a decoded string.
func clean(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}

// cleanName is clean plus ":" replaced by "." so the name is usable as a
// file name.
func cleanName(s string) string {
	return strings.ReplaceAll(clean(s), ":", ".")
}
