package dto

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

// LDTrack is the ld+json document of a Bandcamp track page.
type LDTrack struct {
	Name               *string      `json:"name"`
	Image              *string      `json:"image"`
	ID                 *string      `json:"@id"`
	ByArtist           *LDArtist    `json:"byArtist"`
	InAlbum            *LDAlbumRef  `json:"inAlbum"`
	DatePublished      string       `json:"datePublished"`
	AdditionalProperty []LDProperty `json:"additionalProperty"`
}

// LDAlbumRef is the inAlbum relation of a track document.
type LDAlbumRef struct {
	Name *string `json:"name"`
}

// LDProperty is a schema.org PropertyValue. Bandcamp uses these to carry
// the track number and the stream URLs.
type LDProperty struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

// Property names read from additionalProperty lists.
const (
	PropTrackNum = "tracknum"
	PropMP3128   = "file_mp3-128"
)

// FindProperty returns the first property named name.
func FindProperty(props []LDProperty, name string) (LDProperty, bool) {
	for _, p := range props {
		if p.Name == name {
			return p, true
		}
	}
	return LDProperty{}, false
}

// Text decodes the value as a JSON string.
func (p LDProperty) Text() (string, bool) {
	if isNull(p.Value) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(p.Value, &s); err != nil {
		return "", false
	}
	return s, true
}

// Uint decodes the value as a non-negative JSON integer.
func (p LDProperty) Uint() (uint, bool) {
	return DecodeUint(p.Value)
}

// DecodeUint decodes raw as a non-negative JSON integer. Floats, strings,
// negative numbers and missing values are rejected.
func DecodeUint(raw json.RawMessage) (uint, bool) {
	if isNull(raw) {
		return 0, false
	}
	n, err := strconv.ParseUint(string(bytes.TrimSpace(raw)), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
