package dto

import "github.com/goccy/go-json"

// LDAlbum is the ld+json document of a Bandcamp album page.
//
// Only the fields read by the resolver are declared. Required fields are
// pointers (or slices) so that an absent key can be told apart from an
// empty value.
type LDAlbum struct {
	Name          *string      `json:"name"`
	Image         *string      `json:"image"`
	ID            *string      `json:"@id"`
	ByArtist      *LDArtist    `json:"byArtist"`
	DatePublished string       `json:"datePublished"`
	Description   string       `json:"description"`
	Track         *LDTrackList `json:"track"`
}

// LDArtist is the byArtist relation of a document.
type LDArtist struct {
	Name *string `json:"name"`
}

// LDTrackList is the track relation of an album document.
// ItemListElement is nil when the key is absent and points to an empty
// slice for an empty listing.
type LDTrackList struct {
	ItemListElement *[]LDListItem `json:"itemListElement"`
}

// LDListItem is one entry of the album's track listing.
//
// Position is kept raw so a non-integer value is reported as an invalid
// field rather than a decode failure of the whole document.
type LDListItem struct {
	Position json.RawMessage `json:"position"`
	Item     *LDItem         `json:"item"`
}

// LDItem is the recording described by a list item.
type LDItem struct {
	Name               *string      `json:"name"`
	AdditionalProperty []LDProperty `json:"additionalProperty"`
}
