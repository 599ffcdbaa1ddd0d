// Package audio writes ID3v2.4 tags to downloaded MP3 files.
//
// # ID3 Tagging
//
// Use the Tagger after a song has been written to disk:
//
//	tagger := audio.NewTagger(client, audio.TagOptions{})
//	err := tagger.WriteTags(ctx, path, song)
//
// The tag is built fresh from the song and replaces any tag already in the
// file. It carries:
//   - Album (TALB), Artist (TPE1), Title (TIT2), Track Number (TRCK)
//   - Recording time (TDRC), Release time (TDRL) and Year (TYER)
//   - "Site" and "Description" comments (COMM)
//   - Cover Art fetched from the song's image URL (APIC)
//
// # Release Dates
//
// Bandcamp publishes release dates as RFC 2822 text. ParseReleaseDate
// turns them into a time.Time; a malformed date is a *DateParseError.
package audio
