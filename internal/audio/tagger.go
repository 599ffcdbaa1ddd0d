package audio

import (
	"context"
	"fmt"
	"net/mail"
	"os"
	"strconv"
	"time"

	"github.com/bogem/id3v2"

	ioutils "github.com/handiism/bcdl/internal/io"
	"github.com/handiism/bcdl/internal/model"
)

const (
	// commentLanguage is the comment frame language. ID3 language codes
	// are three bytes, so the two-letter code is padded with a space.
	commentLanguage = "US "

	coverMimeType    = "image/jpeg"
	coverDescription = "album art"

	timestampLayout = "2006-01-02T15:04:05"

	// tagHeaderSize is the size of an ID3v2 header. id3v2.Open cannot read
	// files that are shorter than one but not empty.
	tagHeaderSize = 10
)

// ImageSource fetches cover art. *http.Client satisfies it.
type ImageSource interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// TagOptions controls cover art processing before it is embedded.
type TagOptions struct {
	// CoverMaxSize scales cover art down to fit a square of this many
	// pixels. Zero embeds the image as fetched.
	CoverMaxSize int

	// CoverToJPEG re-encodes cover art as JPEG.
	CoverToJPEG bool
}

// DateParseError is returned when a song's release date is not an
// RFC 2822 date-time.
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("parse release date %q: %v", e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// TagWriteError is returned when the tag cannot be written to the file.
type TagWriteError struct {
	Path string
	Err  error
}

func (e *TagWriteError) Error() string {
	return fmt.Sprintf("write tags to %s: %v", e.Path, e.Err)
}

func (e *TagWriteError) Unwrap() error {
	return e.Err
}

// Tagger writes ID3v2.4 tags to downloaded MP3 files.
//
// Every call builds a fresh tag from the song alone. Any tag already in
// the file is replaced, never merged, so tagging the same file twice gives
// the same result. The tag holds:
//   - Album, artist, title and track number
//   - Recording and release time plus the year
//   - "Site" and "Description" comments
//   - The cover art as an attached picture
//
// Example:
//
//	tagger := NewTagger(client, TagOptions{})
//
//	// After downloading the song
//	if err := tagger.WriteTags(ctx, path, song); err != nil {
//	    return err
//	}
type Tagger struct {
	images ImageSource
	covers *ioutils.ImageService
	opts   TagOptions
}

// NewTagger creates a new Tagger that fetches cover art from images.
func NewTagger(images ImageSource, opts TagOptions) *Tagger {
	return &Tagger{
		images: images,
		covers: ioutils.NewImageService(),
		opts:   opts,
	}
}

// ParseReleaseDate parses an RFC 2822 date-time such as
// "Mon, 01 Jan 2024 00:00:00 +0000" or "01 Jan 2024 00:00:00 GMT".
func ParseReleaseDate(value string) (time.Time, error) {
	t, err := mail.ParseDate(value)
	if err != nil {
		return time.Time{}, &DateParseError{Value: value, Err: err}
	}
	return t, nil
}

// WriteTags writes the song's tag to the MP3 file at path.
//
// The release date is parsed and the cover art fetched before the file is
// touched. If either fails the file is left as it is and the error is
// returned.
func (t *Tagger) WriteTags(ctx context.Context, path string, song model.Song) error {
	released, err := ParseReleaseDate(song.ReleaseDate)
	if err != nil {
		return err
	}

	cover, err := t.fetchCover(ctx, song.ImageURL)
	if err != nil {
		return err
	}

	tag, short, err := openTag(path)
	if err != nil {
		return &TagWriteError{Path: path, Err: err}
	}
	defer tag.Close()

	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	tag.SetAlbum(song.Album)
	tag.SetArtist(song.Artist)
	tag.SetTitle(song.Name)
	tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, strconv.FormatUint(uint64(song.TrackNum), 10))

	timestamp := released.Format(timestampLayout)
	tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, timestamp)
	tag.AddTextFrame("TDRL", id3v2.EncodingUTF8, timestamp)
	tag.AddTextFrame("TYER", id3v2.EncodingUTF8, strconv.Itoa(released.Year()))

	tag.AddCommentFrame(id3v2.CommentFrame{
		Encoding:    id3v2.EncodingUTF8,
		Language:    commentLanguage,
		Description: "Site",
		Text:        song.SiteURL,
	})
	tag.AddCommentFrame(id3v2.CommentFrame{
		Encoding:    id3v2.EncodingUTF8,
		Language:    commentLanguage,
		Description: "Description",
		Text:        song.Description,
	})

	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    coverMimeType,
		PictureType: id3v2.PTOther,
		Description: coverDescription,
		Picture:     cover,
	})

	if short != nil {
		err = saveWithAudio(path, tag, short)
	} else {
		err = tag.Save()
	}
	if err != nil {
		return &TagWriteError{Path: path, Err: err}
	}
	return nil
}

// openTag opens the file at path for a fresh tag. A file shorter than a
// tag header gets an empty tag and its bytes are returned so they can be
// written back after it.
func openTag(path string) (*id3v2.Tag, []byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}

	if size := info.Size(); size > 0 && size < tagHeaderSize {
		audio, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		return id3v2.NewEmptyTag(), audio, nil
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: false})
	return tag, nil, err
}

// saveWithAudio rewrites the file at path as tag followed by audio.
func saveWithAudio(path string, tag *id3v2.Tag, audio []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}

	if _, err := tag.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if _, err := f.Write(audio); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// fetchCover downloads the cover art and applies the configured processing.
func (t *Tagger) fetchCover(ctx context.Context, url string) ([]byte, error) {
	data, err := t.images.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch cover art: %w", err)
	}

	if t.opts.CoverMaxSize <= 0 && !t.opts.CoverToJPEG {
		return data, nil
	}

	data, err = t.covers.Prepare(data, t.opts.CoverMaxSize, t.opts.CoverToJPEG)
	if err != nil {
		return nil, fmt.Errorf("prepare cover art: %w", err)
	}
	return data, nil
}
