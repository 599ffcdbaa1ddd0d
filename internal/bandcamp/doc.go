// Package bandcamp resolves Bandcamp album and track pages into songs.
//
// Bandcamp describes the subject of every album and track page in an
// embedded ld+json script block. This package locates that block and
// decodes it with an explicit schema for each of the two page shapes:
//
//  1. Album pages carry a track listing (track.itemListElement)
//  2. Track pages describe one recording nested under its album (inAlbum)
//
// # Page Resolution
//
//	kind, err := bandcamp.KindFromURL(pageURL)
//	if err != nil {
//	    return err
//	}
//	songs, err := bandcamp.NewResolver(logger).ResolvePage(kind, pageHTML)
//
// # Errors
//
// ErrNotFound and ErrParse report a page without usable structured data.
// MissingFieldError and InvalidFieldError report a document that does not
// match the expected shape. ErrUnsupportedKind reports a URL that is neither
// an album nor a track page.
package bandcamp
