// Package http provides the HTTP client used to fetch Bandcamp pages,
// audio streams and cover art.
//
// The Client in this package handles:
//   - User-Agent headers and timeouts taken from the settings
//   - Streaming downloads with a declared length
//   - Whole-body fetches for pages and images
//
// # Basic Usage
//
//	client := http.NewClient(http.Options{UserAgent: "bcdl", Timeout: time.Minute})
//
//	// Fetch HTML page
//	html, err := client.GetString(ctx, "https://artist.bandcamp.com/album/name")
//
//	// Stream an mp3
//	stream, err := client.Open(ctx, mp3URL)
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//	for chunk, err := range stream.Chunks() {
//	    if err != nil {
//	        return err
//	    }
//	    buf = append(buf, chunk...)
//	}
//
// # Errors
//
// Every failed request is reported as a *TransportError. Open returns
// ErrLengthUnknown when the server sends no Content-Length.
package http
