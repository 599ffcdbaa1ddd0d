// Package download provides the download orchestration logic for
// fetching the songs of a Bandcamp album or track page.
//
// # Pipeline
//
// The Pipeline processes songs strictly one after another:
//
//  1. Skip songs without an audio URL (reported as a warning)
//  2. Stream the audio, reporting progress after every chunk
//  3. Write it to root/artist/album/name.mp3
//  4. Tag the file with ID3v2.4 metadata
//
// # Manager
//
// The Manager wires the pipeline from settings and adds the page fetch:
//
//	manager := download.NewManager(settings, sink, logger)
//
//	if err := manager.Initialize(ctx, "https://artist.bandcamp.com/album/name"); err != nil {
//	    return err
//	}
//
//	bytes, err := manager.StartDownloads(ctx, false)
//
// # Progress Tracking
//
// Progress is reported through a Sink:
//
//	type Sink interface {
//	    Progress(Update) // once per received chunk
//	    Event(Event)     // Info, Verbose, Warning, Error, Success
//	}
//
// # Failures
//
// A missing audio URL is the only condition the pipeline recovers from.
// Transport, write and tagging errors stop the run.
package download
