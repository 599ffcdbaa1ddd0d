// Package tui provides a Bubble Tea terminal user interface for bcdl.
//
// The user enters an album or track URL, the page is resolved and its
// songs are downloaded with a per-song progress bar. Pipeline progress
// reaches the program through a buffered channel acting as download.Sink.
package tui
