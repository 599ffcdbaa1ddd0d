// Package progress renders download progress on a terminal.
//
// Console implements download.Sink with one progress bar per song,
// labelled "Downloading Track <n> - <name>", and prints events as styled
// single lines.
package progress
