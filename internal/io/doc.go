// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Writing downloaded songs to disk (overwrite semantics)
//   - Directory creation
//   - Filename sanitization for cross-platform compatibility
//   - Optional cover art resizing and JPEG conversion
//
// # File Operations
//
//	err := ioutils.EnsureDir("/music/Band/Title")
//	err = ioutils.WriteFile("/music/Band/Title/Song A.mp3", audio)
//
// # Filename Sanitization
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
//
// # Image Processing
//
//	svc := ioutils.NewImageService()
//	cover, _ := svc.Prepare(imageData, 500, false) // fit within 500x500
package ioutils
