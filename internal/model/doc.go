// Package model defines the core data structures used throughout
// the bcdl application.
//
// # Song
//
// Song is one resolved song of a Bandcamp album or track page. The resolver
// in package bandcamp builds songs; the download pipeline and the tagger only
// read them:
//
//	song := model.Song{Artist: "Band", Album: "Title", Name: "Song A", TrackNum: 1}
//	fmt.Println(song.Path("/music", false)) // /music/Band/Title/Song A.mp3
//
// # Kind
//
// Kind tells the resolver which document shape to expect:
//
//	model.KindAlbum // track-listing document
//	model.KindTrack // single-track document
package model
