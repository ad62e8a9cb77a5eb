// Package model defines the core data structures used throughout muzbot.
//
// # Track
//
// Track is an immutable value representing one discoverable track:
//
//	track := model.NewTrack(0, "Performer", "Title", audioURL)
//	fmt.Println(track.Name) // "Performer - Title"
//
// Tracks round-trip through a plain string-field mapping, which is how
// they cross process boundaries (e.g. persisted handler state):
//
//	restored, err := model.FromMap(track.ToMap())
//
// A Track whose AudioURL is empty is displayable but not downloadable;
// check Downloadable before fetching audio.
package model
