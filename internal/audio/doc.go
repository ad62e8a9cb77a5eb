// Package audio prepares downloaded payloads for delivery.
//
// The Tagger rewrites an MP3 payload's ID3v2 title and artist frames in
// memory so the file a user receives is labeled after the track they
// picked. Tagging is best-effort: callers fall back to the raw payload
// when it fails.
package audio
