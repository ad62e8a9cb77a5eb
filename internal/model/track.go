package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Track represents a single track discovered on a search or top-hits page.
//
// Track contains everything the bot needs to present and deliver one song:
//   - Index: zero-based position within its originating result page.
//     Stable only within one scrape, not globally.
//   - Name: display string, always "{performer} - {title}".
//   - Title, Performer: extracted text, trimmed, never empty on
//     successful construction.
//   - AudioURL: locator for the audio payload. May be empty when the
//     page's play control carries no data-url attribute; such a track is
//     valid for display but cannot be downloaded.
//
// Tracks are constructed by the page parser (or restored from a field
// mapping) and never mutated afterwards.
//
// Example:
//
//	track := model.NewTrack(0, "Daft Punk", "One More Time", mp3URL)
//	fmt.Println(track.Name)       // "Daft Punk - One More Time"
//	fmt.Println(track.FileName()) // "Daft Punk - One More Time.mp3"
type Track struct {
	// Index is the track's position on its result page (0-based).
	Index int

	// Name is the display string, "{performer} - {title}".
	Name string

	// Title is the track title.
	Title string

	// Performer is the artist name.
	Performer string

	// AudioURL is the URL to fetch the audio payload from.
	// Empty string means the track cannot be downloaded.
	AudioURL string
}

// NewTrack creates a Track with the display name derived from
// performer and title.
func NewTrack(index int, performer, title, audioURL string) Track {
	return Track{
		Index:     index,
		Name:      fmt.Sprintf("%s - %s", performer, title),
		Title:     title,
		Performer: performer,
		AudioURL:  audioURL,
	}
}

// Downloadable reports whether the track carries an audio locator.
func (t Track) Downloadable() bool {
	return t.AudioURL != ""
}

// FileName returns the attachment filename for the track's audio,
// derived from the display name with a fixed ".mp3" extension.
// Invalid filename characters are replaced with underscores.
func (t Track) FileName() string {
	return sanitizeFileName(t.Name) + ".mp3"
}

// FromMap restores a Track from a plain string-field mapping, the
// inverse of ToMap.
//
// Returns an error if the index field is missing or not an integer.
func FromMap(data map[string]string) (Track, error) {
	index, err := strconv.Atoi(data["index"])
	if err != nil {
		return Track{}, fmt.Errorf("invalid track index %q: %w", data["index"], err)
	}

	return Track{
		Index:     index,
		Name:      data["name"],
		Title:     data["title"],
		Performer: data["performer"],
		AudioURL:  data["audio_url"],
	}, nil
}

// ToMap converts the Track to a plain string-field mapping.
func (t Track) ToMap() map[string]string {
	return map[string]string{
		"index":     strconv.Itoa(t.Index),
		"name":      t.Name,
		"title":     t.Title,
		"performer": t.Performer,
		"audio_url": t.AudioURL,
	}
}

// sanitizeFileName removes or replaces characters that are invalid in file names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
func sanitizeFileName(name string) string {
	// Replace invalid path/file characters
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")

	// Remove trailing dots
	name = regexp.MustCompile(`\.+$`).ReplaceAllString(name, "")

	// Replace multiple whitespace with single space
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")

	// Remove trailing whitespace
	name = strings.TrimRight(name, " ")

	return name
}
