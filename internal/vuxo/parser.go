package vuxo

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/handiism/muzbot/internal/model"
)

// Selectors for the catalog's markup shape: one playlist container per
// page, each entry carrying artist text, title text, and a play control
// with the audio locator in a data attribute.
const (
	playlistSelector = "ul.playlist"
	artistSelector   = ".playlist-name-artist"
	titleSelector    = ".playlist-name-title"
	playSelector     = ".playlist-play"
	audioURLAttr     = "data-url"
)

// ParseTracks extracts the track list from a search or top-hits page.
//
// The page must contain a playlist container; its absence is fatal for
// the whole page. Entries are the container's immediate list items in
// document order, and each entry's position becomes the track's Index.
// An entry missing its artist, title, or play control makes the whole
// parse fail; no partial results are returned.
//
// ParseTracks never touches the network, so it can be exercised against
// static HTML fixtures.
func ParseTracks(page string) ([]model.Track, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	playlist := doc.Find(playlistSelector).First()
	if playlist.Length() == 0 {
		return nil, &ParseError{Reason: "playlist element not found"}
	}

	var tracks []model.Track
	var itemErr error

	playlist.ChildrenFiltered("li").EachWithBreak(func(i int, item *goquery.Selection) bool {
		track, err := trackFromItem(item, i)
		if err != nil {
			itemErr = err
			return false
		}
		tracks = append(tracks, track)
		return true
	})

	if itemErr != nil {
		return nil, itemErr
	}

	return tracks, nil
}

// trackFromItem builds one Track from a playlist entry. The entry must
// contain artist and title elements and a play control; the play
// control's data-url attribute may be absent, which yields a track that
// is displayable but not downloadable.
func trackFromItem(item *goquery.Selection, index int) (model.Track, error) {
	artist := item.Find(artistSelector).First()
	title := item.Find(titleSelector).First()
	if artist.Length() == 0 || title.Length() == 0 {
		return model.Track{}, &ParseError{Reason: "could not find artist name element"}
	}

	play := item.Find(playSelector).First()
	if play.Length() == 0 {
		return model.Track{}, &ParseError{Reason: "could not find audio URL element"}
	}

	performer := strings.TrimSpace(artist.Text())
	trackTitle := strings.TrimSpace(title.Text())
	audioURL := play.AttrOr(audioURLAttr, "")

	return model.NewTrack(index, performer, trackTitle, audioURL), nil
}
