package audio

import (
	"bytes"

	"github.com/bogem/id3v2"

	"github.com/handiism/muzbot/internal/model"
)

// Tagger stamps ID3v2 metadata into MP3 payloads before they are sent
// to chat, so the receiving player shows the proper title and artist
// regardless of what the source CDN served.
//
// Tagging happens entirely in memory: the existing tag (if any) is
// parsed off the payload, the title and artist frames are rewritten,
// and the new tag is prepended to the untouched audio body.
//
// Example:
//
//	tagger := audio.NewTagger()
//	tagged, err := tagger.Tag(payload, track)
//	if err != nil {
//	    // send the raw payload instead; tagging is best-effort
//	}
type Tagger struct{}

// NewTagger creates a Tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// Tag returns a copy of payload with its title and artist frames set
// from the track. Frames other than title and artist survive from the
// original tag. The input payload is not modified.
//
// Frames are written UTF-8 encoded so non-Latin names survive players
// that default ID3v2.3 text to Latin-1.
func (tg *Tagger) Tag(payload []byte, track model.Track) ([]byte, error) {
	tag, err := id3v2.ParseReader(bytes.NewReader(payload), id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(track.Title)
	tag.SetArtist(track.Performer)

	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		return nil, err
	}
	buf.Write(payload[originalTagLength(payload):])

	return buf.Bytes(), nil
}

// originalTagLength reads the payload's ID3v2 header directly and
// returns the byte length of the original tag, padding included, or 0
// when the payload starts straight with audio. The parsed Tag cannot
// report this: its size reflects the rewritten frames, not the bytes
// the source actually served.
func originalTagLength(payload []byte) int {
	if len(payload) < 10 || !bytes.HasPrefix(payload, []byte("ID3")) {
		return 0
	}

	// Bytes 6-9 hold the tag size as a sync-safe integer, excluding the
	// 10-byte header itself.
	size := int(payload[6])<<21 | int(payload[7])<<14 | int(payload[8])<<7 | int(payload[9])
	length := 10 + size
	if length > len(payload) {
		return 0
	}
	return length
}
