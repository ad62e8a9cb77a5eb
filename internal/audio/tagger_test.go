package audio

import (
	"bytes"
	"testing"

	"github.com/bogem/id3v2"

	"github.com/handiism/muzbot/internal/model"
)

// fakeAudio is an untagged stand-in for an MP3 body. The tagger never
// inspects audio frames, so arbitrary bytes are fine.
var fakeAudio = []byte{0xFF, 0xFB, 0x90, 0x64, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

func parseTag(t *testing.T, payload []byte) *id3v2.Tag {
	t.Helper()
	tag, err := id3v2.ParseReader(bytes.NewReader(payload), id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("parsing tagged payload: %v", err)
	}
	return tag
}

func TestTagger_UntaggedPayload(t *testing.T) {
	track := model.NewTrack(0, "Кино", "Группа крови", "https://example.com/a.mp3")

	tagged, err := NewTagger().Tag(fakeAudio, track)
	if err != nil {
		t.Fatalf("Tag failed: %v", err)
	}

	tag := parseTag(t, tagged)
	if got := tag.Title(); got != "Группа крови" {
		t.Errorf("Title = %q, want %q", got, "Группа крови")
	}
	if got := tag.Artist(); got != "Кино" {
		t.Errorf("Artist = %q, want %q", got, "Кино")
	}

	if !bytes.HasSuffix(tagged, fakeAudio) {
		t.Error("audio body not preserved after tagging")
	}
}

func TestTagger_RewritesExistingTag(t *testing.T) {
	// Build a payload that already carries a tag with stale fields.
	stale := id3v2.NewEmptyTag()
	stale.SetTitle("track-download")
	stale.SetArtist("unknown")

	var payload bytes.Buffer
	if _, err := stale.WriteTo(&payload); err != nil {
		t.Fatalf("building fixture: %v", err)
	}
	payload.Write(fakeAudio)

	track := model.NewTrack(0, "Artist", "Song", "https://example.com/a.mp3")
	tagged, err := NewTagger().Tag(payload.Bytes(), track)
	if err != nil {
		t.Fatalf("Tag failed: %v", err)
	}

	tag := parseTag(t, tagged)
	if got := tag.Title(); got != "Song" {
		t.Errorf("Title = %q, want %q", got, "Song")
	}
	if got := tag.Artist(); got != "Artist" {
		t.Errorf("Artist = %q, want %q", got, "Artist")
	}

	if !bytes.HasSuffix(tagged, fakeAudio) {
		t.Error("audio body not preserved when replacing an existing tag")
	}
	// The stale tag must not linger between the new tag and the body.
	if bytes.Count(tagged, []byte("ID3")) != 1 {
		t.Error("payload contains more than one ID3 header")
	}
}

func TestOriginalTagLength(t *testing.T) {
	if got := originalTagLength(fakeAudio); got != 0 {
		t.Errorf("originalTagLength(untagged) = %d, want 0", got)
	}
	if got := originalTagLength(nil); got != 0 {
		t.Errorf("originalTagLength(nil) = %d, want 0", got)
	}

	tag := id3v2.NewEmptyTag()
	tag.SetTitle("x")
	var payload bytes.Buffer
	if _, err := tag.WriteTo(&payload); err != nil {
		t.Fatalf("building fixture: %v", err)
	}
	tagLen := payload.Len()
	payload.Write(fakeAudio)

	if got := originalTagLength(payload.Bytes()); got != tagLen {
		t.Errorf("originalTagLength = %d, want %d", got, tagLen)
	}
}
