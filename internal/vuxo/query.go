package vuxo

import (
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// BaseDomain is the music catalog's fixed base domain. Search queries
// are routed by subdomain: https://{slug}.{BaseDomain}.
const BaseDomain = "vuxo7.com"

var (
	nonWordChars   = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// BuildSearchURL turns a free-text search phrase into the site's
// subdomain-routed search URL.
//
// The keyword is stripped of everything that is neither a word character
// nor whitespace, trimmed, lower-cased, and internal whitespace runs
// become hyphens. The resulting slug is IDNA-encoded so that non-ASCII
// phrases form a valid subdomain label; if encoding fails the raw slug
// is used as-is (degrade, don't fail).
//
// BuildSearchURL is a pure string transform and always returns a URL,
// even for empty or fully-stripped input ("https://.vuxo7.com" is the
// site's contract for that case, not ours to fix).
//
// Example:
//
//	vuxo.BuildSearchURL("Daft Punk") // "https://daft-punk.vuxo7.com"
func BuildSearchURL(keyword string) string {
	cleaned := nonWordChars.ReplaceAllString(keyword, "")
	slug := strings.ToLower(strings.TrimSpace(cleaned))
	slug = whitespaceRuns.ReplaceAllString(slug, "-")

	subdomain, err := idna.Lookup.ToASCII(slug)
	if err != nil {
		subdomain = slug
	}

	return "https://" + subdomain + "." + BaseDomain
}
