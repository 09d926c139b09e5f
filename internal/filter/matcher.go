package filter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// The post must read like a request for help, not a pitch.
	requestRegex = regexp.MustCompile(`(?i)\b(looking for|need|needs|hiring|seeking|recommend\w*|anyone know|can someone|searching for)\b`)
	// And it must be about assistant or admin work at all.
	topicRegex = regexp.MustCompile(`(?i)\b(virtual assistant|va|executive assistant|admin(istrative)? (help|support|task\w*|work))\b`)
)

// normalizeText strips diacritics and lowercases so keyword matching works on
// accented text.
func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}

// LooksLikeLead reports whether a post is worth a model call: it mentions
// assistant/admin work and reads like a request. Used as an optional cheap
// pre-filter in front of the classifier; the model still makes the final call.
func LooksLikeLead(text string) bool {
	normalized := normalizeText(text)
	return topicRegex.MatchString(normalized) && requestRegex.MatchString(normalized)
}
