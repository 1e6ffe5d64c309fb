package pipeline

import (
	"context"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// FallbackMode selects how ids are built for headings whose text yields
// an empty slug (only punctuation or emoji, for example).
type FallbackMode int

const (
	// FallbackRandom appends a short random token: heading-2-3f9a1c0e.
	FallbackRandom FallbackMode = iota
	// FallbackCounter appends a per-document counter: heading-2-1.
	FallbackCounter
)

// String returns the configuration name of the mode.
func (m FallbackMode) String() string {
	if m == FallbackCounter {
		return "counter"
	}
	return "random"
}

// ParseFallbackMode maps a configuration value to a FallbackMode.
// The empty string selects FallbackRandom.
func ParseFallbackMode(s string) (FallbackMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "random":
		return FallbackRandom, true
	case "counter":
		return FallbackCounter, true
	default:
		return FallbackRandom, false
	}
}

var (
	// bareHeadingPattern matches h2-h6 with no attributes. Setext headings
	// may span lines.
	// Captures: 1=level, 2=inner HTML
	bareHeadingPattern = regexp.MustCompile(`(?s)<h([2-6])>(.*?)</h[2-6]>`)

	// elementIDPattern finds ids already present on any element, so raw
	// HTML anchors are not duplicated.
	elementIDPattern = regexp.MustCompile(`(?i)<[a-z][^>]*\sid="([^"]*)"`)

	nonWordPattern  = regexp.MustCompile(`[^\w\s]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	leadingDigitPat = regexp.MustCompile(`^\d`)
)

// HeadingIdentifier injects an id attribute into every attribute-less
// h2-h6 element.
type HeadingIdentifier struct {
	fallback FallbackMode
	newToken func() string
}

// NewHeadingIdentifier creates a HeadingIdentifier using the given fallback
// mode for headings without usable text.
func NewHeadingIdentifier(mode FallbackMode) *HeadingIdentifier {
	return &HeadingIdentifier{
		fallback: mode,
		newToken: func() string { return uuid.NewString()[:8] },
	}
}

// IdentifyHeadings returns htmlContent with ids added. Headings that already
// carry attributes are left as they are, so running it twice is a no-op.
// Ids are unique within the document: a repeated slug gets -1, -2, ...
func (h *HeadingIdentifier) IdentifyHeadings(ctx context.Context, htmlContent string) string {
	if ctx.Err() != nil || htmlContent == "" {
		return htmlContent
	}

	matches := bareHeadingPattern.FindAllStringSubmatchIndex(htmlContent, -1)
	if len(matches) == 0 {
		return htmlContent
	}

	seen := make(map[string]bool)
	for _, m := range elementIDPattern.FindAllStringSubmatch(htmlContent, -1) {
		seen[m[1]] = true
	}

	var b strings.Builder
	b.Grow(len(htmlContent) + len(matches)*24)

	counter := 0
	last := 0
	for _, m := range matches {
		level := htmlContent[m[2]:m[3]]
		inner := htmlContent[m[4]:m[5]]

		id := HeadingID(inner)
		if id == "" {
			counter++
			id = h.fallbackID(level, counter)
		}
		id = uniqueID(id, seen)

		b.WriteString(htmlContent[last:m[0]])
		b.WriteString(`<h` + level + ` id="` + id + `">`)
		b.WriteString(inner)
		b.WriteString(`</h` + level + `>`)
		last = m[1]
	}
	b.WriteString(htmlContent[last:])
	return b.String()
}

func (h *HeadingIdentifier) fallbackID(level string, counter int) string {
	token := strconv.Itoa(counter)
	if h.fallback == FallbackRandom {
		token = h.newToken()
	}
	return "heading-" + level + "-" + token
}

func uniqueID(id string, seen map[string]bool) string {
	candidate := id
	for n := 1; seen[candidate]; n++ {
		candidate = id + "-" + strconv.Itoa(n)
	}
	seen[candidate] = true
	return candidate
}

// HeadingID derives an anchor id from a heading's inner HTML:
// tags are stripped, entities decoded, the text lowercased, every
// character other than [A-Za-z0-9_] and whitespace dropped, and whitespace
// runs joined with "-". Ids starting with a digit get a "heading-" prefix.
// Returns "" when nothing usable remains.
func HeadingID(innerHTML string) string {
	text := strings.ToLower(stripHTMLTags(innerHTML))
	text = nonWordPattern.ReplaceAllString(text, "")
	id := whitespaceRun.ReplaceAllString(text, "-")
	if leadingDigitPat.MatchString(id) {
		id = "heading-" + id
	}
	return id
}

// htmlTagPattern matches HTML tags for stripping from heading text.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTMLTags removes HTML tags from a string, decodes HTML entities,
// and trims whitespace.
func stripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}
