package pipeline

import (
	"regexp"
	"strconv"
)

// TOC depth bounds used by posts.
const (
	DefaultTOCMinDepth = 2
	DefaultTOCMaxDepth = 4
)

// TOCEntry is one heading listed in a table of contents.
type TOCEntry struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

// headingPattern matches h1-h6 tags with id attribute.
// Captures: 1=level, 2=id, 3=inner HTML (may contain inline tags)
var headingPattern = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

// ExtractTOC returns headings between minDepth and maxDepth in document
// order. Headings without ids are skipped.
func ExtractTOC(htmlContent string, minDepth, maxDepth int) []TOCEntry {
	matches := headingPattern.FindAllStringSubmatch(htmlContent, -1)
	entries := make([]TOCEntry, 0, len(matches))
	for _, m := range matches {
		level, _ := strconv.Atoi(m[1])
		if level < minDepth || level > maxDepth {
			continue
		}
		entries = append(entries, TOCEntry{
			Level: level,
			ID:    m[2],
			Text:  whitespaceRun.ReplaceAllString(stripHTMLTags(m[3]), " "),
		})
	}
	return entries
}
