// Package dateutil reads front-matter post dates and formats them for display.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates a display format that cannot be compiled.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength bounds --date-format values.
const MaxDateFormatLength = 50

// PostDateLayout is the layout of front-matter dates. Dates in this layout
// sort chronologically as plain strings.
const PostDateLayout = "2006-01-02"

// displayTokens maps format tokens to time layout elements. Longer tokens
// come first so "MMMM" is not read as four "M".
var displayTokens = [...]struct{ token, elem string }{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets are the named formats accepted by ParseDisplayFormat.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"short":    "MMM D, YYYY",
}

// Layout is a compiled display format. The zero Layout keeps dates as
// written in front matter.
type Layout struct {
	parts []layoutPart
}

// layoutPart is either literal text or a single time layout element.
// Literals never reach time.Format, so "[Day 1]" prints a plain "1".
type layoutPart struct {
	text string
	elem bool
}

// IsZero reports whether l is the pass-through layout.
func (l Layout) IsZero() bool {
	return len(l.parts) == 0
}

// Format renders t.
func (l Layout) Format(t time.Time) string {
	var b strings.Builder
	for _, p := range l.parts {
		if p.elem {
			b.WriteString(t.Format(p.text))
		} else {
			b.WriteString(p.text)
		}
	}
	return b.String()
}

func (l *Layout) literal(s string) {
	if s == "" {
		return
	}
	if n := len(l.parts); n > 0 && !l.parts[n-1].elem {
		l.parts[n-1].text += s
		return
	}
	l.parts = append(l.parts, layoutPart{text: s})
}

// ParsePostDate parses a front-matter date. ok is false for any value not
// in PostDateLayout.
func ParsePostDate(s string) (t time.Time, ok bool) {
	t, err := time.Parse(PostDateLayout, strings.TrimSpace(s))
	return t, err == nil
}

// ParseDisplayFormat compiles a preset name or a token format.
//
// Presets, matched case-insensitively: iso, european, us, long, short.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Text in square brackets is
// copied as is, and so is any other character.
func ParseDisplayFormat(format string) (Layout, error) {
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	switch {
	case format == "":
		return Layout{}, fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	case len(format) > MaxDateFormatLength:
		return Layout{}, fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var l Layout
	for rest := format; rest != ""; {
		if quoted, ok := strings.CutPrefix(rest, "["); ok {
			text, after, closed := strings.Cut(quoted, "]")
			if !closed {
				pos := len(format) - len(rest)
				return Layout{}, fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, pos)
			}
			l.literal(text)
			rest = after
			continue
		}
		elem, n := matchToken(rest)
		if n == 0 {
			l.literal(rest[:1])
			rest = rest[1:]
			continue
		}
		l.parts = append(l.parts, layoutPart{text: elem, elem: true})
		rest = rest[n:]
	}
	return l, nil
}

// matchToken returns the layout element for the token at the start of s
// and the token length, or 0 when s starts with a literal.
func matchToken(s string) (string, int) {
	for _, t := range displayTokens {
		if strings.HasPrefix(s, t.token) {
			return t.elem, len(t.token)
		}
	}
	return "", 0
}

// FormatPostDate renders a front-matter date with l. Dates that do not
// parse, and the zero Layout, return the value unchanged.
func FormatPostDate(date string, l Layout) string {
	if l.IsZero() {
		return date
	}
	t, ok := ParsePostDate(date)
	if !ok {
		return date
	}
	return l.Format(t)
}
