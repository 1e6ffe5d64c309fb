// Package highlight implements pattern-based syntax highlighting for code
// blocks.
//
// Each supported language is an ordered list of Rules. A rule is a regular
// expression plus a replacement template; rules run in order over the
// HTML-escaped code and wrap matches in classed spans. Order matters: a
// later rule sees the output of earlier ones.
//
// Spans inserted by a rule are held as Unicode Private Use Area markers
// until every rule has run, so a later rule can never match inside the
// markup (attribute names, class values) of an earlier one. Text inside an
// earlier span can still be matched; overlapping categories are an inherent
// limitation of pattern-based highlighting.
package highlight

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// Sentinel errors for highlighting.
var (
	ErrRuleFailed = errors.New("highlight rule failed")
	ErrChroma     = errors.New("chroma highlighting failed")
)

// MatchTimeout bounds a single rule's match time on pathological input.
var MatchTimeout = 250 * time.Millisecond

// Span placeholders. Each class gets its own opening marker
// (spanOpen followed by one rune from classBase upward).
const (
	spanOpen  = "\uE000"
	spanClose = "\uE001"
	classBase = 0xE100
)

// Classes lists every span class a rule template may emit.
var Classes = []string{
	"keyword", "literal", "number", "string", "comment", "builtin",
	"jsx-tag", "jsx-attr",
	"selector", "property", "value",
	"tag", "attr", "key",
}

var (
	// toPlaceholders rewrites template markup into markers.
	toPlaceholders *strings.Replacer

	// fromPlaceholders expands markers back into span markup.
	fromPlaceholders *strings.Replacer

	// protectMarkers encodes marker runes already present in user code.
	protectMarkers *strings.Replacer

	escaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
)

func init() {
	var to, from []string
	for i, class := range Classes {
		marker := spanOpen + string(rune(classBase+i))
		markup := `<span class="` + class + `">`
		to = append(to, markup, marker)
		from = append(from, marker, markup)
	}
	to = append(to, "</span>", spanClose)
	from = append(from, spanClose, "</span>")
	toPlaceholders = strings.NewReplacer(to...)
	fromPlaceholders = strings.NewReplacer(from...)

	var protect []string
	for _, r := range []rune{0xE000, 0xE001} {
		protect = append(protect, string(r), fmt.Sprintf("&#%d;", r))
	}
	for i := range Classes {
		r := rune(classBase + i)
		protect = append(protect, string(r), fmt.Sprintf("&#%d;", r))
	}
	protectMarkers = strings.NewReplacer(protect...)
}

// EscapeHTML escapes text for element content and attribute values.
// Single quotes become &#39; and double quotes &quot;, which the string
// rules depend on.
func EscapeHTML(s string) string {
	return escaper.Replace(s)
}

// Rule is one pattern-substitution pass.
//
// Pattern uses .NET regular expression syntax (backreferences and
// lookaround are allowed). Template may reference groups as $0..$9 and
// contain `<span class="...">` / `</span>` markup for classes in Classes.
type Rule struct {
	Pattern  string
	Template string
}

type compiledRule struct {
	re          *regexp2.Regexp
	replacement string
}

func compileRules(rules []Rule) []compiledRule {
	out := make([]compiledRule, len(rules))
	for i, r := range rules {
		re := regexp2.MustCompile(r.Pattern, regexp2.Multiline)
		re.MatchTimeout = MatchTimeout
		out[i] = compiledRule{
			re:          re,
			replacement: toPlaceholders.Replace(r.Template),
		}
	}
	return out
}

// Highlighter highlights code by language name.
type Highlighter struct {
	languages map[string][]compiledRule
	chroma    *chromaFallback
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithChroma enables chroma as a fallback for languages the rule table does
// not know. Style names the chroma style used by WriteCSS; an unknown name
// falls back to chroma's default.
func WithChroma(style string) Option {
	return func(h *Highlighter) {
		h.chroma = newChromaFallback(style)
	}
}

// New compiles the built-in rule table.
func New(opts ...Option) *Highlighter {
	h := &Highlighter{languages: make(map[string][]compiledRule, len(languageTable))}
	for _, lang := range languageTable {
		compiled := compileRules(lang.Rules)
		for _, name := range lang.Names {
			h.languages[name] = compiled
		}
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Supports reports whether lang has rules (case-insensitive).
func (h *Highlighter) Supports(lang string) bool {
	_, ok := h.languages[strings.ToLower(lang)]
	return ok
}

// Highlight returns code as HTML with highlight spans for lang.
// Unknown languages are returned escaped with no spans unless the chroma
// fallback is enabled and recognizes them. On error the escaped code is
// returned alongside the error, so callers can always render something.
func (h *Highlighter) Highlight(code, lang string) (string, error) {
	escaped := EscapeHTML(code)

	rules, ok := h.languages[strings.ToLower(lang)]
	if !ok {
		if h.chroma != nil {
			if out, handled, err := h.chroma.highlight(code, lang); handled {
				if err != nil {
					return escaped, err
				}
				return out, nil
			}
		}
		return escaped, nil
	}

	out, err := apply(rules, protectMarkers.Replace(escaped))
	if err != nil {
		return escaped, fmt.Errorf("%w: %s: %v", ErrRuleFailed, lang, err)
	}
	return out, nil
}

// Apply runs rules in order over already-escaped code. It is exposed so a
// rule list can be tested on its own.
func Apply(rules []Rule, escaped string) (string, error) {
	return apply(compileRules(rules), protectMarkers.Replace(escaped))
}

func apply(rules []compiledRule, s string) (string, error) {
	for _, r := range rules {
		var err error
		s, err = r.re.Replace(s, r.replacement, -1, -1)
		if err != nil {
			return "", err
		}
	}
	return fromPlaceholders.Replace(s), nil
}
