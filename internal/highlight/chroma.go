package highlight

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultChromaStyle is used when no style is configured.
const DefaultChromaStyle = "github"

// chromaFallback highlights languages missing from the rule table.
type chromaFallback struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

func newChromaFallback(styleName string) *chromaFallback {
	return &chromaFallback{
		formatter: newFormatter(),
		style:     resolveStyle(styleName),
	}
}

func newFormatter() *chromahtml.Formatter {
	return chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.PreventSurroundingPre(true),
	)
}

func resolveStyle(name string) *chroma.Style {
	if name == "" {
		name = DefaultChromaStyle
	}
	style := styles.Get(name)
	if style == nil {
		style = styles.Fallback
	}
	return style
}

// HasStyle reports whether chroma knows the style name.
func HasStyle(name string) bool {
	for _, n := range styles.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// highlight reports handled=false when chroma has no lexer for lang.
func (c *chromaFallback) highlight(code, lang string) (out string, handled bool, err error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false, nil
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", true, fmt.Errorf("%w: %s: %v", ErrChroma, lang, err)
	}

	var buf strings.Builder
	if err := c.formatter.Format(&buf, c.style, iterator); err != nil {
		return "", true, fmt.Errorf("%w: %s: %v", ErrChroma, lang, err)
	}
	return buf.String(), true, nil
}

// WriteCSS writes the class stylesheet for a chroma style.
func WriteCSS(w io.Writer, styleName string) error {
	if err := newFormatter().WriteCSS(w, resolveStyle(styleName)); err != nil {
		return fmt.Errorf("%w: writing css: %v", ErrChroma, err)
	}
	return nil
}
