package pipeline

import (
	"context"
	"html"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/alnah/go-mdblog/internal/highlight"
)

// Highlighter turns raw code into highlighted HTML for a language.
// On error the returned string must still be safe, escaped HTML.
type Highlighter interface {
	Highlight(code, lang string) (string, error)
}

var _ Highlighter = (*highlight.Highlighter)(nil)

var (
	// fencedCodePattern matches goldmark's fenced code with a language.
	// Captures: 1=language (attribute-escaped), 2=escaped code
	fencedCodePattern = regexp.MustCompile(`<pre><code class="language-([^"]+)">([\s\S]*?)</code></pre>`)

	// bareCodePattern matches fenced or indented code without a language.
	bareCodePattern = regexp.MustCompile(`<pre><code>([\s\S]*?)</code></pre>`)

	// inlineCodePattern matches <code> that does not open a code block.
	inlineCodePattern = regexp2.MustCompile(`(?<!<pre>|<pre class="code-block">)<code>([^<]+)</code>`, regexp2.None)
)

// copyIcon is the clipboard glyph inside the copy button.
const copyIcon = `<svg width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
              <rect x="9" y="9" width="13" height="13" rx="2" ry="2"></rect>
              <path d="M5 15H4a2 2 0 0 1-2-2V4a2 2 0 0 1 2-2h9a2 2 0 0 1 2 2v1"></path>
            </svg>`

// CodeBlockEnhancer wraps code blocks with a language header, a copy button
// and highlighted code, and marks inline code.
//
// The copy button carries the original code in data-code. Client script
// (see assets copy-code.js) reads it on click.
type CodeBlockEnhancer struct {
	highlighter Highlighter
	logger      *slog.Logger
}

// NewCodeBlockEnhancer creates an enhancer. A nil highlighter uses the
// built-in rule table; a nil logger discards.
func NewCodeBlockEnhancer(h Highlighter, logger *slog.Logger) *CodeBlockEnhancer {
	if h == nil {
		h = highlight.New()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CodeBlockEnhancer{highlighter: h, logger: logger}
}

// EnhanceCodeBlocks rewrites every code block and inline code element.
// Enhanced output does not match the input patterns, so a second run
// leaves it unchanged.
func (e *CodeBlockEnhancer) EnhanceCodeBlocks(ctx context.Context, htmlContent string) string {
	if ctx.Err() != nil || htmlContent == "" {
		return htmlContent
	}

	htmlContent = fencedCodePattern.ReplaceAllStringFunc(htmlContent, func(block string) string {
		m := fencedCodePattern.FindStringSubmatch(block)
		label := m[1]
		code := html.UnescapeString(m[2])

		body, err := e.highlighter.Highlight(code, html.UnescapeString(label))
		if err != nil {
			e.logger.Warn("highlighting failed, using plain code", "language", label, "error", err)
		}
		return codeBlockHTML(label, label, code, `<code class="language-`+label+`">`, body)
	})

	htmlContent = bareCodePattern.ReplaceAllStringFunc(htmlContent, func(block string) string {
		m := bareCodePattern.FindStringSubmatch(block)
		code := html.UnescapeString(m[1])
		return codeBlockHTML("text", "code", code, "<code>", highlight.EscapeHTML(code))
	})

	out, err := inlineCodePattern.Replace(htmlContent, `<code class="inline-code">$1</code>`, -1, -1)
	if err != nil {
		e.logger.Warn("inline code pass failed", "error", err)
		return htmlContent
	}
	return out
}

func codeBlockHTML(dataLanguage, label, code, codeOpen, body string) string {
	var b strings.Builder
	b.Grow(len(body) + 2*len(code) + 640)

	b.WriteString(`<div class="code-block-wrapper" data-language="` + dataLanguage + `">
        <div class="code-block-header">
          <span class="code-block-language">` + label + `</span>
          <button class="copy-code-btn" data-code="`)
	b.WriteString(highlight.EscapeHTML(code))
	b.WriteString(`" title="Copy code">
            ` + copyIcon + `
          </button>
        </div>
        <pre class="code-block">`)
	b.WriteString(codeOpen)
	b.WriteString(body)
	b.WriteString(`</code></pre>
      </div>`)
	return b.String()
}
