package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates goldmark failed to render a post body.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter renders a markdown body into an HTML fragment.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// MarkdownOptions selects optional rendering behavior. The zero value
// renders GFM with footnotes and nothing else.
type MarkdownOptions struct {
	Typographer bool // curly quotes, dashes and ellipses
	HardWraps   bool // a single newline inside a paragraph becomes <br>
}

// maxPooledBuffer caps the buffers kept for reuse so one huge post does
// not pin its memory.
const maxPooledBuffer = 1 << 20

// GoldmarkConverter renders post bodies with goldmark.
//
// Headings come out without ids and fenced code as a bare
// <pre><code class="language-X"> block; the later stages own both.
type GoldmarkConverter struct {
	md   goldmark.Markdown
	bufs sync.Pool
}

var _ HTMLConverter = (*GoldmarkConverter)(nil)

// NewGoldmarkConverter builds a converter. Raw HTML in posts is kept.
func NewGoldmarkConverter(opts MarkdownOptions) *GoldmarkConverter {
	exts := []goldmark.Extender{extension.GFM, extension.Footnote}
	if opts.Typographer {
		exts = append(exts, extension.Typographer)
	}
	rendering := []renderer.Option{html.WithUnsafe()}
	if opts.HardWraps {
		rendering = append(rendering, html.WithHardWraps())
	}

	c := &GoldmarkConverter{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithRendererOptions(rendering...),
		),
	}
	c.bufs.New = func() any { return new(bytes.Buffer) }
	return c
}

type conversion struct {
	html string
	err  error
}

// ToHTML renders content. goldmark takes no context, so the render runs on
// its own goroutine and ToHTML returns ctx.Err() as soon as ctx is done.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out := make(chan conversion, 1)
	go func() { out <- c.convert([]byte(content)) }()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-out:
		return r.html, r.err
	}
}

// convert runs off the caller's goroutine, so a goldmark panic is turned
// into an error here instead of taking the process down.
func (c *GoldmarkConverter) convert(src []byte) (r conversion) {
	buf := c.bufs.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		if buf.Cap() <= maxPooledBuffer {
			c.bufs.Put(buf)
		}
	}()
	defer func() {
		if p := recover(); p != nil {
			r = conversion{err: fmt.Errorf("%w: panic: %v", ErrHTMLConversion, p)}
		}
	}()

	if err := c.md.Convert(src, buf); err != nil {
		return conversion{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
	}
	return conversion{html: buf.String()}
}
