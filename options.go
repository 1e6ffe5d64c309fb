package mdblog

import (
	"fmt"
	"log/slog"

	"github.com/alnah/go-mdblog/internal/pipeline"
)

// DefaultPostsDir is the content directory used when none is configured.
const DefaultPostsDir = "posts"

// blogConfig collects option values before NewBlog validates them.
type blogConfig struct {
	postsDir       string
	logger         *slog.Logger
	skipInvalid    bool
	workers        int
	defaults       Defaults
	fallback       pipeline.FallbackMode
	chroma         bool
	chromaStyle    string
	tocMin, tocMax int
	markdown       pipeline.MarkdownOptions
	converter      pipeline.HTMLConverter
	errs           []error
}

// Option configures a Blog.
type Option func(*blogConfig)

// WithPostsDir sets the directory holding <slug>.md and <slug>.mdx files.
func WithPostsDir(dir string) Option {
	return func(c *blogConfig) {
		c.postsDir = dir
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *blogConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSkipInvalid makes listings log and skip posts that fail to load or
// render instead of failing as a whole.
func WithSkipInvalid(skip bool) Option {
	return func(c *blogConfig) {
		c.skipInvalid = skip
	}
}

// WithWorkers sets the number of concurrent renders for listings.
// Zero selects ResolvePoolSize's automatic value.
func WithWorkers(n int) Option {
	return func(c *blogConfig) {
		if n < 0 {
			c.errs = append(c.errs, fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidOption, n))
			return
		}
		c.workers = n
	}
}

// WithDefaults overrides the fallback values for missing front-matter keys.
// Empty fields keep the built-in value from DefaultDefaults.
func WithDefaults(d Defaults) Option {
	return func(c *blogConfig) {
		c.defaults = d.Merge(DefaultDefaults())
	}
}

// WithHeadingFallback selects how headings whose text yields no slug get an
// id: "random" (default) or "counter".
func WithHeadingFallback(mode string) Option {
	return func(c *blogConfig) {
		m, ok := pipeline.ParseFallbackMode(mode)
		if !ok {
			c.errs = append(c.errs, fmt.Errorf("%w: heading fallback %q", ErrInvalidOption, mode))
			return
		}
		c.fallback = m
	}
}

// WithChromaFallback highlights languages outside the built-in rule table
// with chroma, using class names from style. An empty style selects the
// default chroma style.
func WithChromaFallback(style string) Option {
	return func(c *blogConfig) {
		c.chroma = true
		c.chromaStyle = style
	}
}

// WithTOCDepth sets the heading levels included in Post.TOC.
func WithTOCDepth(minDepth, maxDepth int) Option {
	return func(c *blogConfig) {
		if minDepth < 1 || maxDepth > 6 || minDepth > maxDepth {
			c.errs = append(c.errs, fmt.Errorf("%w: toc depth %d-%d", ErrInvalidOption, minDepth, maxDepth))
			return
		}
		c.tocMin, c.tocMax = minDepth, maxDepth
	}
}

// WithTypographer renders straight quotes, "--" and "..." as their
// typographic forms.
func WithTypographer(on bool) Option {
	return func(c *blogConfig) {
		c.markdown.Typographer = on
	}
}

// WithHardWraps turns single newlines inside paragraphs into line breaks.
func WithHardWraps(on bool) Option {
	return func(c *blogConfig) {
		c.markdown.HardWraps = on
	}
}

// withConverter replaces the markdown converter (tests only).
func withConverter(conv pipeline.HTMLConverter) Option {
	return func(c *blogConfig) {
		c.converter = conv
	}
}
