package pipeline

import (
	"context"
	"log/slog"
)

// Pipeline renders a markdown body into post HTML:
// markdown -> HTML, then heading ids, then code block enhancement.
type Pipeline struct {
	converter  HTMLConverter
	headings   *HeadingIdentifier
	codeBlocks *CodeBlockEnhancer
}

type pipelineConfig struct {
	converter   HTMLConverter
	highlighter Highlighter
	fallback    FallbackMode
	markdown    MarkdownOptions
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*pipelineConfig)

// WithConverter replaces the goldmark converter.
func WithConverter(c HTMLConverter) Option {
	return func(cfg *pipelineConfig) { cfg.converter = c }
}

// WithMarkdown sets the goldmark options used when no converter is given.
func WithMarkdown(o MarkdownOptions) Option {
	return func(cfg *pipelineConfig) { cfg.markdown = o }
}

// WithHighlighter replaces the built-in rule table highlighter.
func WithHighlighter(h Highlighter) Option {
	return func(cfg *pipelineConfig) { cfg.highlighter = h }
}

// WithFallbackMode sets how empty heading slugs are replaced.
func WithFallbackMode(m FallbackMode) Option {
	return func(cfg *pipelineConfig) { cfg.fallback = m }
}

// WithLogger sets the logger for recoverable stage failures.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *pipelineConfig) { cfg.logger = l }
}

// New creates a Pipeline. Stages are safe for concurrent use.
func New(opts ...Option) *Pipeline {
	cfg := pipelineConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.converter == nil {
		cfg.converter = NewGoldmarkConverter(cfg.markdown)
	}
	return &Pipeline{
		converter:  cfg.converter,
		headings:   NewHeadingIdentifier(cfg.fallback),
		codeBlocks: NewCodeBlockEnhancer(cfg.highlighter, cfg.logger),
	}
}

// Render converts a markdown body into final post HTML.
func (p *Pipeline) Render(ctx context.Context, markdown string) (string, error) {
	htmlContent, err := p.converter.ToHTML(ctx, markdown)
	if err != nil {
		return "", err
	}
	return p.PostProcess(ctx, htmlContent)
}

// PostProcess runs the HTML stages on already rendered HTML. Heading ids
// are assigned before code blocks are rewritten. Running it on its own
// output returns that output unchanged.
func (p *Pipeline) PostProcess(ctx context.Context, htmlContent string) (string, error) {
	htmlContent = p.headings.IdentifyHeadings(ctx, htmlContent)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	htmlContent = p.codeBlocks.EnhanceCodeBlocks(ctx, htmlContent)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return htmlContent, nil
}
