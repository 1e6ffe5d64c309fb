package mdblog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-mdblog/internal/highlight"
	"github.com/alnah/go-mdblog/internal/pipeline"
	"github.com/alnah/go-mdblog/internal/source"
)

// Blog reads posts from a content directory and renders them on demand.
// Nothing is cached: every call re-reads and re-renders from disk.
// A Blog is safe for concurrent use.
type Blog struct {
	dir         source.Dir
	pipeline    *pipeline.Pipeline
	logger      *slog.Logger
	defaults    Defaults
	skipInvalid bool
	workers     int
	tocMin      int
	tocMax      int
}

// NewBlog creates a Blog with default configuration.
// Use options to customize behavior (e.g., WithPostsDir, WithSkipInvalid).
// Returns ErrInvalidOption if an option value is rejected.
func NewBlog(opts ...Option) (*Blog, error) {
	cfg := blogConfig{
		postsDir: DefaultPostsDir,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaults: DefaultDefaults(),
		tocMin:   pipeline.DefaultTOCMinDepth,
		tocMax:   pipeline.DefaultTOCMaxDepth,
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := errors.Join(cfg.errs...); err != nil {
		return nil, err
	}

	var hlOpts []highlight.Option
	if cfg.chroma {
		hlOpts = append(hlOpts, highlight.WithChroma(cfg.chromaStyle))
	}
	pipeOpts := []pipeline.Option{
		pipeline.WithHighlighter(highlight.New(hlOpts...)),
		pipeline.WithFallbackMode(cfg.fallback),
		pipeline.WithMarkdown(cfg.markdown),
		pipeline.WithLogger(cfg.logger),
	}
	if cfg.converter != nil {
		pipeOpts = append(pipeOpts, pipeline.WithConverter(cfg.converter))
	}

	return &Blog{
		dir:         source.Dir{Path: cfg.postsDir},
		pipeline:    pipeline.New(pipeOpts...),
		logger:      cfg.logger,
		defaults:    cfg.defaults,
		skipInvalid: cfg.skipInvalid,
		workers:     ResolvePoolSize(cfg.workers),
		tocMin:      cfg.tocMin,
		tocMax:      cfg.tocMax,
	}, nil
}

// PostsDir returns the content directory.
func (b *Blog) PostsDir() string {
	return b.dir.Path
}

// Posts returns every post, newest first. Posts sharing a date are ordered
// by slug. A missing content directory yields an empty listing.
func (b *Blog) Posts(ctx context.Context) ([]*Post, error) {
	entries, err := b.dir.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListPosts, err)
	}

	start := time.Now()
	results := renderBatch(ctx, b.workers, entries, b.renderEntry)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	posts := make([]*Post, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			if !b.skipInvalid {
				return nil, fmt.Errorf("%w: %s: %w", ErrListPosts, r.entry.Slug, r.err)
			}
			b.logger.Warn("skipping invalid post", "slug", r.entry.Slug, "path", r.entry.Path, "error", r.err)
			continue
		}
		posts = append(posts, r.post)
	}

	sortPosts(posts)
	b.logger.Debug("listed posts", "dir", b.dir.Path, "count", len(posts), "workers", b.workers, "duration", time.Since(start))
	return posts, nil
}

// Post returns the post for slug. Missing files, invalid slugs and files
// that fail to load or render all yield ErrPostNotFound; unexpected
// failures are logged first. Recovers from internal panics.
func (b *Blog) Post(ctx context.Context, slug string) (post *Post, err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("internal error rendering post", "slug", slug, "panic", r)
			post, err = nil, fmt.Errorf("%w: %s", ErrPostNotFound, slug)
		}
	}()

	doc, err := b.dir.Load(slug)
	if err != nil {
		if !errors.Is(err, source.ErrNotFound) && !errors.Is(err, source.ErrInvalidSlug) {
			b.logger.Error("reading post failed", "slug", slug, "error", err)
		}
		return nil, fmt.Errorf("%w: %s", ErrPostNotFound, slug)
	}

	post, err = b.build(ctx, doc)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		b.logger.Error("rendering post failed", "slug", slug, "error", err)
		return nil, fmt.Errorf("%w: %s", ErrPostNotFound, slug)
	}
	return post, nil
}

// Slugs returns the slug of every post file without rendering anything.
func (b *Blog) Slugs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := b.dir.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListPosts, err)
	}
	slugs := make([]string, len(entries))
	for i, e := range entries {
		slugs[i] = e.Slug
	}
	return slugs, nil
}

// Tags returns AllTag followed by every distinct tag, in the order tags are
// first seen while walking the listing.
func (b *Blog) Tags(ctx context.Context) ([]string, error) {
	posts, err := b.Posts(ctx)
	if err != nil {
		return nil, err
	}
	return collectTags(posts), nil
}

// PostsByTag returns the posts carrying tag exactly. AllTag returns the
// full listing.
func (b *Blog) PostsByTag(ctx context.Context, tag string) ([]*Post, error) {
	posts, err := b.Posts(ctx)
	if err != nil {
		return nil, err
	}
	return filterByTag(posts, tag), nil
}

// Search returns the posts whose title, description, tags or rendered
// content contain query, ignoring case. An empty query matches every post.
func (b *Blog) Search(ctx context.Context, query string) ([]*Post, error) {
	posts, err := b.Posts(ctx)
	if err != nil {
		return nil, err
	}
	return filterByQuery(posts, query), nil
}

// Filter combines tag selection and search, then splits the result into
// pinned and regular posts.
func (b *Blog) Filter(ctx context.Context, opts FilterOptions) (Listing, error) {
	posts, err := b.Posts(ctx)
	if err != nil {
		return Listing{}, err
	}
	posts = filterByQuery(filterByTag(posts, opts.Tag), opts.Query)

	listing := Listing{Pinned: []*Post{}, Regular: []*Post{}}
	for _, p := range posts {
		if p.Pinned {
			listing.Pinned = append(listing.Pinned, p)
		} else {
			listing.Regular = append(listing.Regular, p)
		}
	}
	return listing, nil
}

// renderEntry loads and renders one listed file. Panics are converted to
// errors so one bad file cannot take down the worker pool.
func (b *Blog) renderEntry(ctx context.Context, entry source.Entry) (post *Post, err error) {
	defer func() {
		if r := recover(); r != nil {
			post, err = nil, fmt.Errorf("%w: internal error: %v", ErrRenderPost, r)
		}
	}()

	doc, err := source.ReadFile(entry.Path)
	if err != nil {
		return nil, err
	}
	doc.Slug = entry.Slug
	return b.build(ctx, doc)
}

// build renders a document body and applies front-matter defaults.
func (b *Blog) build(ctx context.Context, doc *source.Document) (*Post, error) {
	content, err := b.pipeline.Render(ctx, doc.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderPost, err)
	}

	d := b.defaults
	meta := doc.Meta
	return &Post{
		ID:            doc.Slug,
		Slug:          doc.Slug,
		Title:         firstNonEmpty(meta.String("title"), d.Title),
		Description:   firstNonEmpty(meta.String("description"), d.Description),
		Date:          firstNonEmpty(meta.String("date"), d.Date),
		ReadTime:      firstNonEmpty(meta.String("readTime"), d.ReadTime),
		Tags:          meta.Strings("tags"),
		Pinned:        meta.Bool("pinned"),
		FeaturedImage: firstNonEmpty(meta.String("featuredImage"), d.FeaturedImage),
		Author:        authorFromMeta(meta).Merge(d.Author),
		Content:       content,
		TOC:           toTOCEntries(pipeline.ExtractTOC(content, b.tocMin, b.tocMax)),
	}, nil
}

// authorFromMeta reads the author record. A plain string is taken as the
// author name.
func authorFromMeta(meta source.Meta) Author {
	if m := meta.Map("author"); m != nil {
		return Author{
			Name:  m.String("name"),
			Image: m.String("image"),
			Bio:   m.String("bio"),
		}
	}
	return Author{Name: meta.String("author")}
}

// sortPosts orders posts by date descending, then slug ascending.
func sortPosts(posts []*Post) {
	slices.SortStableFunc(posts, func(a, b *Post) int {
		if c := cmp.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})
}

func collectTags(posts []*Post) []string {
	seen := map[string]bool{AllTag: true}
	tags := []string{AllTag}
	for _, p := range posts {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}

func filterByTag(posts []*Post, tag string) []*Post {
	if tag == "" || tag == AllTag {
		return posts
	}
	out := make([]*Post, 0, len(posts))
	for _, p := range posts {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

func filterByQuery(posts []*Post, query string) []*Post {
	if query == "" {
		return posts
	}
	q := strings.ToLower(query)
	out := make([]*Post, 0, len(posts))
	for _, p := range posts {
		if matchesQuery(p, q) {
			out = append(out, p)
		}
	}
	return out
}

// matchesQuery reports whether lowered query q occurs in any searchable field.
func matchesQuery(p *Post, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Content), q) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
