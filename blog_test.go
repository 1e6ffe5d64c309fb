package mdblog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// writePost creates a post file under dir.
func writePost(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

// newFixtureBlog builds a content directory with a small, varied set of posts.
func newFixtureBlog(t *testing.T, opts ...Option) (*Blog, string) {
	t.Helper()
	dir := t.TempDir()

	writePost(t, dir, "hooks.mdx", `---
title: React Hooks
description: State without classes
date: "2025-03-01"
tags: [React, Frontend]
pinned: true
author:
  name: Jane Doe
---
## Why hooks

`+"```jsx\nconst [n, setN] = useState(0);\n```\n")

	writePost(t, dir, "go-errors.md", `---
title: Errors in Go
description: Wrapping and sentinels
date: "2025-03-01"
tags: [Go, Backend]
---
## Sentinel errors

Use `+"`errors.Is`"+`.
`)

	writePost(t, dir, "css-grid.md", `---
title: CSS Grid
date: "2025-01-10"
tags: [CSS, Frontend]
readTime: 3 min read
featuredImage: /images/grid.png
---
Grid layout notes.
`)

	writePost(t, dir, "notes.md", "Just a body, no front matter.\n")

	// Not a post.
	writePost(t, dir, "README.txt", "ignored")

	opts = append([]Option{WithPostsDir(dir)}, opts...)
	blog, err := NewBlog(opts...)
	if err != nil {
		t.Fatalf("NewBlog() error = %v", err)
	}
	return blog, dir
}

func slugsOf(posts []*Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}

// ---------------------------------------------------------------------------
// TestNewBlog - Option validation
// ---------------------------------------------------------------------------

func TestNewBlog(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		blog, err := NewBlog()
		if err != nil {
			t.Fatalf("NewBlog() error = %v", err)
		}
		if blog.PostsDir() != DefaultPostsDir {
			t.Errorf("PostsDir() = %q, want %q", blog.PostsDir(), DefaultPostsDir)
		}
		if blog.workers < MinPoolSize || blog.workers > MaxPoolSize {
			t.Errorf("workers = %d, want within [%d, %d]", blog.workers, MinPoolSize, MaxPoolSize)
		}
	})

	invalid := []struct {
		name string
		opt  Option
	}{
		{"negative workers", WithWorkers(-1)},
		{"unknown heading fallback", WithHeadingFallback("sequential")},
		{"inverted toc depth", WithTOCDepth(4, 2)},
		{"toc depth out of range", WithTOCDepth(0, 7)},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewBlog(tt.opt)
			if !errors.Is(err, ErrInvalidOption) {
				t.Errorf("NewBlog() error = %v, want ErrInvalidOption", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBlog_Posts - Listing, ordering and defaults
// ---------------------------------------------------------------------------

func TestBlog_Posts(t *testing.T) {
	t.Parallel()

	blog, _ := newFixtureBlog(t)
	posts, err := blog.Posts(context.Background())
	if err != nil {
		t.Fatalf("Posts() error = %v", err)
	}

	// Same date: slug ascending. Missing date sorts last.
	want := []string{"go-errors", "hooks", "css-grid", "notes"}
	if got := slugsOf(posts); !reflect.DeepEqual(got, want) {
		t.Errorf("Posts() order = %v, want %v", got, want)
	}

	bySlug := map[string]*Post{}
	for _, p := range posts {
		bySlug[p.Slug] = p
	}

	t.Run("front matter fields", func(t *testing.T) {
		p := bySlug["hooks"]
		if p.ID != "hooks" || p.Title != "React Hooks" || p.Description != "State without classes" {
			t.Errorf("unexpected identity fields: %+v", p)
		}
		if p.Date != "2025-03-01" {
			t.Errorf("Date = %q", p.Date)
		}
		if !p.Pinned {
			t.Error("Pinned = false, want true")
		}
		if !reflect.DeepEqual(p.Tags, []string{"React", "Frontend"}) {
			t.Errorf("Tags = %v", p.Tags)
		}
	})

	t.Run("author fields default independently", func(t *testing.T) {
		got := bySlug["hooks"].Author
		def := DefaultDefaults().Author
		want := Author{Name: "Jane Doe", Image: def.Image, Bio: def.Bio}
		if got != want {
			t.Errorf("Author = %+v, want %+v", got, want)
		}
	})

	t.Run("missing keys use defaults", func(t *testing.T) {
		p := bySlug["notes"]
		def := DefaultDefaults()
		if p.Title != def.Title || p.ReadTime != def.ReadTime || p.FeaturedImage != def.FeaturedImage {
			t.Errorf("defaults not applied: %+v", p)
		}
		if p.Author != def.Author {
			t.Errorf("Author = %+v, want %+v", p.Author, def.Author)
		}
		if p.Tags == nil || len(p.Tags) != 0 {
			t.Errorf("Tags = %#v, want empty non-nil", p.Tags)
		}
		if p.Pinned {
			t.Error("Pinned = true, want false")
		}
	})

	t.Run("explicit values win over defaults", func(t *testing.T) {
		p := bySlug["css-grid"]
		if p.ReadTime != "3 min read" || p.FeaturedImage != "/images/grid.png" {
			t.Errorf("ReadTime/FeaturedImage = %q/%q", p.ReadTime, p.FeaturedImage)
		}
	})

	t.Run("content is rendered", func(t *testing.T) {
		content := bySlug["hooks"].Content
		for _, want := range []string{
			`<h2 id="why-hooks">Why hooks</h2>`,
			`data-language="jsx"`,
			`<span class="keyword">const</span>`,
			`class="copy-code-btn"`,
		} {
			if !strings.Contains(content, want) {
				t.Errorf("content missing %q\ngot: %s", want, content)
			}
		}
		if !strings.Contains(bySlug["go-errors"].Content, `<code class="inline-code">errors.Is</code>`) {
			t.Errorf("inline code not enhanced: %s", bySlug["go-errors"].Content)
		}
	})

	t.Run("toc lists identified headings", func(t *testing.T) {
		want := []TOCEntry{{Level: 2, ID: "sentinel-errors", Text: "Sentinel errors"}}
		if got := bySlug["go-errors"].TOC; !reflect.DeepEqual(got, want) {
			t.Errorf("TOC = %+v, want %+v", got, want)
		}
	})
}

func TestBlog_Posts_JSON(t *testing.T) {
	t.Parallel()

	blog, _ := newFixtureBlog(t)
	post, err := blog.Post(context.Background(), "notes")
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	data, err := json.Marshal(post)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	for _, want := range []string{`"id":"notes"`, `"tags":[]`, `"toc":[]`, `"readTime":"5 min read"`} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("JSON missing %s\ngot: %s", want, data)
		}
	}
}

func TestBlog_Posts_MissingDirectory(t *testing.T) {
	t.Parallel()

	blog, err := NewBlog(WithPostsDir(filepath.Join(t.TempDir(), "nope")))
	if err != nil {
		t.Fatalf("NewBlog() error = %v", err)
	}
	posts, err := blog.Posts(context.Background())
	if err != nil {
		t.Fatalf("Posts() error = %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Errorf("Posts() = %#v, want empty non-nil", posts)
	}

	tags, err := blog.Tags(context.Background())
	if err != nil {
		t.Fatalf("Tags() error = %v", err)
	}
	if !reflect.DeepEqual(tags, []string{AllTag}) {
		t.Errorf("Tags() = %v, want [All]", tags)
	}
}

func TestBlog_Posts_InvalidFile(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T, opts ...Option) *Blog {
		t.Helper()
		blog, dir := newFixtureBlog(t, opts...)
		writePost(t, dir, "broken.md", "---\ntitle: [unclosed\n---\nbody\n")
		return blog
	}

	t.Run("fails the listing by default", func(t *testing.T) {
		t.Parallel()

		_, err := setup(t).Posts(context.Background())
		if !errors.Is(err, ErrListPosts) {
			t.Fatalf("Posts() error = %v, want ErrListPosts", err)
		}
		if !strings.Contains(err.Error(), "broken") {
			t.Errorf("error should name the file, got: %v", err)
		}
	})

	t.Run("skipped and logged with WithSkipInvalid", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		posts, err := setup(t, WithSkipInvalid(true), WithLogger(logger)).Posts(context.Background())
		if err != nil {
			t.Fatalf("Posts() error = %v", err)
		}
		if len(posts) != 4 {
			t.Errorf("Posts() returned %d posts, want 4", len(posts))
		}
		if !strings.Contains(logs.String(), "skipping invalid post") || !strings.Contains(logs.String(), "broken") {
			t.Errorf("expected skip warning, got: %q", logs.String())
		}
	})
}

func TestBlog_Posts_ShadowedFileListedOnce(t *testing.T) {
	t.Parallel()

	blog, dir := newFixtureBlog(t)
	writePost(t, dir, "hooks.md", "---\ntitle: Shadowed\n---\n")

	posts, err := blog.Posts(context.Background())
	if err != nil {
		t.Fatalf("Posts() error = %v", err)
	}
	if len(posts) != 4 {
		t.Fatalf("Posts() returned %d posts, want 4: %v", len(posts), slugsOf(posts))
	}
	for _, p := range posts {
		if p.Slug == "hooks" && p.Title != "React Hooks" {
			t.Errorf("hooks Title = %q, want the .mdx version", p.Title)
		}
	}
}

func TestBlog_Posts_ManyFilesKeepOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var want []string
	for i := 30; i >= 1; i-- {
		slug := fmt.Sprintf("post-%02d", i)
		writePost(t, dir, slug+".md", fmt.Sprintf("---\ndate: \"2025-01-%02d\"\n---\n## Part %d\n", i, i))
		want = append(want, slug)
	}

	blog, err := NewBlog(WithPostsDir(dir), WithWorkers(3))
	if err != nil {
		t.Fatalf("NewBlog() error = %v", err)
	}
	posts, err := blog.Posts(context.Background())
	if err != nil {
		t.Fatalf("Posts() error = %v", err)
	}
	if got := slugsOf(posts); !reflect.DeepEqual(got, want) {
		t.Errorf("Posts() order = %v, want %v", got, want)
	}
}

func TestBlog_Posts_CanceledContext(t *testing.T) {
	t.Parallel()

	blog, _ := newFixtureBlog(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := blog.Posts(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Posts() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestBlog_Post - Lookup by slug
// ---------------------------------------------------------------------------

func TestBlog_Post(t *testing.T) {
	t.Parallel()

	blog, dir := newFixtureBlog(t)
	writePost(t, dir, "hooks.md", "---\ntitle: Shadowed\n---\n")
	writePost(t, dir, "broken.md", "---\ntitle: [unclosed\n---\n")

	t.Run("mdx preferred over md", func(t *testing.T) {
		t.Parallel()

		p, err := blog.Post(context.Background(), "hooks")
		if err != nil {
			t.Fatalf("Post() error = %v", err)
		}
		if p.Title != "React Hooks" {
			t.Errorf("Title = %q, want React Hooks", p.Title)
		}
	})

	notFound := []struct {
		name string
		slug string
	}{
		{"missing file", "does-not-exist"},
		{"empty slug", ""},
		{"path traversal", "../secret"},
		{"malformed front matter", "broken"},
	}
	for _, tt := range notFound {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := blog.Post(context.Background(), tt.slug)
			if !errors.Is(err, ErrPostNotFound) {
				t.Errorf("Post(%q) error = %v, want ErrPostNotFound", tt.slug, err)
			}
			if p != nil {
				t.Errorf("Post(%q) = %+v, want nil", tt.slug, p)
			}
		})
	}
}

func TestBlog_Post_MarkdownOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePost(t, dir, "quotes.md", "---\ntitle: Quotes\n---\n\"Hi\" -- there\nnext line\n")

	blog, err := NewBlog(WithPostsDir(dir), WithTypographer(true), WithHardWraps(true))
	if err != nil {
		t.Fatalf("NewBlog() error = %v", err)
	}
	p, err := blog.Post(context.Background(), "quotes")
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	for _, want := range []string{"&ldquo;Hi&rdquo;", "&ndash;", "<br>"} {
		if !strings.Contains(p.Content, want) {
			t.Errorf("Content missing %q\ngot: %s", want, p.Content)
		}
	}
}

func TestBlog_Post_LogsUnexpectedFailures(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	blog, dir := newFixtureBlog(t, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	writePost(t, dir, "broken.md", "---\ntitle: [unclosed\n---\n")

	if _, err := blog.Post(context.Background(), "missing"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("Post() error = %v", err)
	}
	if logs.Len() != 0 {
		t.Errorf("missing post should not log, got: %q", logs.String())
	}

	if _, err := blog.Post(context.Background(), "broken"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("Post() error = %v", err)
	}
	if !strings.Contains(logs.String(), "reading post failed") {
		t.Errorf("expected error log, got: %q", logs.String())
	}
}

type panicConverter struct{}

func (panicConverter) ToHTML(ctx context.Context, content string) (string, error) {
	panic("converter exploded")
}

func TestBlog_RecoversFromPanics(t *testing.T) {
	t.Parallel()

	blog, _ := newFixtureBlog(t, withConverter(panicConverter{}))

	if _, err := blog.Post(context.Background(), "hooks"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("Post() error = %v, want ErrPostNotFound", err)
	}

	_, err := blog.Posts(context.Background())
	if !errors.Is(err, ErrListPosts) || !errors.Is(err, ErrRenderPost) {
		t.Errorf("Posts() error = %v, want ErrListPosts wrapping ErrRenderPost", err)
	}
}

// ---------------------------------------------------------------------------
// TestBlog_Tags / PostsByTag / Search / Filter / Slugs
// ---------------------------------------------------------------------------

func TestBlog_Tags(t *testing.T) {
	t.Parallel()

	blog, _ := newFixtureBlog(t)
	got, err := blog.Tags(context.Background())
	if err != nil {
		t.Fatalf("Tags() error = %v", err)
	}
	want := []string{AllTag, "Go", "Backend", "React", "Frontend", "CSS"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tags() = %v, want %v", got, want)
	}
}

func TestBlog_PostsByTag(t *testing.T) {
	t.Parallel()

	blog, _ := newFixtureBlog(t)
	ctx := context.Background()

	all, err := blog.Posts(ctx)
	if err != nil {
		t.Fatalf("Posts() error = %v", err)
	}

	tests := []struct {
		tag  string
		want []string
	}{
		{AllTag, slugsOf(all)},
		{"Frontend", []string{"hooks", "css-grid"}},
		{"Go", []string{"go-errors"}},
		{"go", []string{}},
		{"Unknown", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()

			posts, err := blog.PostsByTag(ctx, tt.tag)
			if err != nil {
				t.Fatalf("PostsByTag() error = %v", err)
			}
			if got := slugsOf(posts); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PostsByTag(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestBlog_Search(t *testing.T) {
	t.Parallel()

	blog, _ := newFixtureBlog(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title case-insensitive", "react", []string{"hooks"}},
		{"upper-case query", "GRID", []string{"css-grid"}},
		{"description", "sentinels", []string{"go-errors"}},
		{"tag substring", "backe", []string{"go-errors"}},
		{"rendered content", "usestate", []string{"hooks"}},
		{"front matter only body", "no front matter", []string{"notes"}},
		{"no match", "kubernetes", []string{}},
		{"empty query matches all", "", []string{"go-errors", "hooks", "css-grid", "notes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			posts, err := blog.Search(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if got := slugsOf(posts); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestBlog_Filter(t *testing.T) {
	t.Parallel()

	blog, _ := newFixtureBlog(t)

	tests := []struct {
		name        string
		opts        FilterOptions
		wantPinned  []string
		wantRegular []string
	}{
		{
			name:        "everything",
			opts:        FilterOptions{},
			wantPinned:  []string{"hooks"},
			wantRegular: []string{"go-errors", "css-grid", "notes"},
		},
		{
			name:        "tag only",
			opts:        FilterOptions{Tag: "Frontend"},
			wantPinned:  []string{"hooks"},
			wantRegular: []string{"css-grid"},
		},
		{
			name:        "tag and query",
			opts:        FilterOptions{Tag: "Frontend", Query: "grid"},
			wantPinned:  []string{},
			wantRegular: []string{"css-grid"},
		},
		{
			name:        "all tag with query",
			opts:        FilterOptions{Tag: AllTag, Query: "errors"},
			wantPinned:  []string{},
			wantRegular: []string{"go-errors"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := blog.Filter(context.Background(), tt.opts)
			if err != nil {
				t.Fatalf("Filter() error = %v", err)
			}
			if p := slugsOf(got.Pinned); !reflect.DeepEqual(p, tt.wantPinned) {
				t.Errorf("Pinned = %v, want %v", p, tt.wantPinned)
			}
			if r := slugsOf(got.Regular); !reflect.DeepEqual(r, tt.wantRegular) {
				t.Errorf("Regular = %v, want %v", r, tt.wantRegular)
			}
			if got.Len() != len(tt.wantPinned)+len(tt.wantRegular) {
				t.Errorf("Len() = %d", got.Len())
			}
		})
	}
}

func TestBlog_Slugs(t *testing.T) {
	t.Parallel()

	blog, _ := newFixtureBlog(t)
	got, err := blog.Slugs(context.Background())
	if err != nil {
		t.Fatalf("Slugs() error = %v", err)
	}
	want := []string{"css-grid", "go-errors", "hooks", "notes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Slugs() = %v, want %v", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestOptions - Behavior-changing options
// ---------------------------------------------------------------------------

func TestWithDefaults(t *testing.T) {
	t.Parallel()

	blog, _ := newFixtureBlog(t, WithDefaults(Defaults{
		ReadTime: "1 min read",
		Author:   Author{Name: "Site Owner"},
	}))
	p, err := blog.Post(context.Background(), "notes")
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if p.ReadTime != "1 min read" {
		t.Errorf("ReadTime = %q, want 1 min read", p.ReadTime)
	}
	if p.Title != "Untitled" {
		t.Errorf("Title = %q, want built-in default", p.Title)
	}
	if p.Author.Name != "Site Owner" || p.Author.Bio != DefaultDefaults().Author.Bio {
		t.Errorf("Author = %+v", p.Author)
	}
}

func TestWithHeadingFallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePost(t, dir, "emoji.md", "## 🚀\n\n### !!!\n")

	blog, err := NewBlog(WithPostsDir(dir), WithHeadingFallback("counter"))
	if err != nil {
		t.Fatalf("NewBlog() error = %v", err)
	}
	p, err := blog.Post(context.Background(), "emoji")
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	want := []TOCEntry{
		{Level: 2, ID: "heading-2-1", Text: "🚀"},
		{Level: 3, ID: "heading-3-2", Text: "!!!"},
	}
	if !reflect.DeepEqual(p.TOC, want) {
		t.Errorf("TOC = %+v, want %+v", p.TOC, want)
	}
}

func TestWithChromaFallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePost(t, dir, "rust.md", "```rust\nfn main() {}\n```\n")

	plain, err := NewBlog(WithPostsDir(dir))
	if err != nil {
		t.Fatalf("NewBlog() error = %v", err)
	}
	chroma, err := NewBlog(WithPostsDir(dir), WithChromaFallback(""))
	if err != nil {
		t.Fatalf("NewBlog() error = %v", err)
	}

	ctx := context.Background()
	p1, err := plain.Post(ctx, "rust")
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	p2, err := chroma.Post(ctx, "rust")
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	// The language label is the only span without highlighting.
	if n := strings.Count(p1.Content, "<span class="); n != 1 {
		t.Errorf("rule table should not highlight rust, got %d spans: %s", n, p1.Content)
	}
	if n := strings.Count(p2.Content, "<span class="); n <= 1 {
		t.Errorf("chroma fallback should highlight rust: %s", p2.Content)
	}
}

func TestWithTOCDepth(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePost(t, dir, "deep.md", "## Two\n\n### Three\n\n#### Four\n\n##### Five\n")

	blog, err := NewBlog(WithPostsDir(dir), WithTOCDepth(3, 5))
	if err != nil {
		t.Fatalf("NewBlog() error = %v", err)
	}
	p, err := blog.Post(context.Background(), "deep")
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	var ids []string
	for _, e := range p.TOC {
		ids = append(ids, e.ID)
	}
	if want := []string{"three", "four", "five"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("TOC ids = %v, want %v", ids, want)
	}
}
