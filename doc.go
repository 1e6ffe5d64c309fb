// Package mdblog turns a directory of markdown posts into rendered blog posts.
//
// # Quick Start
//
// Point a Blog at a content directory and ask for posts:
//
//	blog, err := mdblog.NewBlog(mdblog.WithPostsDir("posts"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	posts, err := blog.Posts(ctx)           // newest first
//	post, err := blog.Post(ctx, "hello")    // posts/hello.mdx or posts/hello.md
//	tags, err := blog.Tags(ctx)             // "All" first
//	hits, err := blog.Search(ctx, "react")  // case-insensitive
//
// # Source Files
//
// Each post is a file named <slug>.mdx or <slug>.md (.mdx wins when both
// exist) starting with a YAML front-matter block:
//
//	---
//	title: Hello
//	date: 2025-01-15
//	tags: [go, web]
//	pinned: true
//	author:
//	  name: Jane Doe
//	---
//	Body in markdown.
//
// Missing keys fall back to Defaults; each author field falls back on its own.
//
// # Rendering Pipeline
//
// Bodies are rendered in a fixed order:
//
//  1. Markdown to HTML via Goldmark (GFM tables, strikethrough, autolinks,
//     task lists, footnotes; raw HTML passes through)
//  2. Heading ids on h2-h6, derived from the heading text
//  3. Code block enhancement: a wrapper with a language label and a copy
//     button carrying the raw code, pattern-based highlight spans, and an
//     "inline-code" class on inline code
//
// The copy button expects the script served by internal/assets
// (copy-code.js) and the highlight classes are styled by code.css.
//
// # Concurrency
//
// Listings render files with a bounded worker pool sized by
// ResolvePoolSize. Nothing is cached; every call reads the directory again,
// so edits show up immediately.
//
// # Errors
//
// Post returns ErrPostNotFound for missing or unreadable posts. Listings
// fail with ErrListPosts when a file cannot be loaded or rendered, unless
// WithSkipInvalid is set, in which case the file is logged and skipped.
package mdblog
