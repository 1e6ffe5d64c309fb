// Package source locates markdown post files on disk and splits each one
// into a front-matter record and a markdown body.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-mdblog/internal/fileutil"
	"github.com/alnah/go-mdblog/internal/yamlutil"
)

// Sentinel errors for source loading.
var (
	ErrNotFound         = errors.New("source file not found")
	ErrInvalidSlug      = errors.New("invalid slug")
	ErrReadSource       = errors.New("failed to read source file")
	ErrParseFrontMatter = errors.New("failed to parse front matter")
)

var (
	crlfOrCR = regexp.MustCompile(`\r\n?`)
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}

	// yamlFormat only recognizes `---` delimited YAML headers.
	yamlFormat = frontmatter.NewFormat("---", "---", yamlutil.DecodeFrontMatter)
)

// Entry is one markdown file found in a content directory.
type Entry struct {
	Slug string
	Path string

	// Shadowed lists files with the same slug hidden by Path's extension
	// priority (e.g. post.md next to post.mdx).
	Shadowed []string
}

// Document is a parsed source file.
type Document struct {
	Slug string
	Path string
	Meta Meta
	Body string
}

// Dir is a directory of `<slug>.md` / `<slug>.mdx` files.
type Dir struct {
	Path string
}

// isPostFile accepts regular files and symlinks to regular files, the same
// files Find can open. Dangling links are skipped.
func isPostFile(de fs.DirEntry, path string) bool {
	switch mode := de.Type(); {
	case mode.IsRegular():
		return true
	case mode&fs.ModeSymlink != 0:
		return fileutil.FileExists(path)
	default:
		return false
	}
}

// Find resolves a slug to a file path, trying each extension in
// fileutil.MarkdownExtensions order (.mdx before .md).
func (d Dir) Find(slug string) (string, error) {
	if err := fileutil.ValidateSlug(slug); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSlug, err)
	}
	for _, ext := range fileutil.MarkdownExtensions {
		path := filepath.Join(d.Path, slug+ext)
		if fileutil.FileExists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, slug)
}

// List enumerates the markdown files in the directory, in name order, one
// entry per slug. When two files share a slug the one Find would pick wins.
// A missing directory is not an error: it yields an empty list.
func (d Dir) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(d.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrReadSource, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	bySlug := make(map[string]int, len(dirEntries))
	for _, de := range dirEntries {
		if !fileutil.IsMarkdown(de.Name()) {
			continue
		}
		path := filepath.Join(d.Path, de.Name())
		if !isPostFile(de, path) {
			continue
		}
		slug := fileutil.TrimMarkdownExt(de.Name())

		idx, dup := bySlug[slug]
		if !dup {
			bySlug[slug] = len(entries)
			entries = append(entries, Entry{Slug: slug, Path: path})
			continue
		}
		e := &entries[idx]
		if extRank(path) < extRank(e.Path) {
			e.Shadowed = append(e.Shadowed, e.Path)
			e.Path = path
		} else {
			e.Shadowed = append(e.Shadowed, path)
		}
	}
	return entries, nil
}

// extRank is the position of path's extension in fileutil.MarkdownExtensions.
func extRank(path string) int {
	ext := fileutil.MarkdownExt(path)
	for i, e := range fileutil.MarkdownExtensions {
		if e == ext {
			return i
		}
	}
	return len(fileutil.MarkdownExtensions)
}

// Load finds and reads the document for slug.
func (d Dir) Load(slug string) (*Document, error) {
	path, err := d.Find(slug)
	if err != nil {
		return nil, err
	}
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc.Slug = slug
	return doc, nil
}

// ReadFile reads and parses a single source file. The slug is derived from
// the file name.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from Dir.Find or Dir.List
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadSource, err)
	}

	meta, body, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	return &Document{
		Slug: fileutil.TrimMarkdownExt(path),
		Path: path,
		Meta: meta,
		Body: body,
	}, nil
}

// Parse splits src into its front-matter record and markdown body.
// A file without a front-matter header yields an empty record and the whole
// file as body.
func Parse(src []byte) (Meta, string, error) {
	src = bytes.TrimPrefix(src, utf8BOM)
	src = crlfOrCR.ReplaceAll(src, []byte("\n"))

	meta := Meta{}
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta, yamlFormat)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrParseFrontMatter, err)
	}
	if meta == nil {
		meta = Meta{}
	}
	return meta, string(body), nil
}
