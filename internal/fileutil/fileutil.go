// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrSlugEmpty         = errors.New("slug cannot be empty")
	ErrSlugPathTraversal = errors.New("slug contains path separator or null byte")
)

// MarkdownExtensions lists the source extensions in lookup order.
var MarkdownExtensions = []string{".mdx", ".md"}

// ValidateSlug checks that a slug is safe to join onto a content directory.
func ValidateSlug(slug string) error {
	if slug == "" {
		return ErrSlugEmpty
	}
	if strings.ContainsAny(slug, "/\\\x00") || slug == "." || slug == ".." {
		return ErrSlugPathTraversal
	}
	return nil
}

// IsMarkdown reports whether name ends in one of MarkdownExtensions.
func IsMarkdown(name string) bool {
	return MarkdownExt(name) != ""
}

// MarkdownExt returns the markdown extension of name, or "" if it has none.
func MarkdownExt(name string) string {
	for _, ext := range MarkdownExtensions {
		if strings.HasSuffix(name, ext) {
			return ext
		}
	}
	return ""
}

// TrimMarkdownExt strips the markdown extension from a file name.
//
// Examples:
//   - "hello.md" -> "hello"
//   - "react-hooks.mdx" -> "react-hooks"
//   - "notes.txt" -> "notes.txt"
//   - "dir/post.md" -> "post"
func TrimMarkdownExt(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, MarkdownExt(base))
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsURL returns true if the string looks like a URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
