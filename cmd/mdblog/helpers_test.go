package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fixedNow is the clock used by test environments.
var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestEnv returns an Environment writing to buffers, with no terminal.
func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:       func() time.Time { return fixedNow },
		Stdout:    &stdout,
		Stderr:    &stderr,
		TermWidth: func() int { return 0 },
	}, &stdout, &stderr
}

// testPosts is a small blog: one pinned post, two regular posts.
var testPosts = map[string]string{
	"hooks.mdx": `---
title: "React Hooks"
description: "State without classes"
date: "2024-03-10"
tags: [React, Frontend]
pinned: true
---

## Using State

` + "```jsx\nconst [n, setN] = useState(0);\n```\n",
	"go-errors.md": `---
title: Go Errors
description: Wrapping with %w
date: 2024-04-02
tags:
  - Go
  - Backend
author:
  name: Rob
---

## Sentinels

Use ` + "`errors.Is`" + `.
`,
	"css-grid.md": `---
title: CSS Grid
date: 2024-01-20
tags: [CSS, Frontend]
---

Grid layouts.
`,
}

// writePostsDir creates a posts directory with files and returns its path.
func writePostsDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating posts dir: %v", err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

// writeConfig writes a YAML config and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mdblog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}
