package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdblog"
	"github.com/alnah/go-mdblog/internal/assets"
	"github.com/alnah/go-mdblog/internal/config"
	"github.com/alnah/go-mdblog/internal/dateutil"
	"github.com/alnah/go-mdblog/internal/fileutil"
	"github.com/alnah/go-mdblog/internal/highlight"
	"github.com/alnah/go-mdblog/internal/source"
)

// checkResult holds all content diagnostics.
type checkResult struct {
	Status    string      `json:"status"` // "ready", "warnings", "errors"
	CheckedAt string      `json:"checked_at"`
	Config    configInfo  `json:"config"`
	Posts     []postCheck `json:"posts"`
	Warnings  []string    `json:"warnings,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
}

// configInfo holds the effective settings the check ran with.
type configInfo struct {
	PostsDir    string      `json:"posts_dir"`
	DirExists   bool        `json:"dir_exists"`
	Workers     int         `json:"workers"`
	Highlight   string      `json:"highlight_fallback"`
	ChromaStyle string      `json:"chroma_style,omitempty"`
	AssetPath   string      `json:"asset_path,omitempty"`
	Assets      []assetInfo `json:"assets"`
	Languages   []string    `json:"languages"`
}

// assetInfo records where a browser asset is loaded from.
type assetInfo struct {
	File   string `json:"file"`
	Origin string `json:"origin"`
}

// postCheck holds the result for one post file.
type postCheck struct {
	Slug     string   `json:"slug"`
	Path     string   `json:"path"`
	OK       bool     `json:"ok"`
	Shadowed []string `json:"shadowed,omitempty"`
	Problems []string `json:"problems,omitempty"`
}

// runCheckCmd executes the check command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runCheckCmd(ctx context.Context, args []string, env *Environment) int {
	f := &checkFlags{}
	fs := newCheckFlagSet(f)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { runHelp([]string{"check"}, env) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", fmt.Errorf("%w: %v", ErrUsage, err))
		return ExitUsage
	}

	blog, cfg, err := buildBlog(&f.common, &f.blog, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}

	result := runCheck(ctx, blog, cfg, env.Now())

	if f.output.json {
		_ = writeJSON(env.Stdout, result)
	} else {
		printCheckResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runCheck performs all diagnostic checks.
func runCheck(ctx context.Context, blog *mdblog.Blog, cfg *config.Config, now time.Time) *checkResult {
	result := &checkResult{
		Status:    "ready",
		CheckedAt: now.UTC().Format(time.RFC3339),
		Config: configInfo{
			PostsDir:  blog.PostsDir(),
			Workers:   mdblog.ResolvePoolSize(cfg.Posts.Workers),
			Highlight: cfg.Highlight.Fallback,
			AssetPath: cfg.Assets.BasePath,
			Languages: highlight.Languages(),
		},
		Posts: []postCheck{},
	}

	checkHighlight(result, cfg)
	checkAssets(result, cfg)
	if checkPostsDir(result) {
		checkPosts(ctx, result, blog)
	}

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkHighlight validates the chroma fallback style.
func checkHighlight(result *checkResult, cfg *config.Config) {
	if !cfg.ChromaEnabled() {
		return
	}
	style := cfg.Highlight.ChromaStyle
	if style == "" {
		style = highlight.DefaultChromaStyle
	}
	result.Config.ChromaStyle = style
	if !highlight.HasStyle(style) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Unknown chroma style %q, the chroma fallback style will be used", style))
	}
}

// checkAssets verifies the copy script and code stylesheet load, and records
// where each comes from.
func checkAssets(result *checkResult, cfg *config.Config) {
	r, err := assets.NewResolver(cfg.Assets.BasePath)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	defer r.Close()

	for _, want := range []struct {
		kind assets.Kind
		name string
	}{
		{assets.Script, assets.CopyScriptName},
		{assets.Style, assets.CodeStyleName},
	} {
		file := want.kind.FileName(want.name)
		a, err := r.Load(want.kind, want.name)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Cannot load %s: %v", file, err))
			continue
		}
		result.Config.Assets = append(result.Config.Assets, assetInfo{File: file, Origin: a.Origin})
	}
}

// checkPostsDir reports whether the posts directory exists.
func checkPostsDir(result *checkResult) bool {
	dir := result.Config.PostsDir
	if !fileutil.DirExists(dir) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Posts directory %s does not exist, listings will be empty", dir))
		return false
	}
	result.Config.DirExists = true
	return true
}

// checkPosts parses and renders every post file.
func checkPosts(ctx context.Context, result *checkResult, blog *mdblog.Blog) {
	entries, err := source.Dir{Path: result.Config.PostsDir}.List()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot list posts: %v", err))
		return
	}
	if len(entries) == 0 {
		result.Warnings = append(result.Warnings, "No post files found")
		return
	}

	for _, e := range entries {
		pc := checkPost(ctx, e, blog)
		for _, s := range pc.Shadowed {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s is hidden by %s", filepath.Base(s), filepath.Base(e.Path)))
		}
		if !pc.OK {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", e.Slug, pc.Problems[0]))
		} else {
			for _, p := range pc.Problems {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", e.Slug, p))
			}
		}
		result.Posts = append(result.Posts, pc)
	}
}

// checkPost checks one file. Parse and render failures clear OK and come
// first in Problems; missing metadata only adds warnings.
func checkPost(ctx context.Context, e source.Entry, blog *mdblog.Blog) postCheck {
	pc := postCheck{Slug: e.Slug, Path: e.Path, Shadowed: e.Shadowed}

	doc, err := source.ReadFile(e.Path)
	if err != nil {
		pc.Problems = []string{err.Error()}
		return pc
	}
	if _, err := blog.Post(ctx, e.Slug); err != nil {
		pc.Problems = []string{fmt.Sprintf("render failed: %v", err)}
		return pc
	}
	pc.OK = true

	if doc.Meta.String("title") == "" {
		pc.Problems = append(pc.Problems, "missing title")
	}
	date := doc.Meta.String("date")
	switch {
	case date == "":
		pc.Problems = append(pc.Problems, "missing date, post sorts last")
	default:
		if _, ok := dateutil.ParsePostDate(date); !ok {
			pc.Problems = append(pc.Problems, fmt.Sprintf("date %q is not YYYY-MM-DD, ordering may be wrong", date))
		}
	}
	return pc
}

// printCheckResult outputs human-readable check results.
func printCheckResult(w io.Writer, r *checkResult) {
	fmt.Fprintln(w, "mdblog check")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	fmt.Fprintf(w, "  Posts dir:  %s", r.Config.PostsDir)
	if !r.Config.DirExists {
		fmt.Fprint(w, " (missing)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Workers:    %d\n", r.Config.Workers)
	fmt.Fprintf(w, "  Highlight:  %s", r.Config.Highlight)
	if r.Config.ChromaStyle != "" {
		fmt.Fprintf(w, " (%s)", r.Config.ChromaStyle)
	}
	fmt.Fprintln(w)
	for _, a := range r.Config.Assets {
		fmt.Fprintf(w, "  Asset:      %s (%s)\n", a.File, a.Origin)
	}
	fmt.Fprintf(w, "  Languages:  %s\n", strings.Join(r.Config.Languages, ", "))
	fmt.Fprintln(w)

	if len(r.Posts) > 0 {
		fmt.Fprintln(w, "Posts")
		for _, p := range r.Posts {
			mark := "ok"
			if !p.OK {
				mark = "FAIL"
			}
			fmt.Fprintf(w, "  [%s] %s\n", mark, p.Slug)
		}
		fmt.Fprintln(w)
	}

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "[WARN] %s\n", warn)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "[ERROR] %s\n", e)
	}
	if len(r.Warnings) > 0 || len(r.Errors) > 0 {
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: READY")
	case "warnings":
		fmt.Fprintln(w, "Status: READY (with warnings)")
	default:
		fmt.Fprintln(w, "Status: ERRORS")
	}
}
