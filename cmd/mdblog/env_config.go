package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-mdblog/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides deploy-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath        string // MDBLOG_CONFIG: config file name or path
	PostsDir          string // MDBLOG_POSTS_DIR: content directory
	Workers           int    // MDBLOG_WORKERS: concurrent renders
	SkipInvalid       bool   // MDBLOG_SKIP_INVALID: skip unreadable posts
	Addr              string // MDBLOG_ADDR: serve listen address
	AuthorName        string // MDBLOG_AUTHOR_NAME: default author name
	HighlightFallback string // MDBLOG_HIGHLIGHT_FALLBACK: none, chroma
}

// knownEnvVars lists valid MDBLOG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDBLOG_CONFIG":             true,
	"MDBLOG_POSTS_DIR":          true,
	"MDBLOG_WORKERS":            true,
	"MDBLOG_SKIP_INVALID":       true,
	"MDBLOG_ADDR":               true,
	"MDBLOG_AUTHOR_NAME":        true,
	"MDBLOG_HIGHLIGHT_FALLBACK": true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable numbers and booleans are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:        os.Getenv("MDBLOG_CONFIG"),
		PostsDir:          os.Getenv("MDBLOG_POSTS_DIR"),
		Addr:              os.Getenv("MDBLOG_ADDR"),
		AuthorName:        os.Getenv("MDBLOG_AUTHOR_NAME"),
		HighlightFallback: os.Getenv("MDBLOG_HIGHLIGHT_FALLBACK"),
	}

	if workers := os.Getenv("MDBLOG_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if skip := os.Getenv("MDBLOG_SKIP_INVALID"); skip != "" {
		if b, err := strconv.ParseBool(skip); err == nil {
			cfg.SkipInvalid = b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDBLOG_* variables.
// Helps catch typos like MDBLOG_POST_DIR instead of MDBLOG_POSTS_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDBLOG_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.PostsDir != "" && cfg.Posts.Dir == "" {
		cfg.Posts.Dir = env.PostsDir
	}
	if env.Workers > 0 && cfg.Posts.Workers == 0 {
		cfg.Posts.Workers = env.Workers
	}
	if env.SkipInvalid && !cfg.Posts.SkipInvalid {
		cfg.Posts.SkipInvalid = true
	}
	if env.Addr != "" && cfg.Server.Addr == "" {
		cfg.Server.Addr = env.Addr
	}
	if env.AuthorName != "" && cfg.Defaults.Author.Name == "" {
		cfg.Defaults.Author.Name = env.AuthorName
	}
	if env.HighlightFallback != "" && (cfg.Highlight.Fallback == "" || cfg.Highlight.Fallback == "none") {
		cfg.Highlight.Fallback = env.HighlightFallback
	}
}
