package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alnah/go-mdblog"
	"github.com/alnah/go-mdblog/internal/config"
)

// loadSettings resolves the effective configuration for a command.
//
// Config file lookup: --config, then MDBLOG_CONFIG, then an implicit
// "mdblog" config name which may be absent.
// Value priority: CLI flags > env vars > config file > defaults.
func loadSettings(common *commonFlags, blog *blogFlags) (*config.Config, error) {
	env := loadEnvConfig()

	name := common.config
	explicit := true
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		name = config.DefaultName
		explicit = false
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if explicit || !errors.Is(err, config.ErrConfigNotFound) {
			return nil, err
		}
		cfg = config.DefaultConfig()
	}

	applyEnvConfig(env, cfg)
	mergeFlags(blog, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags applies non-zero CLI flags over the config.
func mergeFlags(f *blogFlags, cfg *config.Config) {
	if f == nil {
		return
	}
	if f.postsDir != "" {
		cfg.Posts.Dir = f.postsDir
	}
	if f.workers != 0 {
		cfg.Posts.Workers = f.workers
	}
	if f.skipInvalid {
		cfg.Posts.SkipInvalid = true
	}
	if f.chroma != "" {
		cfg.Highlight.Fallback = "chroma"
		cfg.Highlight.ChromaStyle = f.chroma
	}
}

// newLogger returns a text logger on w. Warnings by default, debug with
// --verbose, errors only with --quiet.
func newLogger(w io.Writer, common *commonFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case common.quiet:
		level = slog.LevelError
	case common.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// blogOptions translates a config into facade options.
func blogOptions(cfg *config.Config, logger *slog.Logger) []mdblog.Option {
	opts := []mdblog.Option{
		mdblog.WithLogger(logger),
		mdblog.WithSkipInvalid(cfg.Posts.SkipInvalid),
		mdblog.WithWorkers(cfg.Posts.Workers),
		mdblog.WithHeadingFallback(cfg.Headings.Fallback),
		mdblog.WithTypographer(cfg.Markdown.Typographer),
		mdblog.WithHardWraps(cfg.Markdown.HardWraps),
		mdblog.WithDefaults(mdblog.Defaults{
			Title:         cfg.Defaults.Title,
			ReadTime:      cfg.Defaults.ReadTime,
			FeaturedImage: cfg.Defaults.FeaturedImage,
			Author: mdblog.Author{
				Name:  cfg.Defaults.Author.Name,
				Image: cfg.Defaults.Author.Image,
				Bio:   cfg.Defaults.Author.Bio,
			},
		}),
	}
	if cfg.Posts.Dir != "" {
		opts = append(opts, mdblog.WithPostsDir(cfg.Posts.Dir))
	}
	if cfg.ChromaEnabled() {
		opts = append(opts, mdblog.WithChromaFallback(cfg.Highlight.ChromaStyle))
	}
	return opts
}

// buildBlog creates the facade for a command from its flags.
func buildBlog(common *commonFlags, blog *blogFlags, env *Environment) (*mdblog.Blog, *config.Config, error) {
	cfg, err := loadSettings(common, blog)
	if err != nil {
		return nil, nil, err
	}
	b, err := mdblog.NewBlog(blogOptions(cfg, newLogger(env.Stderr, common))...)
	if err != nil {
		return nil, nil, err
	}
	return b, cfg, nil
}

// requireArgs checks the positional argument count.
func requireArgs(cmd string, args []string, n int, what string) error {
	if len(args) != n {
		return fmt.Errorf("%w: mdblog %s %s", ErrUsage, cmd, strings.TrimSpace(what))
	}
	return nil
}
