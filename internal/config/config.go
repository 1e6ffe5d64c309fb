package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdblog/internal/fileutil"
	"github.com/alnah/go-mdblog/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config name searched when none is given.
const DefaultName = "mdblog"

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxURLLength      = 2048 // Browser limit
	MaxTitleLength    = 200
	MaxReadTimeLength = 50 // "5 min read"
	MaxNameLength     = 100
	MaxBioLength      = 500
	MaxStyleLength    = 50
	MaxAddrLength     = 255
	MaxWorkers        = 64
)

// Config holds all configuration for the blog pipeline and CLI.
type Config struct {
	Posts     PostsConfig     `yaml:"posts"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Headings  HeadingsConfig  `yaml:"headings"`
	Highlight HighlightConfig `yaml:"highlight"`
	Server    ServerConfig    `yaml:"server"`
	Assets    AssetsConfig    `yaml:"assets"`
}

// PostsConfig defines where posts live and how listings are built.
type PostsConfig struct {
	Dir         string `yaml:"dir"`         // Empty = "posts" under the working directory
	SkipInvalid bool   `yaml:"skipInvalid"` // Log and skip unreadable posts instead of failing the listing
	Workers     int    `yaml:"workers"`     // 0 = auto
}

// DefaultsConfig overrides the values used for missing front-matter keys.
type DefaultsConfig struct {
	Title         string       `yaml:"title"`
	ReadTime      string       `yaml:"readTime"`
	FeaturedImage string       `yaml:"featuredImage"`
	Author        AuthorConfig `yaml:"author"`
}

// AuthorConfig holds the fallback author card.
type AuthorConfig struct {
	Name  string `yaml:"name"`
	Image string `yaml:"image"`
	Bio   string `yaml:"bio"`
}

// MarkdownConfig toggles optional goldmark rendering.
type MarkdownConfig struct {
	Typographer bool `yaml:"typographer"` // Smart quotes and dashes
	HardWraps   bool `yaml:"hardWraps"`   // Newline = <br>
}

// HeadingsConfig defines heading id options.
type HeadingsConfig struct {
	Fallback string `yaml:"fallback"` // "random" (default) or "counter"
}

// HighlightConfig defines what happens to languages outside the rule table.
type HighlightConfig struct {
	Fallback    string `yaml:"fallback"`    // "none" (default) or "chroma"
	ChromaStyle string `yaml:"chromaStyle"` // chroma style for the fallback stylesheet
}

// ServerConfig defines the serve command options.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// ChromaEnabled reports whether the chroma fallback is selected.
func (c *Config) ChromaEnabled() bool {
	return strings.EqualFold(strings.TrimSpace(c.Highlight.Fallback), "chroma")
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	// Validate posts fields
	if err := validateFieldLength("posts.dir", c.Posts.Dir, MaxPathLength); err != nil {
		return err
	}
	if c.Posts.Workers < 0 || c.Posts.Workers > MaxWorkers {
		return fmt.Errorf("%w: posts.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Posts.Workers)
	}

	// Validate defaults fields
	if err := validateFieldLength("defaults.title", c.Defaults.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("defaults.readTime", c.Defaults.ReadTime, MaxReadTimeLength); err != nil {
		return err
	}
	if err := validateImage("defaults.featuredImage", c.Defaults.FeaturedImage); err != nil {
		return err
	}
	if err := validateFieldLength("defaults.author.name", c.Defaults.Author.Name, MaxNameLength); err != nil {
		return err
	}
	if err := validateImage("defaults.author.image", c.Defaults.Author.Image); err != nil {
		return err
	}
	if err := validateFieldLength("defaults.author.bio", c.Defaults.Author.Bio, MaxBioLength); err != nil {
		return err
	}

	// Validate enums
	if c.Headings.Fallback != "" {
		switch strings.ToLower(strings.TrimSpace(c.Headings.Fallback)) {
		case "random", "counter":
		default:
			return fmt.Errorf("%w: headings.fallback %q (must be random or counter)", ErrInvalidValue, c.Headings.Fallback)
		}
	}
	if c.Highlight.Fallback != "" {
		switch strings.ToLower(strings.TrimSpace(c.Highlight.Fallback)) {
		case "none", "chroma":
		default:
			return fmt.Errorf("%w: highlight.fallback %q (must be none or chroma)", ErrInvalidValue, c.Highlight.Fallback)
		}
	}
	if err := validateFieldLength("highlight.chromaStyle", c.Highlight.ChromaStyle, MaxStyleLength); err != nil {
		return err
	}

	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateImage accepts empty values, absolute URLs and site-rooted paths.
func validateImage(fieldName, value string) error {
	if err := validateFieldLength(fieldName, value, MaxURLLength); err != nil {
		return err
	}
	if value == "" || fileutil.IsURL(value) || strings.HasPrefix(value, "/") {
		return nil
	}
	return fmt.Errorf("%w: %s %q (must be an http(s) URL or start with /)", ErrInvalidValue, fieldName, value)
}

// DefaultConfig returns a configuration that leaves every choice to the
// library defaults.
func DefaultConfig() *Config {
	return &Config{
		Posts:     PostsConfig{Dir: "", SkipInvalid: false, Workers: 0},
		Headings:  HeadingsConfig{Fallback: "random"},
		Highlight: HighlightConfig{Fallback: "none"},
		Server:    ServerConfig{Addr: ""},
		Assets:    AssetsConfig{BasePath: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeConfig(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-mdblog/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-mdblog", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
