package yamlutil_test

// Notes:
// - Size limit tests cannot use t.Parallel() because they modify the
//   package-level MaxConfigSize and MaxFrontMatterSize variables.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-mdblog/internal/yamlutil"
)

type siteConfig struct {
	Posts struct {
		Dir     string `yaml:"dir"`
		Workers int    `yaml:"workers"`
	} `yaml:"posts"`
	Title string `yaml:"title"`
}

// ---------------------------------------------------------------------------
// TestDecodeConfig - Strict decoding
// ---------------------------------------------------------------------------

func TestDecodeConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "known fields", data: "title: Blog\nposts:\n  dir: content\n  workers: 2\n"},
		{name: "unknown field", data: "title: Blog\nsubtitle: nope\n", wantErr: yamlutil.ErrSyntax},
		{name: "unknown nested field", data: "posts:\n  folder: x\n", wantErr: yamlutil.ErrSyntax},
		{name: "bad syntax", data: "posts: [unclosed\n", wantErr: yamlutil.ErrSyntax},
		{name: "empty", data: "", wantErr: yamlutil.ErrEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var cfg siteConfig
			err := yamlutil.DecodeConfig([]byte(tt.data), &cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeConfig() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeConfig() unexpected error: %v", err)
			}
			if cfg.Title != "Blog" || cfg.Posts.Dir != "content" || cfg.Posts.Workers != 2 {
				t.Errorf("cfg = %+v", cfg)
			}
		})
	}

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()

		if err := yamlutil.DecodeConfig([]byte("title: x"), nil); !errors.Is(err, yamlutil.ErrNilDestination) {
			t.Errorf("DecodeConfig(nil) error = %v, want ErrNilDestination", err)
		}
	})

	t.Run("syntax error carries position", func(t *testing.T) {
		t.Parallel()

		var cfg siteConfig
		err := yamlutil.DecodeConfig([]byte("title: ok\nposts: [\n"), &cfg)
		if err == nil || !strings.Contains(err.Error(), "[") {
			t.Errorf("error = %v, want goccy position prefix", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestDecodeFrontMatter - Lenient decoding into a generic record
// ---------------------------------------------------------------------------

func TestDecodeFrontMatter(t *testing.T) {
	t.Parallel()

	t.Run("generic record", func(t *testing.T) {
		t.Parallel()

		meta := map[string]any{}
		data := "title: 日本語\ntags: [go, web]\nauthor:\n  name: Jane\nextra: kept\n"
		if err := yamlutil.DecodeFrontMatter([]byte(data), &meta); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if meta["title"] != "日本語" || meta["extra"] != "kept" {
			t.Errorf("meta = %v", meta)
		}
		if _, ok := meta["author"].(map[string]any); !ok {
			t.Errorf("author = %T, want map[string]any", meta["author"])
		}
		if tags, ok := meta["tags"].([]any); !ok || len(tags) != 2 {
			t.Errorf("tags = %#v, want two entries", meta["tags"])
		}
	})

	t.Run("empty block is not an error", func(t *testing.T) {
		t.Parallel()

		meta := map[string]any{}
		if err := yamlutil.DecodeFrontMatter(nil, &meta); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(meta) != 0 {
			t.Errorf("meta = %v, want empty", meta)
		}
	})

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()

		err := yamlutil.DecodeFrontMatter([]byte("title: x"), nil)
		if !errors.Is(err, yamlutil.ErrNilDestination) {
			t.Errorf("error = %v, want ErrNilDestination", err)
		}
	})

	t.Run("malformed block", func(t *testing.T) {
		t.Parallel()

		meta := map[string]any{}
		err := yamlutil.DecodeFrontMatter([]byte("title: [unclosed"), &meta)
		if !errors.Is(err, yamlutil.ErrSyntax) {
			t.Errorf("error = %v, want ErrSyntax", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestSizeLimits - Per-document limits
// ---------------------------------------------------------------------------

func TestSizeLimits(t *testing.T) {
	origConfig, origFront := yamlutil.MaxConfigSize, yamlutil.MaxFrontMatterSize
	t.Cleanup(func() {
		yamlutil.MaxConfigSize = origConfig
		yamlutil.MaxFrontMatterSize = origFront
	})

	yamlutil.MaxConfigSize = 10
	yamlutil.MaxFrontMatterSize = 10
	data := []byte("title: longer than ten")

	var cfg siteConfig
	if err := yamlutil.DecodeConfig(data, &cfg); !errors.Is(err, yamlutil.ErrTooLarge) {
		t.Errorf("DecodeConfig() error = %v, want ErrTooLarge", err)
	}
	meta := map[string]any{}
	if err := yamlutil.DecodeFrontMatter(data, &meta); !errors.Is(err, yamlutil.ErrTooLarge) {
		t.Errorf("DecodeFrontMatter() error = %v, want ErrTooLarge", err)
	}
}
