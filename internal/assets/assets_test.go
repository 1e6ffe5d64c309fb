package assets

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-mdblog/internal/highlight"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "code", false},
		{"hyphenated name", "copy-code", false},
		{"empty", "", true},
		{"forward slash", "../secret", true},
		{"backslash", "..\\secret", true},
		{"dot extension", "code.css", true},
		{"null byte", "code\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("ValidateAssetName(%q) = %v, want ErrInvalidAssetName", tt.input, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}

func TestCodeStyle_CoversHighlightClasses(t *testing.T) {
	t.Parallel()

	a, err := Load(Style, CodeStyleName)
	if err != nil {
		t.Fatalf("Load(Style, %q) error = %v", CodeStyleName, err)
	}
	css := a.Content

	for _, class := range highlight.Classes {
		if !strings.Contains(css, "."+class+" ") {
			t.Errorf("code.css has no rule for highlight class %q", class)
		}
	}
	for _, class := range []string{".code-block-wrapper", ".code-block-header", ".code-block-language", ".copy-code-btn", "code.inline-code"} {
		if !strings.Contains(css, class) {
			t.Errorf("code.css has no rule for %q", class)
		}
	}
}

func TestCopyScript_Contract(t *testing.T) {
	t.Parallel()

	a, err := Load(Script, CopyScriptName)
	if err != nil {
		t.Fatalf("Load(Script, %q) error = %v", CopyScriptName, err)
	}
	js := a.Content

	for _, want := range []string{".copy-code-btn", "data-code", "2000"} {
		if !strings.Contains(js, want) {
			t.Errorf("copy-code.js missing %q", want)
		}
	}
}

func TestChromaCSS(t *testing.T) {
	t.Parallel()

	css, err := ChromaCSS("")
	if err != nil {
		t.Fatalf("ChromaCSS() error = %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("ChromaCSS() missing .chroma selector")
	}
}
