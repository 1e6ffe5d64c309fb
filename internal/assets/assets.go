package assets

import (
	"strings"

	"github.com/alnah/go-mdblog/internal/highlight"
)

// Built-in asset names.
const (
	// CodeStyleName is the stylesheet for code blocks and highlight classes.
	CodeStyleName = "code"
	// CopyScriptName is the click handler for copy-code buttons.
	CopyScriptName = "copy-code"
)

var defaultLoader = NewEmbeddedLoader()

// Load loads a built-in asset.
func Load(k Kind, name string) (Asset, error) {
	return defaultLoader.Load(k, name)
}

// ChromaCSS renders the class stylesheet for a chroma style, for sites that
// enable the chroma fallback highlighter.
func ChromaCSS(style string) (string, error) {
	var b strings.Builder
	if err := highlight.WriteCSS(&b, style); err != nil {
		return "", err
	}
	return b.String(), nil
}
