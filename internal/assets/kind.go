package assets

import (
	"fmt"
	"path"
	"strings"
)

// Kind is the type of a browser asset. It decides the directory, the file
// extension and the Content-Type.
type Kind int

const (
	Style Kind = iota
	Script
)

var kindInfo = [...]struct {
	name        string
	dir         string
	ext         string
	contentType string
}{
	Style:  {"style", "styles", ".css", "text/css; charset=utf-8"},
	Script: {"script", "scripts", ".js", "text/javascript; charset=utf-8"},
}

func (k Kind) String() string { return kindInfo[k].name }

// ContentType returns the HTTP Content-Type for assets of this kind.
func (k Kind) ContentType() string { return kindInfo[k].contentType }

// FileName returns the file name of asset name, e.g. "code.css".
func (k Kind) FileName(name string) string { return name + kindInfo[k].ext }

// path returns the slash-separated path of asset name inside an asset tree.
func (k Kind) path(name string) string {
	return path.Join(kindInfo[k].dir, k.FileName(name))
}

// ParseFileName splits "code.css" into (Style, "code"). ok is false for
// unknown extensions and invalid names.
func ParseFileName(file string) (k Kind, name string, ok bool) {
	for i, info := range kindInfo {
		stem, found := strings.CutSuffix(file, info.ext)
		if found && ValidateAssetName(stem) == nil {
			return Kind(i), stem, true
		}
	}
	return 0, "", false
}

// ValidateAssetName checks that an asset name is a bare file stem.
// Path separators and dots are rejected so a name cannot leave its
// directory or swap its extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
