package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Asset is a loaded stylesheet or script.
type Asset struct {
	Kind    Kind
	Name    string
	Content string
	Origin  string // "embedded" or the override directory
}

// Loader loads assets by kind and name.
type Loader interface {
	Load(k Kind, name string) (Asset, error)
}

// OriginEmbedded marks assets compiled into the binary.
const OriginEmbedded = "embedded"

//go:embed styles/*.css scripts/*.js
var builtin embed.FS

// treeLoader reads assets from a styles/ + scripts/ tree.
type treeLoader struct {
	fsys   fs.FS
	origin string
}

func (t treeLoader) Load(k Kind, name string) (Asset, error) {
	if err := ValidateAssetName(name); err != nil {
		return Asset{}, err
	}
	data, err := fs.ReadFile(t.fsys, k.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Asset{}, fmt.Errorf("%w: %s %q", ErrNotFound, k, name)
		}
		return Asset{}, fmt.Errorf("%w: %s: %v", ErrAssetRead, k.FileName(name), err)
	}
	return Asset{Kind: k, Name: name, Content: string(data), Origin: t.origin}, nil
}

// EmbeddedLoader loads the built-in assets.
type EmbeddedLoader struct {
	treeLoader
}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{treeLoader{fsys: builtin, origin: OriginEmbedded}}
}

// DirLoader loads assets from an override directory laid out as
// {dir}/styles/{name}.css and {dir}/scripts/{name}.js. Reads go through an
// os.Root, so neither a name nor a symlink can reach outside dir.
type DirLoader struct {
	treeLoader
	root *os.Root
}

// OpenDir opens an override directory. Returns ErrInvalidBasePath if dir is
// not a readable directory.
func OpenDir(dir string) (*DirLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}

	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return &DirLoader{treeLoader: treeLoader{fsys: root.FS(), origin: abs}, root: root}, nil
}

// Close releases the directory handle.
func (d *DirLoader) Close() error {
	return d.root.Close()
}

var (
	_ Loader = (*EmbeddedLoader)(nil)
	_ Loader = (*DirLoader)(nil)
)
