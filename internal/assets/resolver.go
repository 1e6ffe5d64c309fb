package assets

import "errors"

// Resolver serves overrides from a directory first and falls back to the
// embedded assets when the directory lacks the file.
type Resolver struct {
	dir     *DirLoader // nil without an override directory
	builtin *EmbeddedLoader
}

// NewResolver creates a Resolver. An empty dir uses embedded assets only.
func NewResolver(dir string) (*Resolver, error) {
	r := &Resolver{builtin: NewEmbeddedLoader()}
	if dir == "" {
		return r, nil
	}
	d, err := OpenDir(dir)
	if err != nil {
		return nil, err
	}
	r.dir = d
	return r, nil
}

// Load returns the override when present. Only ErrNotFound falls back:
// invalid names and read failures are reported as-is.
func (r *Resolver) Load(k Kind, name string) (Asset, error) {
	if r.dir != nil {
		a, err := r.dir.Load(k, name)
		if !errors.Is(err, ErrNotFound) {
			return a, err
		}
	}
	return r.builtin.Load(k, name)
}

// HasOverrides reports whether an override directory is configured.
func (r *Resolver) HasOverrides() bool {
	return r.dir != nil
}

// Close releases the override directory, if any.
func (r *Resolver) Close() error {
	if r.dir == nil {
		return nil
	}
	return r.dir.Close()
}

var _ Loader = (*Resolver)(nil)
