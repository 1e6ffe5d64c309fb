// Package yamlutil decodes the two YAML documents go-mdblog reads: the config
// file and post front matter.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Size limits per document kind. Front matter is a handful of fields, so a
// block larger than MaxFrontMatterSize is almost certainly a missing
// closing delimiter swallowing the post body.
var (
	MaxConfigSize      = 1 << 20
	MaxFrontMatterSize = 64 << 10
)

var (
	ErrEmpty          = errors.New("yamlutil: empty document")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrTooLarge       = errors.New("yamlutil: document exceeds maximum size")
	ErrSyntax         = errors.New("yamlutil: invalid YAML")
)

// DecodeConfig decodes a config file into v, rejecting unknown fields.
func DecodeConfig(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmpty
	}
	return decode(data, v, MaxConfigSize, yaml.Strict())
}

// DecodeFrontMatter decodes a front-matter block into v. An empty block
// (`---` immediately followed by `---`) is valid and leaves v untouched.
// It matches frontmatter.UnmarshalFunc.
func DecodeFrontMatter(data []byte, v any) error {
	if v == nil {
		return ErrNilDestination
	}
	if len(data) == 0 {
		return nil
	}
	return decode(data, v, MaxFrontMatterSize)
}

func decode(data []byte, v any, limit int, opts ...yaml.DecodeOption) error {
	if v == nil {
		return ErrNilDestination
	}
	if len(data) > limit {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), limit)
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		// FormatError keeps goccy's line:column prefix without the source dump.
		return fmt.Errorf("%w: %s", ErrSyntax, yaml.FormatError(err, false, false))
	}
	return nil
}
