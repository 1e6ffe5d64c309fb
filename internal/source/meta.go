package source

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdblog/internal/dateutil"
)

// Meta is the raw front-matter record of a source file.
// Accessors are tolerant: a value of the wrong type reads as the zero value
// rather than failing the whole post.
type Meta map[string]any

// String returns the value for key as a string. Dates, numbers and booleans
// are formatted; maps and sequences read as "".
func (m Meta) String(key string) string {
	return scalarString(m[key])
}

// Strings returns the value for key as a string slice. A single scalar is
// treated as a one-element sequence. The result is never nil.
func (m Meta) Strings(key string) []string {
	switch v := m[key].(type) {
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := scalarString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := scalarString(v); s != "" {
			return []string{s}
		}
		return []string{}
	}
}

// Bool returns the value for key as a boolean. Strings are parsed with
// strconv.ParseBool; anything else reads as false.
func (m Meta) Bool(key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	default:
		return false
	}
}

// Map returns the nested record for key, or nil when absent or not a map.
func (m Meta) Map(key string) Meta {
	switch v := m[key].(type) {
	case map[string]any:
		return Meta(v)
	case Meta:
		return v
	case map[any]any:
		out := make(Meta, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = val
		}
		return out
	default:
		return nil
	}
}

func scalarString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format(dateutil.PostDateLayout)
		}
		return v.Format(time.RFC3339)
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(v)
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}
