// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"net"
	"path/filepath"

	"github.com/alnah/go-mdblog/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForPostNotFound returns a hint for unknown slugs.
func ForPostNotFound() string {
	return format("run 'mdblog slugs' to list available posts")
}

// ForListPosts returns a hint for listings that fail on one bad file.
func ForListPosts() string {
	return format("run 'mdblog check' to find the broken file, or pass --skip-invalid")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the user config directory.
func ForConfigNotFound(userConfigDir string) string {
	hint := "use --config /path/to/file.yaml"
	if userConfigDir != "" {
		hint += " or create " + filepath.Join(userConfigDir, "go-mdblog", "mdblog.yaml")
	}
	return format(hint)
}

// ForAssetPath returns a hint for an unusable assets.basePath.
func ForAssetPath() string {
	return format("assets.basePath must be a directory holding styles/ and scripts/")
}

// ForListen returns hints for serve listen failures.
func ForListen() string {
	return format("pick another address with --addr or MDBLOG_ADDR")
}

// ForServeAddr returns a hint when the server listens on loopback inside a
// container, where it cannot be reached from the host.
func ForServeAddr(addr string) string {
	if !IsInContainer() {
		return ""
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return ""
	}
	if ip := net.ParseIP(host); host == "localhost" || (ip != nil && ip.IsLoopback()) {
		return format("inside a container, listen on 0.0.0.0 to reach the server from the host")
	}
	return ""
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
