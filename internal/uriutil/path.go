// Package uriutil lets commands take documents as file:// URIs, the way
// editors name them, as well as plain paths.
package uriutil

import (
	"net/url"
	"path/filepath"
	"strings"
)

// ToPath returns the file system path named by ref. A file:// URI is
// percent-decoded and converted to OS separators, a /C:/ drive prefix
// loses its leading slash; anything else is returned unchanged.
func ToPath(ref string) string {
	if !strings.HasPrefix(ref, "file:") {
		return ref
	}
	path := strings.TrimPrefix(strings.TrimPrefix(ref, "file:"), "//")
	if parsed, err := url.Parse(ref); err == nil && parsed.Scheme == "file" {
		path = parsed.Path
		if parsed.Host != "" && parsed.Host != "localhost" {
			path = "//" + parsed.Host + path
		}
	} else if decoded, err := url.PathUnescape(path); err == nil {
		path = decoded
	}
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path)
}
