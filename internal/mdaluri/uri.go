// Package mdaluri parses and formats the driver:"path":mesh URI shape
// described in spec.md §4.9 / §6.
package mdaluri

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mdal-go/mdal/internal/mdalerr"
)

// ParsedURI is the tri-part decomposition of a mesh URI.
type ParsedURI struct {
	// Driver is the explicit driver name, or "" if the caller left it
	// to be sniffed.
	Driver string
	// Path is the filesystem (or other) path, always unquoted here.
	Path string
	// MeshName is the mesh name suffix, or "" if a numeric index (or
	// nothing) was given instead.
	MeshName string
	// MeshID is the mesh index suffix; it defaults to 0 when no index
	// was given, matching spec.md §8 scenario S6's tuples.
	MeshID int
}

// Parse decomposes uri into its driver/path/mesh parts. Only syntax is
// checked here; whether Driver names a registered driver is the driver
// manager's concern (spec.md §4.8).
func Parse(uri string) (ParsedURI, error) {
	s := uri
	driver := ""

	if idx := strings.Index(s, ":\""); idx >= 0 {
		candidate := s[:idx]
		if isDriverToken(candidate) {
			driver = candidate
			s = s[idx+1:]
		}
	}

	if strings.HasPrefix(s, "\"") {
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return ParsedURI{}, mdalerr.New(mdalerr.StatusInvalidData, "unterminated quoted path in URI: "+uri)
		}
		path := s[1 : 1+end]
		rest := s[1+end+1:]
		name, id := "", 0
		if strings.HasPrefix(rest, ":") {
			name, id = parseMeshToken(rest[1:])
		} else if rest != "" {
			return ParsedURI{}, mdalerr.New(mdalerr.StatusInvalidData, "unexpected trailing characters in URI: "+uri)
		}
		return ParsedURI{Driver: driver, Path: path, MeshName: name, MeshID: id}, nil
	}

	// An unquoted path may not contain ':', so a "<driver>:" prefix
	// followed by anything but a quote is rejected here.
	if idx := strings.IndexByte(s, ':'); idx >= 0 && isDriverToken(s[:idx]) {
		return ParsedURI{}, mdalerr.New(mdalerr.StatusInvalidData, "driver prefix requires a quoted path: "+uri)
	}
	return ParsedURI{Path: s}, nil
}

// isDriverToken reports whether candidate is a syntactically valid
// driver-name token: non-empty, and containing neither quotes nor
// whitespace (a real path or URL fragment would not look like this).
func isDriverToken(candidate string) bool {
	if candidate == "" {
		return false
	}
	return !strings.ContainsAny(candidate, "\" \t\n:")
}

// parseMeshToken interprets the string after the final ':' as a
// non-negative integer index, or failing that, as a mesh name.
func parseMeshToken(token string) (name string, id int) {
	if n, err := strconv.Atoi(token); err == nil && n >= 0 {
		return "", n
	}
	return token, 0
}

// Format reconstructs a URI string from its parts, matching the input
// up to quoting of the path (property P5): a driver or mesh clause
// forces the path to be quoted; a bare path with neither stays bare.
func Format(p ParsedURI) string {
	meshSuffix := ""
	switch {
	case p.MeshName != "":
		meshSuffix = ":" + p.MeshName
	case p.MeshID != 0:
		meshSuffix = fmt.Sprintf(":%d", p.MeshID)
	}

	if p.Driver != "" {
		return fmt.Sprintf("%s:%q%s", p.Driver, p.Path, meshSuffix)
	}
	if meshSuffix != "" {
		return fmt.Sprintf("%q%s", p.Path, meshSuffix)
	}
	return p.Path
}
