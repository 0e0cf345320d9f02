// Package imageref defines the opaque image locator handed between screens.
package imageref

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Ref locates an image: a local path, a file:// URI, an http(s) URL or a data: URI.
// The value is not checked for existence or format.
type Ref string

// Placeholder is the fallback portrait drawn when no image has been chosen.
const Placeholder Ref = "passgrid:placeholder"

// Kind classifies a Ref by how it is loaded.
type Kind int

const (
	KindEmpty Kind = iota
	KindPath
	KindFileURI
	KindNetwork
	KindData
	KindPlaceholder
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindPath:
		return "path"
	case KindFileURI:
		return "file-uri"
	case KindNetwork:
		return "network"
	case KindData:
		return "data"
	case KindPlaceholder:
		return "placeholder"
	}
	return "unknown"
}

// FromPath builds a Ref for a local file.
func FromPath(path string) Ref {
	return Ref(path)
}

// IsZero reports whether the reference is empty or only whitespace.
func (r Ref) IsZero() bool {
	return strings.TrimSpace(string(r)) == ""
}

func (r Ref) String() string {
	return string(r)
}

// Kind returns the loading class of the reference.
func (r Ref) Kind() Kind {
	s := string(r)
	switch {
	case r.IsZero():
		return KindEmpty
	case r == Placeholder:
		return KindPlaceholder
	case strings.HasPrefix(s, "data:"):
		return KindData
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		return KindNetwork
	case strings.HasPrefix(s, "file://"):
		return KindFileURI
	}
	return KindPath
}

// LocalPath returns the filesystem path for path and file:// references.
func (r Ref) LocalPath() (string, bool) {
	switch r.Kind() {
	case KindPath:
		return filepath.Clean(string(r)), true
	case KindFileURI:
		u, err := url.Parse(string(r))
		if err != nil || u.Path == "" {
			return "", false
		}
		return filepath.FromSlash(u.Path), true
	}
	return "", false
}

// Ext returns the lower-cased file extension of a local reference, or "".
func (r Ref) Ext() string {
	p, ok := r.LocalPath()
	if !ok {
		return ""
	}
	return strings.ToLower(filepath.Ext(p))
}
