package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"passgrid/pkg/imageref"
)

// ImageFetcher retrieves the raw bytes of a network image.
type ImageFetcher func(ctx context.Context, uri string) ([]byte, error)

var (
	ErrEmptyRef    = errors.New("empty image reference")
	ErrNoFetcher   = errors.New("no fetcher configured for network image")
	ErrPlaceholder = errors.New("placeholder has no pixels")
)

// Loader decodes image references and caches the results.
type Loader struct {
	fetch ImageFetcher

	mu    sync.RWMutex
	cache map[imageref.Ref]image.Image
}

// NewLoader creates a Loader. fetch may be nil when network references are not used.
func NewLoader(fetch ImageFetcher) *Loader {
	return &Loader{
		fetch: fetch,
		cache: make(map[imageref.Ref]image.Image),
	}
}

// Load decodes ref, honouring EXIF orientation for JPEGs.
func (l *Loader) Load(ctx context.Context, ref imageref.Ref) (image.Image, error) {
	// Check cache first
	l.mu.RLock()
	if img, ok := l.cache[ref]; ok {
		l.mu.RUnlock()
		return img, nil
	}
	l.mu.RUnlock()

	img, err := l.decode(ctx, ref)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[ref] = img
	l.mu.Unlock()

	return img, nil
}

func (l *Loader) decode(ctx context.Context, ref imageref.Ref) (image.Image, error) {
	switch ref.Kind() {
	case imageref.KindEmpty:
		return nil, ErrEmptyRef
	case imageref.KindPlaceholder:
		return nil, ErrPlaceholder
	case imageref.KindData:
		return LoadImageFromDataURI(string(ref))
	case imageref.KindNetwork:
		if l.fetch == nil {
			return nil, ErrNoFetcher
		}
		body, err := l.fetch(ctx, string(ref))
		if err != nil {
			return nil, err
		}
		img, err := imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", ref, err)
		}
		return img, nil
	}

	path, ok := ref.LocalPath()
	if !ok {
		return nil, fmt.Errorf("unsupported image reference: %s", ref)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return img, nil
}

// IsDataURI reports whether s is a data: URI.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// LoadImageFromDataURI decodes a base64 or percent-encoded data URI.
func LoadImageFromDataURI(uri string) (image.Image, error) {
	if !IsDataURI(uri) {
		return nil, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("data URI has no payload")
	}

	var raw []byte
	if strings.HasSuffix(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 payload: %w", err)
		}
		raw = b
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("unescaping payload: %w", err)
		}
		raw = []byte(s)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding data URI image: %w", err)
	}
	return img, nil
}
