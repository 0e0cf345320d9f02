// Package gallery is a directory-backed photo album. Each asset is a copy of a
// rendered file plus an entry in album.yaml.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"passgrid/pkg/imageref"
)

const manifestName = "album.yaml"

var ErrNotLocal = errors.New("gallery assets must come from a local file")

// Asset is one saved photo.
type Asset struct {
	ID       string    `yaml:"id"`
	Filename string    `yaml:"filename"`
	Created  time.Time `yaml:"created"`
	Source   string    `yaml:"source,omitempty"`
}

type manifest struct {
	Assets []Asset `yaml:"assets"`
}

// Album stores assets under one directory.
type Album struct {
	dir string
	now func() time.Time

	mu sync.Mutex
}

// Open creates dir if needed and returns an album rooted there.
func Open(dir string) (*Album, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating gallery dir: %w", err)
	}
	return &Album{dir: dir, now: time.Now}, nil
}

// Dir returns the album root.
func (a *Album) Dir() string { return a.dir }

// Path returns the file path of asset.
func (a *Album) Path(asset Asset) string {
	return filepath.Join(a.dir, asset.Filename)
}

// CreateAsset copies the file behind ref into the album as a new asset.
func (a *Album) CreateAsset(ctx context.Context, ref imageref.Ref) (Asset, error) {
	src, ok := ref.LocalPath()
	if !ok {
		return Asset{}, fmt.Errorf("%w: %s", ErrNotLocal, ref)
	}
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	m, err := a.readManifest()
	if err != nil {
		return Asset{}, err
	}

	id := uuid.NewString()
	ext := ref.Ext()
	if ext == "" {
		ext = ".jpg"
	}
	asset := Asset{
		ID:       id,
		Filename: id + ext,
		Created:  a.now().UTC().Truncate(time.Second),
		Source:   filepath.Base(src),
	}

	if err := copyFile(src, a.Path(asset)); err != nil {
		return Asset{}, err
	}

	m.Assets = append(m.Assets, asset)
	if err := a.writeManifest(m); err != nil {
		os.Remove(a.Path(asset))
		return Asset{}, err
	}
	return asset, nil
}

// Assets lists assets oldest first.
func (a *Album) Assets() ([]Asset, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	m, err := a.readManifest()
	if err != nil {
		return nil, err
	}
	return m.Assets, nil
}

func (a *Album) readManifest() (manifest, error) {
	var m manifest
	data, err := os.ReadFile(filepath.Join(a.dir, manifestName))
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return m, fmt.Errorf("reading manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing manifest: %w", err)
	}
	return m, nil
}

func (a *Album) writeManifest(m manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	tmp := filepath.Join(a.dir, manifestName+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(a.dir, manifestName)); err != nil {
		return fmt.Errorf("replacing manifest: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	return out.Close()
}
