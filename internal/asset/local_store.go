package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type localStore struct {
	dir  string
	opts Options
}

// NewLocalStore keeps images as files under dir, which is also served
// read-only at /public.
func NewLocalStore(dir string, opts Options) (Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve asset dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}
	return &localStore{dir: abs, opts: opts}, nil
}

func (s *localStore) Save(ctx context.Context, upload Upload) (string, error) {
	p, err := prepare(upload, s.opts)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.WriteFile(s.Resolve(p.key), p.data, 0o644); err != nil {
		return "", fmt.Errorf("write asset: %w", err)
	}
	return p.key, nil
}

// Resolve only keeps the base name so stored keys (including legacy
// "/public/assets/<file>" values) can never escape dir.
func (s *localStore) Resolve(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	base := filepath.Base(filepath.FromSlash(key))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return filepath.Join(s.dir, base)
}

func (s *localStore) Open(_ context.Context, key string) (io.ReadCloser, string, error) {
	path := s.Resolve(key)
	if path == "" {
		return nil, "", ErrAssetNotFound
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", ErrAssetNotFound
		}
		return nil, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", ErrAssetNotFound
		}
		return nil, "", err
	}
	return f, mtype.String(), nil
}

func (s *localStore) Release(_ context.Context, key string) error {
	path := s.Resolve(key)
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
