package asset_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-empledger/internal/asset"
	"go-empledger/internal/config"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newLocal(t *testing.T, opts asset.Options) (asset.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := asset.NewLocalStore(dir, opts)
	assert.NoError(t, err)
	return store, dir
}

func TestLocalStore_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("stores png under a generated key", func(t *testing.T) {
		store, dir := newLocal(t, asset.Options{MaxBytes: 1 << 20, MaxDimension: 64})

		key, err := store.Save(ctx, asset.Upload{
			Filename: "avatar.png",
			Content:  bytes.NewReader(pngBytes(t, 8, 8)),
		})

		assert.NoError(t, err)
		assert.True(t, strings.HasSuffix(key, ".png"))
		assert.NotEqual(t, "avatar.png", key)
		_, statErr := os.Stat(filepath.Join(dir, key))
		assert.NoError(t, statErr)
	})

	t.Run("downscales oversized images", func(t *testing.T) {
		store, _ := newLocal(t, asset.Options{MaxBytes: 1 << 20, MaxDimension: 10})

		key, err := store.Save(ctx, asset.Upload{Content: bytes.NewReader(pngBytes(t, 40, 20))})
		assert.NoError(t, err)

		img, err := imaging.Open(store.Resolve(key))
		assert.NoError(t, err)
		assert.Equal(t, 10, img.Bounds().Dx())
		assert.Equal(t, 5, img.Bounds().Dy())
	})

	t.Run("rejects non image content", func(t *testing.T) {
		store, dir := newLocal(t, asset.Options{MaxBytes: 1 << 20})

		_, err := store.Save(ctx, asset.Upload{
			Filename: "notes.png",
			Content:  strings.NewReader("just some text pretending to be a picture"),
		})

		assert.ErrorIs(t, err, asset.ErrUnsupportedImage)
		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries)
	})

	t.Run("rejects uploads over the byte limit", func(t *testing.T) {
		store, _ := newLocal(t, asset.Options{MaxBytes: 16})

		_, err := store.Save(ctx, asset.Upload{Content: bytes.NewReader(pngBytes(t, 8, 8))})

		assert.ErrorIs(t, err, asset.ErrImageTooLarge)
	})

	t.Run("rejects missing content", func(t *testing.T) {
		store, _ := newLocal(t, asset.Options{})

		_, err := store.Save(ctx, asset.Upload{Filename: "empty.png"})

		assert.ErrorIs(t, err, asset.ErrUnsupportedImage)
	})
}

func TestLocalStore_Resolve(t *testing.T) {
	store, dir := newLocal(t, asset.Options{})

	assert.Equal(t, "", store.Resolve(""))
	assert.Equal(t, filepath.Join(dir, "a.png"), store.Resolve("a.png"))
	assert.Equal(t, filepath.Join(dir, "a.png"), store.Resolve("/public/assets/a.png"))
	assert.Equal(t, filepath.Join(dir, "passwd"), store.Resolve("../../etc/passwd"))
	assert.Equal(t, store.Resolve("a.png"), store.Resolve("a.png"))
}

func TestLocalStore_OpenAndRelease(t *testing.T) {
	ctx := context.Background()
	store, _ := newLocal(t, asset.Options{MaxBytes: 1 << 20})
	data := pngBytes(t, 4, 4)

	key, err := store.Save(ctx, asset.Upload{Content: bytes.NewReader(data)})
	assert.NoError(t, err)

	rc, contentType, err := store.Open(ctx, key)
	assert.NoError(t, err)
	got, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, data, got)

	assert.NoError(t, store.Release(ctx, key))
	_, _, err = store.Open(ctx, key)
	assert.ErrorIs(t, err, asset.ErrAssetNotFound)
	assert.True(t, asset.IsNotFound(err))

	// releasing twice is fine
	assert.NoError(t, store.Release(ctx, key))
	assert.NoError(t, store.Release(ctx, ""))
}

func TestLocalStore_OpenEmptyKey(t *testing.T) {
	store, _ := newLocal(t, asset.Options{})

	_, _, err := store.Open(context.Background(), "")

	assert.ErrorIs(t, err, asset.ErrAssetNotFound)
}

func TestNewStore(t *testing.T) {
	ctx := context.Background()

	t.Run("local backend by default", func(t *testing.T) {
		store, err := asset.NewStore(ctx, config.AssetOptions{Dir: t.TempDir()})
		assert.NoError(t, err)
		assert.NotNil(t, store)
	})

	t.Run("gcs requires a bucket", func(t *testing.T) {
		_, err := asset.NewStore(ctx, config.AssetOptions{Backend: asset.BackendGCS})
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := asset.NewStore(ctx, config.AssetOptions{Backend: "ftp"})
		assert.Error(t, err)
	})
}
