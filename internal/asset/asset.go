package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"

	"go-empledger/internal/shared/apperror"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrAssetNotFound = apperror.New(
		apperror.CodeNotFound,
		"Image not found",
		http.StatusNotFound,
	)
	ErrUnsupportedImage = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "Unsupported image type",
		HTTPStatus: http.StatusBadRequest,
		Details:    []apperror.FieldError{{Field: "image", Message: "Image must be a JPEG, PNG or GIF file"}},
	}
	ErrImageTooLarge = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "Image is too large",
		HTTPStatus: http.StatusBadRequest,
		Details:    []apperror.FieldError{{Field: "image", Message: "Image exceeds the upload size limit"}},
	}
)

var allowedTypes = map[string]imaging.Format{
	"image/jpeg": imaging.JPEG,
	"image/png":  imaging.PNG,
	"image/gif":  imaging.GIF,
}

// Upload is an image received from a client.
type Upload struct {
	Filename string
	Content  io.Reader
}

//go:generate mockgen -source=asset.go -destination=mock/asset_mock.go -package=mock
type Store interface {
	// Save stores the upload and returns the key recorded on the employee.
	Save(ctx context.Context, upload Upload) (string, error)
	// Resolve maps a stored key to its physical location.
	Resolve(key string) string
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
	// Release deletes the asset; a missing asset is not an error.
	Release(ctx context.Context, key string) error
}

type Options struct {
	MaxBytes     int64
	MaxDimension int
}

type prepared struct {
	key         string
	contentType string
	data        []byte
}

// prepare sniffs, validates and, when needed, downsizes an upload.
func prepare(upload Upload, opts Options) (prepared, error) {
	if upload.Content == nil {
		return prepared{}, ErrUnsupportedImage
	}

	reader := upload.Content
	if opts.MaxBytes > 0 {
		reader = io.LimitReader(upload.Content, opts.MaxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return prepared{}, fmt.Errorf("read upload: %w", err)
	}
	if opts.MaxBytes > 0 && int64(len(data)) > opts.MaxBytes {
		return prepared{}, ErrImageTooLarge
	}

	mtype := mimetype.Detect(data)
	format, ok := allowedTypes[mtype.String()]
	if !ok {
		return prepared{}, ErrUnsupportedImage
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return prepared{}, apperror.From(ErrUnsupportedImage, err)
	}

	if needsResize(img, opts.MaxDimension) {
		img = imaging.Fit(img, opts.MaxDimension, opts.MaxDimension, imaging.Lanczos)
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, format); err != nil {
			return prepared{}, fmt.Errorf("encode resized image: %w", err)
		}
		data = buf.Bytes()
	}

	return prepared{
		key:         uuid.NewString() + mtype.Extension(),
		contentType: mtype.String(),
		data:        data,
	}, nil
}

func needsResize(img image.Image, max int) bool {
	if max <= 0 {
		return false
	}
	b := img.Bounds()
	return b.Dx() > max || b.Dy() > max
}

// IsNotFound reports whether err means the asset does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAssetNotFound)
}
