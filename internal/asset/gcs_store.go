package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type gcsStore struct {
	client *storage.Client
	bucket string
	prefix string
	opts   Options
}

// NewGCSStore keeps images as objects in bucket under prefix. Credentials
// come from credentialsJSON when set, otherwise from ADC.
func NewGCSStore(ctx context.Context, bucket, prefix, credentialsJSON string, opts Options) (Store, error) {
	if bucket == "" {
		return nil, errors.New("GCS_BUCKET is required for the gcs asset backend")
	}

	var clientOpts []option.ClientOption
	if strings.TrimSpace(credentialsJSON) != "" {
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &gcsStore{client: client, bucket: bucket, prefix: prefix, opts: opts}, nil
}

func (s *gcsStore) objectName(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	return path.Join(s.prefix, path.Base(key))
}

func (s *gcsStore) Save(ctx context.Context, upload Upload) (string, error) {
	p, err := prepare(upload, s.opts)
	if err != nil {
		return "", err
	}

	w := s.client.Bucket(s.bucket).Object(s.objectName(p.key)).NewWriter(ctx)
	w.ContentType = p.contentType
	if _, err := io.Copy(w, bytes.NewReader(p.data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload asset: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize asset upload: %w", err)
	}
	return p.key, nil
}

func (s *gcsStore) Resolve(key string) string {
	name := s.objectName(key)
	if name == "" {
		return ""
	}
	return "gs://" + s.bucket + "/" + name
}

func (s *gcsStore) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	name := s.objectName(key)
	if name == "" {
		return nil, "", ErrAssetNotFound
	}
	r, err := s.client.Bucket(s.bucket).Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, "", ErrAssetNotFound
		}
		return nil, "", err
	}
	return r, r.Attrs.ContentType, nil
}

func (s *gcsStore) Release(ctx context.Context, key string) error {
	name := s.objectName(key)
	if name == "" {
		return nil
	}
	err := s.client.Bucket(s.bucket).Object(name).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return err
	}
	return nil
}

func (s *gcsStore) Close() error {
	return s.client.Close()
}
