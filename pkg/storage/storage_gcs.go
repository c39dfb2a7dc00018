package storage

import (
	"bytes"
	"context"
	"errors"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSStorage struct {
	Client *gcs.Client
	Bucket *gcs.BucketHandle
	s      *Storage
}

func newGCS(s *Storage) (*GCSStorage, error) {
	var opts []option.ClientOption

	// AccessKey doubles as the credentials JSON file path for GCS.
	if s.AccessKey != "" {
		opts = append(opts, option.WithCredentialsFile(s.AccessKey))
	}

	client, err := gcs.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	return &GCSStorage{
		Client: client,
		Bucket: client.Bucket(s.Bucket),
		s:      s,
	}, nil
}

func (g *GCSStorage) Upload(ctx context.Context, data []byte, opts *UploadOptions) (*UploadResult, error) {
	fullPath := getFullPath(g.s.BasePath, objectName(opts))

	writer := g.Bucket.Object(fullPath).NewWriter(ctx)
	writer.ContentType = contentType(opts)
	if opts != nil && len(opts.Metadata) > 0 {
		writer.Metadata = opts.Metadata
	}

	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		writer.Close()
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return &UploadResult{
		URL: fullPath,
		ID:  fullPath,
		Metadata: map[string]any{
			"size": len(data),
		},
	}, nil
}

func (g *GCSStorage) Download(ctx context.Context, url string) ([]byte, error) {
	reader, err := g.Bucket.Object(url).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

func (g *GCSStorage) Exists(ctx context.Context, url string) (bool, error) {
	_, err := g.Bucket.Object(url).Attrs(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (g *GCSStorage) Delete(ctx context.Context, url string) (*DeleteResult, error) {
	if err := g.Bucket.Object(url).Delete(ctx); err != nil {
		return nil, err
	}
	return &DeleteResult{Success: true}, nil
}
