package storage

import (
	"bytes"
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStorage struct {
	Client *minio.Client
	s      *Storage
}

func newMinio(s *Storage) (*MinioStorage, error) {
	client, err := minio.New(s.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s.AccessKey, s.SecretKey, ""),
		Secure: s.UseTLS,
	})
	if err != nil {
		return nil, err
	}

	return &MinioStorage{
		Client: client,
		s:      s,
	}, nil
}

func (m *MinioStorage) Upload(ctx context.Context, data []byte, opts *UploadOptions) (*UploadResult, error) {
	fullPath := getFullPath(m.s.BasePath, objectName(opts))

	putOpts := minio.PutObjectOptions{
		ContentType: contentType(opts),
	}
	if opts != nil && len(opts.Metadata) > 0 {
		putOpts.UserMetadata = opts.Metadata
	}

	info, err := m.Client.PutObject(ctx, m.s.Bucket, fullPath, bytes.NewReader(data), int64(len(data)), putOpts)
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		URL: fullPath,
		ID:  fullPath,
		Metadata: map[string]any{
			"etag":   info.ETag,
			"size":   info.Size,
			"bucket": info.Bucket,
		},
	}, nil
}

func (m *MinioStorage) Download(ctx context.Context, url string) ([]byte, error) {
	obj, err := m.Client.GetObject(ctx, m.s.Bucket, url, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *MinioStorage) Exists(ctx context.Context, url string) (bool, error) {
	_, err := m.Client.StatObject(ctx, m.s.Bucket, url, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *MinioStorage) Delete(ctx context.Context, url string) (*DeleteResult, error) {
	if err := m.Client.RemoveObject(ctx, m.s.Bucket, url, minio.RemoveObjectOptions{}); err != nil {
		return nil, err
	}
	return &DeleteResult{Success: true}, nil
}
