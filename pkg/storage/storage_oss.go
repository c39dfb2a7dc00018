package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type OSSStorage struct {
	Client *oss.Client
	Bucket *oss.Bucket
	s      *Storage
}

func newOSS(s *Storage) (*OSSStorage, error) {
	client, err := oss.New(s.Endpoint, s.AccessKey, s.SecretKey)
	if err != nil {
		return nil, err
	}

	bucket, err := client.Bucket(s.Bucket)
	if err != nil {
		return nil, err
	}

	return &OSSStorage{
		Client: client,
		Bucket: bucket,
		s:      s,
	}, nil
}

func (o *OSSStorage) Upload(ctx context.Context, data []byte, opts *UploadOptions) (*UploadResult, error) {
	fullPath := getFullPath(o.s.BasePath, objectName(opts))

	putOpts := []oss.Option{oss.ContentType(contentType(opts))}
	if opts != nil {
		for k, v := range opts.Metadata {
			putOpts = append(putOpts, oss.Meta(k, v))
		}
	}

	if err := o.Bucket.PutObject(fullPath, bytes.NewReader(data), putOpts...); err != nil {
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

func (o *OSSStorage) Download(ctx context.Context, url string) ([]byte, error) {
	body, err := o.Bucket.GetObject(url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return io.ReadAll(body)
}

func (o *OSSStorage) Exists(ctx context.Context, url string) (bool, error) {
	return o.Bucket.IsObjectExist(url)
}

func (o *OSSStorage) Delete(ctx context.Context, url string) (*DeleteResult, error) {
	if err := o.Bucket.DeleteObject(url); err != nil {
		return nil, err
	}
	return &DeleteResult{Success: true}, nil
}
