package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/tencentyun/cos-go-sdk-v5"
)

type COSStorage struct {
	Client *cos.Client
	s      *Storage
}

func newCOS(s *Storage) (*COSStorage, error) {
	// COS wants a bucket URL; build one when the endpoint is bare.
	u, err := url.Parse(s.Endpoint)
	if err != nil {
		return nil, err
	}
	if s.Bucket != "" && u.Host != "" {
		u, _ = url.Parse("https://" + s.Bucket + "." + u.Host)
	}

	b := &cos.BaseURL{BucketURL: u}
	client := cos.NewClient(b, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  s.AccessKey,
			SecretKey: s.SecretKey,
		},
	})

	return &COSStorage{
		Client: client,
		s:      s,
	}, nil
}

func (c *COSStorage) Upload(ctx context.Context, data []byte, opts *UploadOptions) (*UploadResult, error) {
	fullPath := getFullPath(c.s.BasePath, objectName(opts))

	opt := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType: contentType(opts),
		},
	}
	if opts != nil && len(opts.Metadata) > 0 {
		header := make(http.Header)
		for k, v := range opts.Metadata {
			header.Set("x-cos-meta-"+k, v)
		}
		opt.ObjectPutHeaderOptions.XCosMetaXXX = &header
	}

	if _, err := c.Client.Object.Put(ctx, fullPath, bytes.NewReader(data), opt); err != nil {
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

func (c *COSStorage) Download(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Client.Object.Get(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func (c *COSStorage) Exists(ctx context.Context, url string) (bool, error) {
	return c.Client.Object.IsExist(ctx, url)
}

func (c *COSStorage) Delete(ctx context.Context, url string) (*DeleteResult, error) {
	if _, err := c.Client.Object.Delete(ctx, url); err != nil {
		return nil, err
	}
	return &DeleteResult{Success: true}, nil
}
