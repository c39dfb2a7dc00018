// Copyright 2025 Blobgate Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"context"
)

// Dispatch is the public facade over a registry. Each operation comes in two
// named forms: the plain form resolves the active provider, the *To/*From/*In
// form resolves an explicit name. Registry resolution failures and backend
// errors both propagate to the caller unwrapped, so backend diagnostic
// detail survives. The one exception is Exists, which never raises for an
// unresolved provider.
type Dispatch struct {
	registry *Registry
}

func NewDispatch(registry *Registry) *Dispatch {
	return &Dispatch{registry: registry}
}

// Registry exposes the underlying registry for management surfaces.
func (d *Dispatch) Registry() *Registry {
	return d.registry
}

// Upload stores data on the active provider.
func (d *Dispatch) Upload(ctx context.Context, data []byte, opts *UploadOptions) (*UploadResult, error) {
	p, err := d.registry.Active()
	if err != nil {
		return nil, err
	}
	return p.Upload(ctx, data, opts)
}

// UploadTo stores data on the named provider.
func (d *Dispatch) UploadTo(ctx context.Context, name string, data []byte, opts *UploadOptions) (*UploadResult, error) {
	p, err := d.registry.Get(name)
	if err != nil {
		return nil, err
	}
	return p.Upload(ctx, data, opts)
}

// UploadText stores a text payload on the active provider. Text is
// normalized to bytes as UTF-8 before forwarding.
func (d *Dispatch) UploadText(ctx context.Context, text string, opts *UploadOptions) (*UploadResult, error) {
	return d.Upload(ctx, []byte(text), opts)
}

// UploadTextTo stores a text payload on the named provider.
func (d *Dispatch) UploadTextTo(ctx context.Context, name, text string, opts *UploadOptions) (*UploadResult, error) {
	return d.UploadTo(ctx, name, []byte(text), opts)
}

// Download retrieves a blob through the active provider.
func (d *Dispatch) Download(ctx context.Context, url string) ([]byte, error) {
	p, err := d.registry.Active()
	if err != nil {
		return nil, err
	}
	return download(ctx, p, url)
}

// DownloadFrom retrieves a blob through the named provider.
func (d *Dispatch) DownloadFrom(ctx context.Context, name, url string) ([]byte, error) {
	p, err := d.registry.Get(name)
	if err != nil {
		return nil, err
	}
	return download(ctx, p, url)
}

// Exists probes a blob through the active provider. An unresolved provider
// yields false, not an error: existence is a probe, not a mutation. Errors
// raised by a backend's own Exists override still propagate.
func (d *Dispatch) Exists(ctx context.Context, url string) (bool, error) {
	p, err := d.registry.Active()
	if err != nil {
		return false, nil
	}
	return exists(ctx, p, url)
}

// ExistsIn probes a blob through the named provider. An unregistered name
// yields false, not an error.
func (d *Dispatch) ExistsIn(ctx context.Context, name, url string) (bool, error) {
	p, err := d.registry.Get(name)
	if err != nil {
		return false, nil
	}
	return exists(ctx, p, url)
}

// Delete removes a blob through the active provider.
func (d *Dispatch) Delete(ctx context.Context, url string) (*DeleteResult, error) {
	p, err := d.registry.Active()
	if err != nil {
		return nil, err
	}
	return deleteBlob(ctx, p, url)
}

// DeleteFrom removes a blob through the named provider.
func (d *Dispatch) DeleteFrom(ctx context.Context, name, url string) (*DeleteResult, error) {
	p, err := d.registry.Get(name)
	if err != nil {
		return nil, err
	}
	return deleteBlob(ctx, p, url)
}

func download(ctx context.Context, p Provider, url string) ([]byte, error) {
	if dl, ok := p.(Downloader); ok {
		return dl.Download(ctx, url)
	}
	return httpDownload(ctx, url)
}

func exists(ctx context.Context, p Provider, url string) (bool, error) {
	if ex, ok := p.(Exister); ok {
		return ex.Exists(ctx, url)
	}
	return httpExists(ctx, url), nil
}

func deleteBlob(ctx context.Context, p Provider, url string) (*DeleteResult, error) {
	del, ok := p.(Deleter)
	if !ok {
		return nil, ErrUnsupportedOperation
	}
	return del.Delete(ctx, url)
}
