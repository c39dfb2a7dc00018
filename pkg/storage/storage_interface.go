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

// Provider is the mandatory capability every storage backend satisfies.
// The URL returned by Upload must be usable as input to Download, Exists
// and Delete on the same backend.
type Provider interface {
	Upload(ctx context.Context, data []byte, opts *UploadOptions) (*UploadResult, error)
}

// Downloader is an optional capability. Backends that do not implement it
// get the default HTTP GET behavior against the blob URL.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// Exister is an optional capability. Backends that do not implement it
// get the default HTTP HEAD probe against the blob URL.
type Exister interface {
	Exists(ctx context.Context, url string) (bool, error)
}

// Deleter is an optional capability. Delete against a backend that does
// not implement it fails with ErrUnsupportedOperation.
type Deleter interface {
	Delete(ctx context.Context, url string) (*DeleteResult, error)
}

// UploadOptions carries optional per-upload parameters.
type UploadOptions struct {
	Filename    string            `json:"filename,omitempty"`
	ContentType string            `json:"contentType,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// UploadResult identifies the stored object. URL is required and feeds the
// follow-up operations; Metadata is backend-defined and may differ from the
// metadata supplied on upload.
type UploadResult struct {
	URL      string         `json:"url"`
	ID       string         `json:"id,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// DeleteResult reports the outcome of a delete.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
