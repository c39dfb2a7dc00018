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
	"fmt"
	"path"
	"strings"

	"github.com/rs/xid"
)

// Supported backend types.
const (
	TypeMinio = "minio"
	TypeS3    = "s3"
	TypeOSS   = "oss"
	TypeGCS   = "gcs"
	TypeCOS   = "cos"
)

// Storage holds the connection settings common to all backend types.
type Storage struct {
	Type      string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseTLS    bool
	BasePath  string
}

// New creates a backend instance for the configured type. Every built-in
// backend satisfies Provider, Downloader, Exister and Deleter.
func New(s *Storage) (Provider, error) {
	switch s.Type {
	case TypeMinio:
		return newMinio(s)
	case TypeS3:
		return newS3(s)
	case TypeOSS:
		return newOSS(s)
	case TypeGCS:
		return newGCS(s)
	case TypeCOS:
		return newCOS(s)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", s.Type)
	}
}

// getFullPath joins BasePath and objectName, avoiding double slashes.
func getFullPath(basePath, objectName string) string {
	if basePath == "" {
		return objectName
	}
	basePath = strings.Trim(basePath, "/")
	objectName = strings.TrimPrefix(objectName, "/")
	return path.Join(basePath, objectName)
}

// objectName returns the upload target name: the caller-supplied filename
// when present, a generated id otherwise.
func objectName(opts *UploadOptions) string {
	if opts != nil && opts.Filename != "" {
		return opts.Filename
	}
	return xid.New().String()
}

// contentType returns the effective MIME type for an upload.
func contentType(opts *UploadOptions) string {
	if opts != nil && opts.ContentType != "" {
		return opts.ContentType
	}
	return "application/octet-stream"
}
