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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDownloadSuccess(t *testing.T) {
	body := []byte{0, 1, 2, 3, 255}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write(body)
	}))
	defer srv.Close()

	data, err := httpDownload(context.Background(), srv.URL+"/blob")
	require.NoError(t, err)
	assert.Equal(t, body, data)
}

func TestDefaultDownloadNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := httpDownload(context.Background(), srv.URL+"/missing")
	var dlErr *DownloadFailedError
	require.ErrorAs(t, err, &dlErr)
	assert.Equal(t, "Not Found", dlErr.Status)
}

func TestDefaultExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		if r.URL.Path == "/present" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	assert.True(t, httpExists(context.Background(), srv.URL+"/present"))
	assert.False(t, httpExists(context.Background(), srv.URL+"/absent"))
}

func TestDefaultExistsUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	// transport errors map to false, never an error
	assert.False(t, httpExists(context.Background(), url+"/blob"))
}

// An upload-only provider must fall through to the HTTP defaults.
func TestDispatchDefaultBehaviors(t *testing.T) {
	body := []byte("served over http")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/report.txt" {
			http.NotFound(w, r)
			return
		}
		if r.Method == http.MethodGet {
			w.Write(body)
		}
	}))
	defer srv.Close()

	d := newTestDispatch(t, map[string]Provider{"up": &uploadOnlyProvider{baseURL: srv.URL}}, "up")
	ctx := context.Background()

	res, err := d.Upload(ctx, body, &UploadOptions{Filename: "report.txt"})
	require.NoError(t, err)
	require.Equal(t, srv.URL+"/report.txt", res.URL)

	data, err := d.Download(ctx, res.URL)
	require.NoError(t, err)
	assert.Equal(t, body, data)

	ok, err := d.Exists(ctx, res.URL)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = d.Exists(ctx, srv.URL+"/other.txt")
	require.NoError(t, err)
	assert.False(t, ok)
}
