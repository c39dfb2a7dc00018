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

package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpx "github.com/blobgate/blobgate/pkg/http"
	"github.com/blobgate/blobgate/pkg/metrics"
	"github.com/blobgate/blobgate/pkg/storage"
	"github.com/blobgate/blobgate/pkg/tools"
)

// memProvider is an in-memory backend implementing all four capabilities.
type memProvider struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemProvider() *memProvider {
	return &memProvider{objects: make(map[string][]byte)}
}

func (m *memProvider) Upload(ctx context.Context, data []byte, opts *storage.UploadOptions) (*storage.UploadResult, error) {
	name := "blob"
	if opts != nil && opts.Filename != "" {
		name = opts.Filename
	}
	m.mu.Lock()
	m.objects[name] = append([]byte(nil), data...)
	m.mu.Unlock()
	return &storage.UploadResult{URL: name, ID: name}, nil
}

func (m *memProvider) Download(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[url]
	if !ok {
		return nil, fmt.Errorf("mem: object %s not found", url)
	}
	return data, nil
}

func (m *memProvider) Exists(ctx context.Context, url string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[url]
	return ok, nil
}

func (m *memProvider) Delete(ctx context.Context, url string) (*storage.DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, url)
	return &storage.DeleteResult{Success: true}, nil
}

func newTestApp(t *testing.T, withActive bool) (*fiber.App, *memProvider) {
	t.Helper()

	mem := newMemProvider()
	registry := storage.NewRegistry()
	registry.Register("mem", mem)
	if withActive {
		require.NoError(t, registry.SetActive("mem"))
	}
	dispatch := storage.NewDispatch(registry)

	logger := zap.NewNop()
	rt := NewRouter(&httpx.Http{}, dispatch, tools.New(dispatch, logger.Sugar()), metrics.NewRecorder())
	return rt.Router(logger), mem
}

type envelope struct {
	Code   int             `json:"code"`
	Detail json.RawMessage `json:"detail"`
	Msg    string          `json:"msg"`
	ErrMsg string          `json:"errMsg"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	return env
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))
}

func TestUploadObject(t *testing.T) {
	app, mem := newTestApp(t, true)

	buf, contentType := multipartBody(t, "report.pdf", []byte{0x25, 0x50, 0x44, 0x46})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/object/upload", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, httpx.Success.Code, env.Code)

	var result storage.UploadResult
	require.NoError(t, json.Unmarshal(env.Detail, &result))
	assert.Equal(t, "report.pdf", result.URL)
	assert.Equal(t, []byte{0x25, 0x50, 0x44, 0x46}, mem.objects["report.pdf"])
}

func TestUploadObject_Text(t *testing.T) {
	app, mem := newTestApp(t, true)

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	require.NoError(t, w.WriteField("text", "héllo wörld"))
	require.NoError(t, w.WriteField("filename", "greeting.txt"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/object/upload", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, httpx.Success.Code, env.Code)
	assert.Equal(t, []byte("héllo wörld"), mem.objects["greeting.txt"])
}

func TestUploadObject_MissingPayload(t *testing.T) {
	app, _ := newTestApp(t, true)

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/object/upload", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, httpx.BadRequest.Code, env.Code)
}

func TestUploadObject_NoActiveProvider(t *testing.T) {
	app, _ := newTestApp(t, false)

	buf, contentType := multipartBody(t, "x.bin", []byte{1})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/object/upload", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, httpx.NoActiveProvider.Code, env.Code)
}

func TestUploadObject_UnknownNamedProvider(t *testing.T) {
	app, _ := newTestApp(t, true)

	buf, contentType := multipartBody(t, "x.bin", []byte{1})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/object/upload/nope", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, httpx.ProviderNotRegistered.Code, env.Code)
}

func TestDownloadObject(t *testing.T) {
	app, mem := newTestApp(t, true)
	mem.objects["data.bin"] = []byte{0, 1, 2, 255}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/object/download?url=data.bin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, []byte{0, 1, 2, 255}, body)
}

func TestDownloadObject_MissingUrl(t *testing.T) {
	app, _ := newTestApp(t, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/object/download", nil))
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, httpx.BadRequest.Code, env.Code)
}

func TestExistsObject(t *testing.T) {
	app, mem := newTestApp(t, true)
	mem.objects["present.txt"] = []byte("x")

	for _, tc := range []struct {
		url    string
		exists bool
	}{
		{"present.txt", true},
		{"absent.txt", false},
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/object/exists?url="+tc.url, nil))
		require.NoError(t, err)
		env := decodeEnvelope(t, resp)
		assert.Equal(t, httpx.Success.Code, env.Code)

		var detail struct {
			Exists bool `json:"exists"`
		}
		require.NoError(t, json.Unmarshal(env.Detail, &detail))
		assert.Equal(t, tc.exists, detail.Exists, tc.url)
	}
}

func TestExistsObject_UnknownProviderAnswersFalse(t *testing.T) {
	app, _ := newTestApp(t, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/object/exists?url=x&provider=nope", nil))
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, httpx.Success.Code, env.Code)

	var detail struct {
		Exists bool `json:"exists"`
	}
	require.NoError(t, json.Unmarshal(env.Detail, &detail))
	assert.False(t, detail.Exists)
}

func TestDeleteObject(t *testing.T) {
	app, mem := newTestApp(t, true)
	mem.objects["gone.txt"] = []byte("x")

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/object/?url=gone.txt", nil))
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, httpx.Success.Code, env.Code)
	assert.NotContains(t, mem.objects, "gone.txt")
}

func TestListProviders(t *testing.T) {
	app, _ := newTestApp(t, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/providers/", nil))
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, httpx.Success.Code, env.Code)

	var detail struct {
		Active    string         `json:"active"`
		Providers []providerInfo `json:"providers"`
	}
	require.NoError(t, json.Unmarshal(env.Detail, &detail))
	assert.Equal(t, "mem", detail.Active)
	require.Len(t, detail.Providers, 1)
	assert.True(t, detail.Providers[0].Active)
	assert.Equal(t, []string{"upload", "download", "exists", "delete"}, detail.Providers[0].Capabilities)
}

func TestSetActive_Unknown(t *testing.T) {
	app, _ := newTestApp(t, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/providers/nope/active", nil))
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, httpx.ProviderNotRegistered.Code, env.Code)
}

func TestProvidersHealth(t *testing.T) {
	app, _ := newTestApp(t, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/providers/health", nil))
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, httpx.Success.Code, env.Code)

	var detail struct {
		Providers []providerHealth `json:"providers"`
	}
	require.NoError(t, json.Unmarshal(env.Detail, &detail))
	require.Len(t, detail.Providers, 1)
	assert.True(t, detail.Providers[0].Healthy)
}

func TestToolUpload(t *testing.T) {
	app, mem := newTestApp(t, true)

	args := tools.UploadArgs{
		Content:  "aGVsbG8=", // "hello"
		Filename: "hello.txt",
	}
	body, err := json.Marshal(args)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tools/upload", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, httpx.Success.Code, env.Code)
	assert.Equal(t, []byte("hello"), mem.objects["hello.txt"])
}

func TestNotFoundEnvelope(t *testing.T) {
	app, _ := newTestApp(t, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
