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
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	httpx "github.com/blobgate/blobgate/pkg/http"
	"github.com/blobgate/blobgate/pkg/http/middleware"
	"github.com/blobgate/blobgate/pkg/storage"
)

// objectRouter registers blob object routes
func (rt *Router) objectRouter(r fiber.Router) {
	objectGroup := r.Group("/object")
	{
		objectGroup.Post("/upload", rt.uploadObject)           // POST /object/upload - upload to the active provider
		objectGroup.Post("/upload/:provider", rt.uploadObject) // POST /object/upload/:provider - upload to a named provider
		objectGroup.Get("/download", rt.downloadObject)        // GET /object/download?url= - fetch blob content
		objectGroup.Get("/exists", rt.existsObject)            // GET /object/exists?url= - existence probe
		objectGroup.Delete("/", rt.deleteObject)               // DELETE /object?url= - remove blob
	}
}

// providerLabel resolves the metrics label for a request: the explicit name
// when given, otherwise the active selection at call time.
func (rt *Router) providerLabel(name string) string {
	if name != "" {
		return name
	}
	if active := rt.Dispatch.Registry().ActiveName(); active != "" {
		return active
	}
	return "none"
}

// repStorageErr maps dispatch errors to the unified error envelope.
func repStorageErr(c *fiber.Ctx, err error) error {
	var notFound *storage.ProviderNotFoundError
	switch {
	case errors.Is(err, storage.ErrNoActiveProvider):
		return httpx.WithRepErrMsg(c, httpx.NoActiveProvider.Code, httpx.NoActiveProvider.Msg, c.Path())
	case errors.As(err, &notFound):
		return httpx.WithRepErrMsg(c, httpx.ProviderNotRegistered.Code, err.Error(), c.Path())
	case errors.Is(err, storage.ErrUnsupportedOperation):
		return httpx.WithRepErrMsg(c, httpx.OperationNotSupported.Code, httpx.OperationNotSupported.Msg, c.Path())
	default:
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}
}

// uploadObject stores a multipart file, or a "text" form value, on the
// active or named provider.
func (rt *Router) uploadObject(c *fiber.Ctx) error {
	provider := c.Params("provider")

	opts := &storage.UploadOptions{
		Filename:    c.FormValue("filename"),
		ContentType: c.FormValue("contentType"),
	}

	var data []byte
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "cannot open uploaded file", c.Path())
		}
		defer f.Close()
		data, err = io.ReadAll(f)
		if err != nil {
			return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "cannot read uploaded file", c.Path())
		}
		if opts.Filename == "" {
			opts.Filename = file.Filename
		}
		if opts.ContentType == "" {
			opts.ContentType = file.Header.Get("Content-Type")
		}
	} else if text := c.FormValue("text"); text != "" {
		data = []byte(text)
	} else {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "file or text is required", c.Path())
	}

	start := time.Now()
	var (
		result *storage.UploadResult
		err    error
	)
	if provider == "" {
		result, err = rt.Dispatch.Upload(c.UserContext(), data, opts)
	} else {
		result, err = rt.Dispatch.UploadTo(c.UserContext(), provider, data, opts)
	}
	rt.Recorder.ObserveDispatch("upload", rt.providerLabel(provider), start, err)
	if err != nil {
		return repStorageErr(c, err)
	}

	c.Locals(middleware.DETAIL, result)
	c.Locals(middleware.OPERATION, "upload object")
	return nil
}

// downloadObject streams blob content back to the caller.
func (rt *Router) downloadObject(c *fiber.Ctx) error {
	url := c.Query("url")
	if url == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "url is required", c.Path())
	}
	provider := c.Query("provider")

	start := time.Now()
	var (
		data []byte
		err  error
	)
	if provider == "" {
		data, err = rt.Dispatch.Download(c.UserContext(), url)
	} else {
		data, err = rt.Dispatch.DownloadFrom(c.UserContext(), provider, url)
	}
	rt.Recorder.ObserveDispatch("download", rt.providerLabel(provider), start, err)
	if err != nil {
		return repStorageErr(c, err)
	}

	return c.Send(data)
}

// existsObject probes for blob existence. Probe semantics: an unknown
// provider name answers false rather than an error.
func (rt *Router) existsObject(c *fiber.Ctx) error {
	url := c.Query("url")
	if url == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "url is required", c.Path())
	}
	provider := c.Query("provider")

	start := time.Now()
	var (
		found bool
		err   error
	)
	if provider == "" {
		found, err = rt.Dispatch.Exists(c.UserContext(), url)
	} else {
		found, err = rt.Dispatch.ExistsIn(c.UserContext(), provider, url)
	}
	rt.Recorder.ObserveDispatch("exists", rt.providerLabel(provider), start, err)
	if err != nil {
		return repStorageErr(c, err)
	}

	c.Locals(middleware.DETAIL, fiber.Map{"url": url, "exists": found})
	c.Locals(middleware.OPERATION, "exists object")
	return nil
}

// deleteObject removes a blob.
func (rt *Router) deleteObject(c *fiber.Ctx) error {
	url := c.Query("url")
	if url == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "url is required", c.Path())
	}
	provider := c.Query("provider")

	start := time.Now()
	var (
		result *storage.DeleteResult
		err    error
	)
	if provider == "" {
		result, err = rt.Dispatch.Delete(c.UserContext(), url)
	} else {
		result, err = rt.Dispatch.DeleteFrom(c.UserContext(), provider, url)
	}
	rt.Recorder.ObserveDispatch("delete", rt.providerLabel(provider), start, err)
	if err != nil {
		return repStorageErr(c, err)
	}

	c.Locals(middleware.DETAIL, result)
	c.Locals(middleware.OPERATION, "delete object")
	return nil
}
