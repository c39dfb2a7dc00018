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

	"github.com/go-resty/resty/v2"
)

// httpClient serves the default download/exists behaviors. Backends that
// override Downloader/Exister never touch it.
var httpClient = resty.New()

// httpDownload is the default Downloader behavior: the blob URL is treated
// as a directly fetchable network address. Non-success responses fail with
// DownloadFailedError carrying the response's reason phrase.
func httpDownload(ctx context.Context, url string) ([]byte, error) {
	resp, err := httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, &DownloadFailedError{Status: http.StatusText(resp.StatusCode())}
	}
	return resp.Body(), nil
}

// httpExists is the default Exister behavior: a HEAD probe. Existence checks
// are best-effort, so non-success statuses and transport errors both map to
// false rather than an error.
func httpExists(ctx context.Context, url string) bool {
	resp, err := httpClient.R().SetContext(ctx).Head(url)
	if err != nil {
		return false
	}
	return resp.IsSuccess()
}
