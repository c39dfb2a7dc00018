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
	"errors"
	"fmt"
)

var (
	// ErrNoActiveProvider is returned by name-omitting calls when the
	// registry has no active selection.
	ErrNoActiveProvider = errors.New("storage: no active provider")

	// ErrUnsupportedOperation is returned when the resolved backend lacks
	// the optional capability the call requires.
	ErrUnsupportedOperation = errors.New("storage: operation not supported by provider")
)

// ProviderNotFoundError is returned when a named provider is not registered.
type ProviderNotFoundError struct {
	Name string
}

func (e *ProviderNotFoundError) Error() string {
	return fmt.Sprintf("storage: provider %q not registered", e.Name)
}

// DownloadFailedError is returned by the default download behavior on a
// non-success response. Status carries the response's reason phrase
// verbatim, e.g. "Not Found".
type DownloadFailedError struct {
	Status string
}

func (e *DownloadFailedError) Error() string {
	return fmt.Sprintf("storage: download failed: %s", e.Status)
}
