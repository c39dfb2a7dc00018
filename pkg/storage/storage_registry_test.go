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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	p := newMemProvider()

	r.Register("minio-eu", p)

	got, err := r.Get("minio-eu")
	require.NoError(t, err)
	assert.Same(t, p, got)

	_, err = r.Get("minio-us")
	var notFound *ProviderNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "minio-us", notFound.Name)
}

func TestRegistryReplaceSemantics(t *testing.T) {
	r := NewRegistry()
	first := newMemProvider()
	second := newMemProvider()

	r.Register("store", first)
	r.Register("store", second)

	got, err := r.Get("store")
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryNamesAreCaseSensitive(t *testing.T) {
	r := NewRegistry()
	r.Register("Store", newMemProvider())

	_, err := r.Get("store")
	var notFound *ProviderNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRegistryActiveSelection(t *testing.T) {
	r := NewRegistry()
	a := newMemProvider()
	b := newMemProvider()
	r.Register("a", a)
	r.Register("b", b)

	// no active selection yet
	_, err := r.Active()
	assert.ErrorIs(t, err, ErrNoActiveProvider)
	assert.Empty(t, r.ActiveName())

	require.NoError(t, r.SetActive("a"))
	got, err := r.Active()
	require.NoError(t, err)
	assert.Same(t, a, got)

	// switching implicitly deactivates the previous selection
	require.NoError(t, r.SetActive("b"))
	got, err = r.Active()
	require.NoError(t, err)
	assert.Same(t, b, got)
	assert.Equal(t, "b", r.ActiveName())
}

func TestRegistrySetActiveUnknownName(t *testing.T) {
	r := NewRegistry()
	err := r.SetActive("ghost")

	var notFound *ProviderNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.Name)
	assert.Empty(t, r.ActiveName())
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("cos", newMemProvider())
	r.Register("aws", newMemProvider())
	r.Register("minio", newMemProvider())

	assert.Equal(t, []string{"aws", "cos", "minio"}, r.Names())
}

func TestProviderNotFoundErrorMessage(t *testing.T) {
	err := error(&ProviderNotFoundError{Name: "eu-backup"})
	assert.Contains(t, err.Error(), `"eu-backup"`)
	assert.False(t, errors.Is(err, ErrNoActiveProvider))
}
