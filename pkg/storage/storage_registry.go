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
	"sort"
	"sync"
)

// Registry is a name-keyed store of providers with at most one entry marked
// active. Names are case-sensitive and registering an existing name replaces
// the prior entry. The lock exists because providers can be re-registered
// and the active selection switched at runtime over the management API.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Provider
	active  string
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Provider),
	}
}

// Register inserts or replaces the provider at name. The provider's shape is
// not validated here; capabilities are checked at call time.
func (r *Registry) Register(name string, provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = provider
}

// Get resolves a provider by name.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.entries[name]
	if !ok {
		return nil, &ProviderNotFoundError{Name: name}
	}
	return p, nil
}

// Active resolves the currently active provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.active == "" {
		return nil, ErrNoActiveProvider
	}
	p, ok := r.entries[r.active]
	if !ok {
		return nil, ErrNoActiveProvider
	}
	return p, nil
}

// ActiveName returns the name of the active entry, or "" when none is set.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// SetActive marks the named entry active, implicitly deactivating the
// previous one.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[name]; !ok {
		return &ProviderNotFoundError{Name: name}
	}
	r.active = name
	return nil
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
