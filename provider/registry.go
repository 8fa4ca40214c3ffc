// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package provider

import (
	"fmt"
	"sort"

	"github.com/poiesic/soundlens/ai"
)

// Registry is a static name-to-provider mapping built at construction.
// It is immutable afterwards and safe for concurrent use.
type Registry struct {
	providers map[Name]Provider
}

// NewRegistry builds a registry from the given providers.
// Duplicate names are rejected.
func NewRegistry(providers ...Provider) (*Registry, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}

	byName := make(map[Name]Provider, len(providers))
	for _, p := range providers {
		name := p.Name()
		if _, exists := byName[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProvider, name)
		}
		byName[name] = p
	}

	return &Registry{providers: byName}, nil
}

// Get returns the provider registered under name.
func (r *Registry) Get(name Name) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

// Has reports whether a provider is registered under name.
func (r *Registry) Has(name Name) bool {
	_, ok := r.providers[name]
	return ok
}

// All returns every registered provider, ordered by name.
func (r *Registry) All() []Provider {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, string(name))
	}
	sort.Strings(names)

	all := make([]Provider, 0, len(names))
	for _, name := range names {
		all = append(all, r.providers[Name(name)])
	}
	return all
}

// Catalog returns name and description pairs for the planning service,
// ordered by name.
func (r *Registry) Catalog() []ai.CapabilityInfo {
	all := r.All()
	catalog := make([]ai.CapabilityInfo, 0, len(all))
	for _, p := range all {
		catalog = append(catalog, ai.CapabilityInfo{
			Name:        string(p.Name()),
			Description: p.Description(),
		})
	}
	return catalog
}
