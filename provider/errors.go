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

import "errors"

var (
	// ErrUnknownProvider indicates a capability name outside the closed set.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrDuplicateProvider indicates two providers registered under one name.
	ErrDuplicateProvider = errors.New("duplicate provider")

	// ErrNoProviders indicates a registry built with no providers.
	ErrNoProviders = errors.New("at least one provider is required")

	// ErrTrackRepositoryRequired indicates a nil track repository was provided.
	ErrTrackRepositoryRequired = errors.New("track repository is required")

	// ErrEmbedderRequired indicates a nil embedder was provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrDirectoryRequired indicates a nil station directory was provided.
	ErrDirectoryRequired = errors.New("station directory is required")
)
