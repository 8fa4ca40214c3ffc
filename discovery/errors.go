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

package discovery

import "errors"

var (
	// ErrPlannerRequired indicates a nil planner was provided.
	ErrPlannerRequired = errors.New("planner is required")

	// ErrRegistryRequired indicates a nil provider registry was provided.
	ErrRegistryRequired = errors.New("provider registry is required")

	// ErrEmptyClarification indicates Clarify was called without an answer.
	ErrEmptyClarification = errors.New("clarification must not be empty")
)
