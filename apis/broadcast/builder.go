/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package broadcast

import "context"

// Builder is the contract for constructing a live Controller from a
// declarative Specification. Keeping it in apis allows tests to exercise
// installation logic without pulling the real runtime.
type Builder interface {
	// Build constructs a ready-to-use controller from the given spec.
	// The controller's workers are running when Build returns.
	Build(ctx context.Context, spec Specification) (Controller, error)
}
