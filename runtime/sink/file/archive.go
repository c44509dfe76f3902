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

package file

import (
	"os"
	"sync"

	"dirpx.dev/dcast/telemetry"
)

// archiveRing is the ordered retention ring of compressed archives.
// Compression workers append concurrently, so a mutex guards the slice;
// contention is negligible at rotation frequency.
type archiveRing struct {
	mu    sync.Mutex
	max   int
	paths []string
}

func newArchiveRing(max int) *archiveRing {
	if max < 1 {
		max = 1
	}
	return &archiveRing{max: max}
}

// seed loads archives found on disk at startup, oldest first, and prunes
// immediately in case the retention cap shrank between runs.
func (r *archiveRing) seed(paths []string) {
	r.mu.Lock()
	r.paths = append(r.paths[:0], paths...)
	r.pruneLocked()
	r.mu.Unlock()
}

// add appends a fresh archive and unlinks the oldest beyond the cap.
func (r *archiveRing) add(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.pruneLocked()
	r.mu.Unlock()
}

func (r *archiveRing) pruneLocked() {
	for len(r.paths) > r.max {
		oldest := r.paths[0]
		r.paths = r.paths[1:]
		// Unlink best-effort: a missing file means someone already
		// cleaned up, which is fine for retention purposes.
		_ = os.Remove(oldest)
		telemetry.ArchivesPrunedTotal.Inc()
	}
}

// list returns a copy of the current ring, oldest first.
func (r *archiveRing) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}
