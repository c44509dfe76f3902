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

import (
	"context"

	"dirpx.dev/dcast/apis/level"
	"dirpx.dev/dcast/apis/record"
)

// Broadcaster is the front end of the logging pipeline: it accepts records
// from any producer goroutine and fans them out to every registered sink
// worker.
//
// Implementations must guarantee:
//  1. Log never blocks for more than a bounded constant outside dev-mode;
//     saturation is handled per sink by the backpressure policy.
//  2. Records from a single producer reach each individual sink in program
//     order. No ordering holds across sinks.
//  3. No error ever surfaces to the producer; undeliverable records are
//     dropped and counted.
type Broadcaster interface {
	// Enabled reports whether the given level passes the global filter
	// right now. It is wait-free; callers use it to skip expensive
	// message construction.
	Enabled(lvl level.Level) bool

	// Log publishes one shared record to every sink whose queue has room.
	// The record must not be mutated afterwards.
	Log(r *record.Record)

	// Flush enqueues a flush on every sink. In dev-mode it additionally
	// blocks until every worker acknowledged drainage; otherwise it
	// returns immediately. The context bounds the dev-mode wait.
	Flush(ctx context.Context) error
}

// Controller owns the worker set behind a Broadcaster and drives the
// ordered shutdown sequence: broadcast shutdown, join workers, drain the
// compression queue, release resources.
type Controller interface {
	Broadcaster

	// Shutdown tears the pipeline down. It is idempotent; the first call
	// wins and later calls return immediately. The context bounds the
	// drain; a canceled context abandons workers that have not exited yet.
	Shutdown(ctx context.Context) error
}
