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

package sink

import (
	"context"

	"dirpx.dev/dcast/apis/command"
)

// Sink is a terminal destination for formatted log bytes.
//
// Notes:
//   - Sink works with already encoded []byte to keep this package
//     independent of encoders.
//   - A sink is owned by exactly one worker goroutine; implementations may
//     therefore assume single-threaded access unless they document otherwise.
//   - Sink should avoid panicking: it is the end of the pipeline.
type Sink interface {
	// Name returns a human-friendly identifier of the sink.
	// It is used for diagnostics, health reports and config lookups.
	Name() string

	// Emit delivers one batch of encoded bytes to the destination.
	// Returned error means the batch was not persisted/sent; the worker
	// reacts by disabling the sink (see runtime/worker).
	Emit(ctx context.Context, batch []byte) error

	// Sync forces all accepted bytes down to the underlying medium
	// (file-data-sync, stdout flush). Sinks without a meaningful sync
	// return nil.
	Sync(ctx context.Context) error

	// Close releases underlying resources (files, sockets, pools).
	// After Close, the sink must not be used.
	Close(ctx context.Context) error
}

// CommandHandler is an optional extension for sinks that react to
// out-of-band commands (rotate, compress). The worker delegates any
// command it does not handle itself; sinks without the extension
// silently ignore those commands.
type CommandHandler interface {
	// HandleCommand processes a single sink-directed command.
	HandleCommand(ctx context.Context, cmd command.Command) error
}

// RecordSink is an optional extension for sinks that consume the record
// itself rather than encoded bytes (the UDP sink serializes its own wire
// frame and never sees the encoder output). The worker prefers WriteRecord
// over encode+Emit when the extension is present.
type RecordSink interface {
	// WriteRecord delivers one shared, read-only record.
	WriteRecord(ctx context.Context, cmd command.Command) error
}
