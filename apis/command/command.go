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

package command

import "dirpx.dev/dcast/apis/record"

// Op discriminates the command variants carried on per-sink channels.
type Op uint8

const (
	// OpWrite delivers a shared record to the sink worker.
	OpWrite Op = iota

	// OpFlush asks the worker to emit its batch and sync the sink.
	// When the command carries a Barrier, the worker must signal it
	// after the sync completed.
	OpFlush

	// OpRotate asks a file sink to retire its current segment now.
	// Other sinks ignore it.
	OpRotate

	// OpCompress asks a file sink to compress the retired segment at
	// Path. Other sinks ignore it.
	OpCompress

	// OpShutdown tells the worker to drain, emit, sync, release its
	// sink and exit. It is the last command a worker ever receives.
	OpShutdown
)

// Command is the tagged value exchanged between the dispatcher and a sink
// worker. Only the fields relevant to Op are set; the zero value of the
// rest keeps the struct cheap to copy onto a channel.
type Command struct {
	Op Op

	// Record is set for OpWrite. It is shared across all sinks of one
	// broadcast and must be treated as read-only.
	Record *record.Record

	// Barrier is optionally set for OpFlush and OpShutdown. The worker
	// closes it once the flush (or final drain) has been committed to
	// the sink. At most one goroutine waits on a barrier.
	Barrier chan struct{}

	// Path is set for OpCompress.
	Path string
}

// Write builds a write command around a shared record.
func Write(r *record.Record) Command {
	return Command{Op: OpWrite, Record: r}
}

// Flush builds a flush command. A nil barrier requests a fire-and-forget
// flush; NewBarrier provides a waitable one.
func Flush(barrier chan struct{}) Command {
	return Command{Op: OpFlush, Barrier: barrier}
}

// Rotate builds a rotate command for file sinks.
func Rotate() Command {
	return Command{Op: OpRotate}
}

// Compress builds a compress command for the retired segment at path.
func Compress(path string) Command {
	return Command{Op: OpCompress, Path: path}
}

// Shutdown builds the terminal command. The barrier, when non-nil, is
// signaled after the worker finished its drain.
func Shutdown(barrier chan struct{}) Command {
	return Command{Op: OpShutdown, Barrier: barrier}
}

// NewBarrier allocates a one-shot acknowledgement channel.
func NewBarrier() chan struct{} {
	return make(chan struct{})
}

// Ack signals the command's barrier, if any. It is safe to call on
// commands without a barrier and must be called at most once per command.
func (c Command) Ack() {
	if c.Barrier != nil {
		close(c.Barrier)
	}
}
