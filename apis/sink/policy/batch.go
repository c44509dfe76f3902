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

package policy

import "time"

// Defaults for asynchronous operation. Synchronous mode replaces them
// wholesale; see Synchronous.
const (
	// DefaultMaxBytes is the byte threshold that triggers a flush.
	DefaultMaxBytes = 8 << 10

	// DefaultInterval is the age threshold that triggers a flush.
	DefaultInterval = 100 * time.Millisecond

	// DefaultBufferCap is the hard cap on buffered bytes per sink.
	DefaultBufferCap = 64 << 10

	// DefaultQueueCapacity is the command channel depth for terminal and
	// file sinks. The UDP sink runs a smaller queue.
	DefaultQueueCapacity = 65536

	// DefaultUDPQueueCapacity bounds the UDP sink's command channel.
	DefaultUDPQueueCapacity = 4096
)

// Batch describes when a sink worker hands its accumulated bytes to the
// sink. The byte threshold is primary; MaxEntries is an additional
// either/or trigger for sinks that care about record counts.
type Batch struct {
	// MaxBytes flushes the batch once this many bytes accumulated.
	// Values <= 0 select DefaultMaxBytes.
	MaxBytes int

	// MaxEntries, when > 0, additionally flushes once this many records
	// accumulated, even if MaxBytes was not reached.
	MaxEntries int

	// Interval flushes a non-empty batch once its oldest record is this
	// old. Values <= 0 select DefaultInterval.
	Interval time.Duration

	// BufferCap bounds buffered bytes. It is checked after each record is
	// appended: a record that carries the batch to or past it triggers an
	// immediate flush, so the buffer can exceed it by at most that one
	// record. Values <= 0 select DefaultBufferCap.
	BufferCap int
}

// Normalize fills unset fields with the async defaults.
func (b Batch) Normalize() Batch {
	if b.MaxBytes <= 0 {
		b.MaxBytes = DefaultMaxBytes
	}
	if b.Interval <= 0 {
		b.Interval = DefaultInterval
	}
	if b.BufferCap <= 0 {
		b.BufferCap = DefaultBufferCap
	}
	if b.MaxEntries < 0 {
		b.MaxEntries = 0
	}
	return b
}

// Synchronous returns the batch parameters forced onto every sink when the
// logger is installed in synchronous mode: each record is emitted promptly
// regardless of the sink's own configuration.
func Synchronous() Batch {
	return Batch{
		MaxBytes:  1,
		Interval:  time.Millisecond,
		BufferCap: 1 << 10,
	}
}
