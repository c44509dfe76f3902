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

package worker

import (
	"time"

	"go.uber.org/zap/buffer"

	"dirpx.dev/dcast/apis/sink/policy"
)

// batchPool supplies the long-lived per-worker buffers.
var batchPool = buffer.NewPool()

// Batcher accumulates encoded records for one sink between emits.
//
// It implements io.Writer so encoders render straight into the batch with
// no intermediate copy. The worker is the single caller; no locking.
//
// Flush triggers; the first three are checked by the worker after every
// append, the age trigger by its receive timer:
//   - buffered bytes reached Batch.MaxBytes
//   - buffered entries reached Batch.MaxEntries (when configured)
//   - buffered bytes reached Batch.BufferCap (the hard cap)
//   - the oldest buffered record's age reached Batch.Interval
type Batcher struct {
	pol     policy.Batch
	buf     *buffer.Buffer
	entries int
	first   time.Time
}

// NewBatcher builds a batcher around a normalized batch policy.
func NewBatcher(pol policy.Batch) *Batcher {
	return &Batcher{
		pol: pol,
		buf: batchPool.Get(),
	}
}

// Write appends encoded bytes; it is the io.Writer handed to encoders.
func (b *Batcher) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

// Note records that one more record finished encoding into the buffer.
func (b *Batcher) Note(now time.Time) {
	b.entries++
	if b.entries == 1 {
		b.first = now
	}
}

// Len returns the buffered byte count.
func (b *Batcher) Len() int { return b.buf.Len() }

// Entries returns the buffered record count.
func (b *Batcher) Entries() int { return b.entries }

// Bytes exposes the buffered batch. Valid until the next Write or Reset.
func (b *Batcher) Bytes() []byte { return b.buf.Bytes() }

// Full reports whether a size-based trigger fired.
func (b *Batcher) Full() bool {
	if b.buf.Len() >= b.pol.MaxBytes {
		return true
	}
	if b.pol.MaxEntries > 0 && b.entries >= b.pol.MaxEntries {
		return true
	}
	return b.buf.Len() >= b.pol.BufferCap
}

// Deadline returns the age-trigger instant, or the zero time while the
// batch is empty.
func (b *Batcher) Deadline() time.Time {
	if b.entries == 0 {
		return time.Time{}
	}
	return b.first.Add(b.pol.Interval)
}

// Interval returns the configured age threshold; the worker parks its
// receive with this bound when the batch is empty.
func (b *Batcher) Interval() time.Duration { return b.pol.Interval }

// Reset discards the buffered batch.
func (b *Batcher) Reset() {
	b.buf.Reset()
	b.entries = 0
	b.first = time.Time{}
}
