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
	"context"
	"sync/atomic"
	"time"

	"dirpx.dev/dcast/apis/command"
	"dirpx.dev/dcast/apis/filter"
	"dirpx.dev/dcast/apis/health"
	asink "dirpx.dev/dcast/apis/sink"
	"dirpx.dev/dcast/apis/sink/policy"
	"dirpx.dev/dcast/runtime/encoder"
	"dirpx.dev/dcast/telemetry"
)

// Config assembles one worker.
type Config struct {
	// Name is the sink name, reused for health and metrics attribution.
	Name string

	// QueueCapacity bounds the command channel.
	QueueCapacity int

	// Backpressure selects the saturation behavior of Enqueue.
	Backpressure policy.Backpressure

	// Batch is the (already normalized) flush discipline.
	Batch policy.Batch

	// Filter, when non-nil, gates records at the sink's entry.
	Filter filter.Filter

	// Encoder renders records into the batch. Ignored when the sink
	// consumes records directly (asink.RecordSink).
	Encoder encoder.Encoder

	// Sink is the owned destination.
	Sink asink.Sink
}

// Worker owns exactly one sink, one batcher and the receive end of one
// bounded command channel. Producers reach it only through Enqueue; the
// run loop is the sole consumer and therefore the only goroutine that
// touches the sink.
type Worker struct {
	name  string
	ch    chan command.Command
	sink  asink.Sink
	enc   encoder.Encoder
	flt   filter.Filter
	bp    policy.Backpressure
	batch *Batcher

	// cached optional capabilities of the sink
	recordSink asink.RecordSink
	cmdSink    asink.CommandHandler

	done     chan struct{}
	disabled atomic.Bool
	lastErr  atomic.Pointer[error]

	accepted  atomic.Uint64
	dropped   atomic.Uint64
	discarded atomic.Uint64
}

// New builds a worker. Start launches its loop.
func New(cfg Config) *Worker {
	capacity := cfg.QueueCapacity
	if capacity <= 0 {
		capacity = policy.DefaultQueueCapacity
	}
	w := &Worker{
		name:  cfg.Name,
		ch:    make(chan command.Command, capacity),
		sink:  cfg.Sink,
		enc:   cfg.Encoder,
		flt:   cfg.Filter,
		batch: NewBatcher(cfg.Batch),
		done:  make(chan struct{}),
	}
	w.recordSink, _ = cfg.Sink.(asink.RecordSink)
	w.cmdSink, _ = cfg.Sink.(asink.CommandHandler)
	w.bp = cfg.Backpressure
	return w
}

// Start launches the run loop. Call exactly once.
func (w *Worker) Start() {
	go w.run()
}

// Name returns the sink name this worker serves.
func (w *Worker) Name() string { return w.name }

// Done is closed when the run loop has exited.
func (w *Worker) Done() <-chan struct{} { return w.done }

// Enqueue offers a command to the worker, applying the backpressure
// policy on a full queue. It reports whether the command was accepted.
//
// With the default drop-oldest policy the cost is bounded: one failed
// send, one eviction, one retry. Evicted or rejected commands have their
// barriers acknowledged so no flusher ever waits on a command that will
// never run.
func (w *Worker) Enqueue(cmd command.Command) bool {
	select {
	case <-w.done:
		// Sink gone: the dispatcher treats this as removal from the
		// fan-out set.
		cmd.Ack()
		return false
	default:
	}

	if w.bp == policy.BackpressureBlock {
		select {
		case w.ch <- cmd:
			return true
		case <-w.done:
			cmd.Ack()
			return false
		}
	}

	for attempt := 0; attempt < 2; attempt++ {
		select {
		case w.ch <- cmd:
			return true
		default:
		}
		if w.bp == policy.BackpressureDropNewest || attempt == 1 {
			break
		}
		// Drop-oldest: evict one pending command from this worker's
		// queue and retry. Racing producers may beat us to the slot,
		// hence the bounded retry instead of a loop.
		select {
		case old := <-w.ch:
			w.noteEvicted(old)
		default:
		}
	}

	w.noteEvicted(cmd)
	return false
}

// EnqueueSure delivers a command even on a saturated queue by blocking.
// The controller uses it for Shutdown, which must never be dropped.
func (w *Worker) EnqueueSure(cmd command.Command) bool {
	select {
	case w.ch <- cmd:
		return true
	case <-w.done:
		cmd.Ack()
		return false
	}
}

// noteEvicted accounts for a command that fell off the queue.
func (w *Worker) noteEvicted(cmd command.Command) {
	if cmd.Op == command.OpWrite {
		w.dropped.Add(1)
		telemetry.DroppedTotal.WithLabelValues(w.name).Inc()
	}
	cmd.Ack()
}

// run is the worker loop: block on the channel bounded by the batcher's
// age deadline, handle commands, flush on timeout.
func (w *Worker) run() {
	defer close(w.done)

	ctx := context.Background()
	timer := time.NewTimer(w.batch.Interval())
	defer timer.Stop()

	for {
		select {
		case cmd := <-w.ch:
			if w.handle(ctx, cmd) {
				return
			}
		case <-timer.C:
			// Age-triggered flush: emit without sync.
			if w.batch.Entries() > 0 {
				w.emit(ctx, false)
			}
		}

		// Re-arm against the current batch age.
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		next := w.batch.Interval()
		if dl := w.batch.Deadline(); !dl.IsZero() {
			next = time.Until(dl)
			if next < 0 {
				next = 0
			}
		}
		timer.Reset(next)
	}
}

// handle processes one command; true means the loop must exit.
func (w *Worker) handle(ctx context.Context, cmd command.Command) bool {
	switch cmd.Op {
	case command.OpWrite:
		w.write(ctx, cmd)

	case command.OpFlush:
		w.emit(ctx, true)
		cmd.Ack()

	case command.OpRotate, command.OpCompress:
		if w.cmdSink != nil && !w.disabled.Load() {
			if err := w.cmdSink.HandleCommand(ctx, cmd); err != nil {
				w.disable(err)
			}
		}

	case command.OpShutdown:
		w.drain(ctx)
		w.emit(ctx, true)
		_ = w.sink.Close(ctx)
		cmd.Ack()
		return true
	}
	return false
}

// write renders one record into the batch (or hands it to a record sink)
// and applies the size triggers.
func (w *Worker) write(ctx context.Context, cmd command.Command) {
	r := cmd.Record
	if r == nil {
		return
	}
	if w.disabled.Load() {
		// Drain-and-discard: the sink failed earlier in this process;
		// keep consuming so producers never notice.
		w.discarded.Add(1)
		telemetry.DiscardedTotal.WithLabelValues(w.name).Inc()
		return
	}
	if w.flt != nil && w.flt.Decide(r) == filter.Drop {
		return
	}
	w.accepted.Add(1)

	if w.recordSink != nil {
		// One datagram per record; no batching inside the framed protocol.
		_ = w.recordSink.WriteRecord(ctx, cmd)
		return
	}

	if err := w.enc.Encode(r, w.batch); err != nil {
		w.disable(err)
		return
	}
	w.batch.Note(time.Now())

	if w.batch.Full() {
		w.emit(ctx, false)
	}
}

// emit hands the buffered batch to the sink and optionally syncs.
func (w *Worker) emit(ctx context.Context, sync bool) {
	if w.disabled.Load() {
		w.batch.Reset()
		return
	}
	if w.batch.Entries() > 0 {
		if err := w.sink.Emit(ctx, w.batch.Bytes()); err != nil {
			w.batch.Reset()
			w.disable(err)
			return
		}
		telemetry.BatchesTotal.Inc()
		w.batch.Reset()
	}
	if sync {
		if err := w.sink.Sync(ctx); err != nil {
			w.disable(err)
		}
	}
}

// drain consumes whatever is already queued, with bounded effort: only as
// many commands as the queue held when the shutdown arrived.
func (w *Worker) drain(ctx context.Context) {
	for n := len(w.ch); n > 0; n-- {
		select {
		case cmd := <-w.ch:
			switch cmd.Op {
			case command.OpWrite:
				w.write(ctx, cmd)
			case command.OpFlush:
				w.emit(ctx, false)
				cmd.Ack()
			default:
				cmd.Ack()
			}
		default:
			return
		}
	}
}

// disable puts the worker into drain-and-discard for the rest of the
// process. Producers never see the failure; the health checker is where
// it becomes visible.
func (w *Worker) disable(err error) {
	w.lastErr.Store(&err)
	w.disabled.Store(true)
	w.batch.Reset()
}

// Disabled reports whether the sink was turned off by an IO failure.
func (w *Worker) Disabled() bool { return w.disabled.Load() }

// Dropped reports records evicted under backpressure.
func (w *Worker) Dropped() uint64 { return w.dropped.Load() }

// Checker exposes the worker's state as a health check.
func (w *Worker) Checker() health.Checker {
	return health.CheckFunc(func(ctx context.Context) (health.Result, error) {
		res := health.Result{
			Name:       w.name,
			Status:     health.StatusHealthy,
			ObservedAt: time.Now(),
			Details: map[string]any{
				"queue_len": len(w.ch),
				"accepted":  w.accepted.Load(),
				"dropped":   w.dropped.Load(),
				"discarded": w.discarded.Load(),
			},
		}
		switch {
		case w.disabled.Load():
			res.Status = health.StatusUnhealthy
			if p := w.lastErr.Load(); p != nil {
				res.Error = *p
			}
		case w.dropped.Load() > 0:
			res.Status = health.StatusDegraded
		}
		return res, nil
	})
}
