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
	"sync"
	"sync/atomic"

	abroadcast "dirpx.dev/dcast/apis/broadcast"
	"dirpx.dev/dcast/apis/command"
	"dirpx.dev/dcast/apis/health"
	"dirpx.dev/dcast/apis/level"
	"dirpx.dev/dcast/apis/record"
	"dirpx.dev/dcast/runtime/worker"
	"dirpx.dev/dcast/telemetry"
)

// Compile-time check: *Controller implements the apis contract.
var _ abroadcast.Controller = (*Controller)(nil)

// Controller is the broadcast front end plus the lifecycle owner of the
// worker set.
//
// The fan-out path takes no lock: the worker slice is immutable after
// Build, the level gate is an atomic, and each worker's channel applies
// its own backpressure. A worker whose loop has exited is skipped, which
// is how a "sink gone" condition removes it from the fan-out set without
// coordination.
type Controller struct {
	lvl     atomic.Int32
	devMode atomic.Bool

	workers []*worker.Worker
	agg     *health.Aggregator

	shutdownOnce sync.Once
	shutdownErr  error
}

func newController(lvl level.Level, devMode bool, workers []*worker.Worker) *Controller {
	c := &Controller{
		workers: workers,
		agg:     health.NewAggregator(),
	}
	c.lvl.Store(int32(lvl))
	c.devMode.Store(devMode)
	for _, w := range workers {
		c.agg.Add(w.Name(), w.Checker())
	}
	return c
}

// Enabled reports whether lvl passes the global filter. Wait-free.
func (c *Controller) Enabled(lvl level.Level) bool {
	return lvl.Enables(level.Level(c.lvl.Load()))
}

// Log publishes one shared record to every live sink worker. Saturated
// workers evict their oldest pending command instead of blocking the
// producer; exited workers are skipped. In dev-mode the call additionally
// drains every sink before returning.
func (c *Controller) Log(r *record.Record) {
	if r == nil || !c.Enabled(r.Level) {
		return
	}
	telemetry.AcceptedTotal.Inc()

	cmd := command.Write(r)
	for _, w := range c.workers {
		w.Enqueue(cmd)
	}

	if c.devMode.Load() {
		_ = c.flushWait(context.Background())
	}
}

// Flush enqueues a flush on every worker. In dev-mode it blocks until all
// workers acknowledged; otherwise it returns immediately.
func (c *Controller) Flush(ctx context.Context) error {
	if c.devMode.Load() {
		return c.flushWait(ctx)
	}
	for _, w := range c.workers {
		w.Enqueue(command.Flush(nil))
	}
	return nil
}

// flushWait broadcasts barrier flushes and waits for each. Barriers of
// commands that were evicted (or targeted an exited worker) are
// acknowledged at the point of eviction; a worker that exits with the
// command still queued releases its waiter through Done. The wait
// therefore always terminates as long as workers make progress.
func (c *Controller) flushWait(ctx context.Context) error {
	barriers := make([]chan struct{}, len(c.workers))
	for i, w := range c.workers {
		barriers[i] = command.NewBarrier()
		w.Enqueue(command.Flush(barriers[i]))
	}
	for i, w := range c.workers {
		select {
		case <-barriers[i]:
		case <-w.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// DevMode toggles the deterministic drain behavior. The builder sets it
// from the specification; tests flip it at will.
func (c *Controller) DevMode(on bool) {
	c.devMode.Store(on)
}

// Shutdown drives the ordered teardown: every worker receives a
// guaranteed Shutdown command, drains, closes its sink (for the file sink
// that includes emptying the compression queue), and exits. The first
// call wins; later calls return the first call's result.
func (c *Controller) Shutdown(ctx context.Context) error {
	c.shutdownOnce.Do(func() {
		for _, w := range c.workers {
			w.EnqueueSure(command.Shutdown(nil))
		}
		for _, w := range c.workers {
			select {
			case <-w.Done():
			case <-ctx.Done():
				c.shutdownErr = ctx.Err()
				return
			}
		}
	})
	return c.shutdownErr
}

// Health runs all worker checkers and returns the aggregated report.
func (c *Controller) Health(ctx context.Context) health.Report {
	return c.agg.Run(ctx)
}
