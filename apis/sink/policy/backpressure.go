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

// Backpressure defines what the dispatcher does when a sink's command
// queue is full. The policy is applied per sink: a saturated sink never
// stalls producers or its sibling sinks.
type Backpressure uint8

const (
	// BackpressureDropOldest evicts the oldest pending command (of any
	// kind, usually a write) on the affected sink's queue to make room for
	// the new one; an evicted flush acknowledges its barrier. This is the
	// broadcast default: producers stay on a bounded, non-blocking path
	// and the sink keeps the freshest records it can.
	BackpressureDropOldest Backpressure = iota

	// BackpressureDropNewest drops the incoming record immediately.
	// Implementations should record this in their drop counters.
	BackpressureDropNewest

	// BackpressureBlock blocks the producer until there is free space.
	// Only suitable for tooling that prefers completeness over latency.
	BackpressureBlock
)
