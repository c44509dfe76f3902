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

// Package telemetry holds dcast's internal counters as Prometheus
// collectors. The pipeline increments them unconditionally (an
// unregistered prometheus counter is a few atomic adds), but nothing is
// exported until the host application opts in via Enable.
//
// Only global counters are defined — no per-record labels, so cardinality
// stays fixed no matter how hot the log path runs.
package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// AcceptedTotal counts records that passed the global level filter.
	AcceptedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dcast_records_accepted_total",
		Help: "Records accepted by the broadcast dispatcher",
	})

	// DroppedTotal counts records evicted or discarded under backpressure,
	// attributed to the saturated sink.
	DroppedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dcast_records_dropped_total",
		Help: "Records dropped under backpressure, per sink",
	}, []string{"sink"})

	// DiscardedTotal counts records routed to a sink after it was
	// disabled by an IO failure.
	DiscardedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dcast_records_discarded_total",
		Help: "Records discarded by disabled sinks, per sink",
	}, []string{"sink"})

	// BatchesTotal counts batch emits across all sinks.
	BatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dcast_batches_emitted_total",
		Help: "Batches handed to sinks",
	})

	// RotationsTotal counts file segment rotations.
	RotationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dcast_file_rotations_total",
		Help: "File sink segment rotations",
	})

	// ArchivesTotal counts successfully compressed segments.
	ArchivesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dcast_file_archives_total",
		Help: "Retired segments compressed into archives",
	})

	// ArchivesPrunedTotal counts archives unlinked by retention.
	ArchivesPrunedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dcast_file_archives_pruned_total",
		Help: "Archives removed by the retention ring",
	})

	// CompressFailuresTotal counts failed compression attempts; the raw
	// segment stays on disk in that case.
	CompressFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dcast_file_compress_failures_total",
		Help: "Failed segment compressions",
	})

	// SendFailuresTotal counts UDP datagrams that could not be sent.
	SendFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dcast_udp_send_failures_total",
		Help: "UDP datagrams dropped on send failure",
	})
)

var enableOnce sync.Once

// Enable registers all dcast collectors with the given registerer (pass
// prometheus.DefaultRegisterer for the usual setup). Safe to call more
// than once; only the first call registers.
func Enable(reg prometheus.Registerer) {
	enableOnce.Do(func() {
		reg.MustRegister(
			AcceptedTotal,
			DroppedTotal,
			DiscardedTotal,
			BatchesTotal,
			RotationsTotal,
			ArchivesTotal,
			ArchivesPrunedTotal,
			CompressFailuresTotal,
			SendFailuresTotal,
		)
	})
}
