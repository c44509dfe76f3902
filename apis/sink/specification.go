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

import "dirpx.dev/dcast/apis/sink/policy"

// Specification is an immutable snapshot of one sink's configuration.
//
// It is produced by the builder surface (or the config package) and
// consumed by sink builders at install time. Generic knobs live directly
// on the struct; sink-specific parameters live in the optional File and
// UDP sub-specs, mirroring how the batch and rotation policies are
// optional per kind.
type Specification struct {
	// Name is the unique identifier of the sink.
	Name string

	// Kind selects the registered builder ("terminal", "file", "udp").
	Kind string

	// QueueCapacity defines how many commands the sink's channel buffers
	// before the backpressure policy applies. Zero selects the per-kind
	// default (policy.DefaultQueueCapacity; UDP uses the smaller
	// policy.DefaultUDPQueueCapacity).
	QueueCapacity int

	// Backpressure defines the saturation behavior of the sink's queue.
	Backpressure policy.Backpressure

	// Batch describes the flush discipline of the sink's worker.
	Batch policy.Batch

	// Retry describes how failed rotations are retried.
	Retry policy.Retry

	// Format configures the sink's encoder. The zero value selects the
	// default text template without color.
	Format Format

	// Rotation is set for file sinks only.
	Rotation *policy.Rotation

	// File carries file-sink parameters; nil for other kinds.
	File *FileSpec

	// UDP carries network-sink parameters; nil for other kinds.
	UDP *UDPSpec

	// Labels is an optional set of key/value labels used for diagnostics
	// and metrics attribution (for example: {"kind":"terminal"}).
	Labels map[string]string
}

// Format selects and parameterizes the sink's encoder.
type Format struct {
	// Encoder names the encoder implementation: "template" (default)
	// or "json".
	Encoder string

	// Template is the line template for the template encoder, e.g.
	// "[{timestamp}] [{level}] [{target}] {message}". Empty selects the
	// encoder's default. Unrecognized placeholders stay literal.
	Template string

	// Timestamp is the strftime-style layout for {timestamp}.
	// Empty selects the encoder's default.
	Timestamp string

	// Colored wraps placeholders in ANSI sequences using the encoder's
	// palette. Only meaningful for the template encoder.
	Colored bool
}

// FileSpec carries the file sink's on-disk parameters.
type FileSpec struct {
	// Dir is the log directory. The live file is Dir/app.log; retired
	// segments and archives live next to it.
	Dir string

	// Raw bypasses the encoder and writes each record's message bytes
	// verbatim, one line per record. Used for pre-formatted streams.
	Raw bool

	// SkipTargetPrefix drops records whose target starts with this
	// prefix at the sink's entry. Empty disables the filter; the
	// conventional value is "server".
	SkipTargetPrefix string
}

// UDPSpec carries the network sink's parameters.
type UDPSpec struct {
	// Addr is the receiver's host:port.
	Addr string

	// AuthToken is prepended to every datagram.
	AuthToken string

	// AppID identifies the emitting application to the receiver.
	AppID string
}
