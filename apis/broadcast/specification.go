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
	"dirpx.dev/dcast/apis/level"
	"dirpx.dev/dcast/apis/sink"
	"dirpx.dev/dcast/apis/sink/policy"
)

// Specification is a declarative description of the whole logging
// pipeline: the global filter, the operating mode, and one specification
// per sink. It does not execute anything, it is just data; the runtime
// builder turns it into a live Controller.
type Specification struct {
	// Level is the global filter. When LevelFromEnv is set and the
	// DCAST_LOG environment variable holds a recognized value, the
	// variable wins.
	Level level.Level `json:"level" yaml:"level"`

	// LevelFromEnv permits the environment to override Level once, at
	// install time.
	LevelFromEnv bool `json:"level_from_env,omitempty" yaml:"level_from_env,omitempty"`

	// DevMode makes every Log call drain all sinks before returning.
	// Meant for tests and CLI tools; documented as hostile to throughput.
	DevMode bool `json:"dev_mode,omitempty" yaml:"dev_mode,omitempty"`

	// Sync forces the synchronous batch parameters onto every sink
	// (policy.Synchronous), so each record is emitted promptly.
	Sync bool `json:"sync,omitempty" yaml:"sync,omitempty"`

	// Sinks lists the destinations to fan out to. At least one is
	// required.
	Sinks []sink.Specification `json:"sinks" yaml:"sinks"`
}

// Normalize applies the operating mode to the per-sink batch parameters
// and fills defaulted fields. It returns a deep-enough copy; the input is
// left untouched.
func (s Specification) Normalize() Specification {
	out := s
	out.Sinks = make([]sink.Specification, len(s.Sinks))
	copy(out.Sinks, s.Sinks)

	for i := range out.Sinks {
		if out.Sync {
			out.Sinks[i].Batch = policy.Synchronous()
		} else {
			out.Sinks[i].Batch = out.Sinks[i].Batch.Normalize()
		}
		out.Sinks[i].Retry = out.Sinks[i].Retry.Normalize()
	}
	return out
}
