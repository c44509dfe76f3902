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

// Package record defines the canonical log entry shape used across dcast.
//
// This package intentionally contains only stable, minimal data structures
// and helper methods. It performs no I/O, encoding, buffering, or queueing;
// those concerns live under runtime/.
//
// # Record contract
//
// Record represents a single log event. It carries:
//   - Level:     severity (see apis/level)
//   - Target:    short symbolic path of the emitter
//   - Message:   rendered text
//   - Module/File/Line: optional call-site metadata (see Here)
//   - AuthToken/AppID:  optional network identity for remote receivers
//   - Time:      UTC event time, fixed at creation
//
// # Sharing
//
// A broadcast hands the same *Record to every registered sink worker.
// Producers must therefore never mutate a record after passing it to the
// dispatcher, and workers must treat it as read-only. The garbage collector
// reclaims the record once the last worker has consumed its command.
//
// # Separation of concerns
//
//   - Rendering (templates, JSON) is defined by runtime encoders.
//   - Filtering (level gate, target skip) is performed via apis/filter.
//   - Delivery is handled by sinks (see apis/sink), which accept
//     already-encoded bytes.
package record
