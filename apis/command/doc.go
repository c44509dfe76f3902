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

// Package command defines the tagged values exchanged between the broadcast
// dispatcher and per-sink workers.
//
// Each sink owns one bounded channel of Command values. The dispatcher only
// ever holds the sender ends; the worker is the single consumer. A Write
// command carries a *record.Record shared across all sinks of one broadcast,
// which makes fan-out O(sinks) in pointer copies.
//
// Flush and Shutdown may carry a one-shot Barrier channel. The worker closes
// the barrier after it has committed the requested work, which is how
// dev-mode turns an asynchronous pipeline into a deterministic one.
package command
