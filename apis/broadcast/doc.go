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

// Package broadcast defines the contracts of dcast's front end: the
// Broadcaster that fans records out to sink workers, the Controller that
// owns their lifecycle, and the declarative Specification the runtime
// builder consumes.
//
// Ownership is strictly one-directional to avoid cycles: the controller
// owns workers, workers own sinks and the receive ends of their channels,
// and the dispatcher holds only sender ends. Nothing points back.
package broadcast
