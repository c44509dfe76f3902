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

// Package filter defines the small Pass/Drop contract used wherever dcast
// decides whether a record continues towards a sink.
//
// There are exactly two built-in filters: MinLevel (the per-sink variant of
// the dispatcher's global level gate) and TargetPrefix (the file sink's
// skip-server-logs switch). The contract is deliberately tiny; record
// mutation or enrichment is not a filter concern.
package filter
