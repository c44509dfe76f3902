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

// Package file implements the rotating, compressing, retention-bounded
// file sink.
//
// Layout inside the log directory:
//
//	app.log                     the live append target
//	app.20250301-123456.log     a retired segment awaiting compression
//	app.20250301-123456.log.lz4 a compressed archive in the retention ring
//
// The writer state machine is single-threaded (driven by the sink's
// worker); compression runs on a small fixed pool and touches only the
// retired segments and the mutex-guarded archive ring. Rotation happens
// before a write that would cross the size threshold, so the triggering
// batch always lands in the fresh file. Archives become visible under
// their final name only after a temp-write, sync and rename.
package file
