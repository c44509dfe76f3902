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

// Package sink defines the contract between dcast's per-sink workers and
// the concrete destinations (terminal, rotating file, UDP).
//
// The capability set is intentionally small: Emit(bytes), Sync, Close,
// plus two optional extensions — CommandHandler for sinks that react to
// rotate/compress commands, and RecordSink for sinks that serialize the
// record themselves instead of consuming encoder output.
//
// Sinks never see the broadcast; they are driven by exactly one worker
// goroutine and may rely on that for their internal state.
package sink
