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

// Package broadcast implements the dispatcher front end, the lifecycle
// controller and the set-once global installation slot.
//
// The hot path is Log: one atomic level comparison, then one bounded
// enqueue per sink. A saturated sink evicts its own oldest pending command;
// an exited sink acknowledges and refuses. Producers never block beyond
// that and never see errors.
//
// Dev-mode turns the same pipeline deterministic: each Log (and each
// Flush) broadcasts barrier flushes and waits for every worker's
// acknowledgement, which is what CLI tools and tests want and what
// production throughput does not.
package broadcast
