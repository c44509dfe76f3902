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

package policy

import "time"

// Retry describes how a worker retries a failed sink operation before it
// gives up and disables the sink for the rest of the process.
//
// The only operation retried today is file rotation (one immediate
// attempt by default); ordinary emit failures disable the sink without
// retry, because a destination that rejects appends rarely recovers
// within a record's useful lifetime.
type Retry struct {
	// MaxRetries is the number of additional attempts after the first
	// failure. Zero selects one retry; negative values disable retries.
	MaxRetries int

	// Delay is the pause between attempts. Zero retries immediately.
	Delay time.Duration
}

// Normalize fills the default retry count and clamps a negative delay.
func (r Retry) Normalize() Retry {
	if r.MaxRetries == 0 {
		r.MaxRetries = 1
	}
	if r.Delay < 0 {
		r.Delay = 0
	}
	return r
}
