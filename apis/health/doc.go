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

// Package health provides a small health-reporting contract for the
// logging pipeline. Each sink worker exposes a Checker describing its
// current state (healthy, degraded after drops, unhealthy once disabled);
// the lifecycle controller aggregates them into a single Report.
//
// Failed log writes never surface to producers, so this package is the
// one place where an operator can observe that a sink went dark.
package health
