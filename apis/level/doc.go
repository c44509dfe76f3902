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

// Package level defines the logging severity type used across dcast.
//
// The intent of this package is to provide a small, stable set of levels
// (trace, debug, info, warn, error) together with canonical string
// representations and simple parsing/validation routines.
//
// The numeric ordering of levels is load-bearing twice: the broadcast
// dispatcher gates records with a single integer comparison against the
// atomic global filter, and the UDP sink serializes the level as one byte.
//
// Canonical forms are lowercase strings ("trace", "debug", ...). Keeping
// level formatting and parsing in this package ensures that every component
// of the system interprets configuration (including the DCAST_LOG
// environment variable) and serialized records in the same way.
package level
