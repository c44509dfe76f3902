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

package filter

import (
	"strings"

	"dirpx.dev/dcast/apis/level"
	"dirpx.dev/dcast/apis/record"
)

// Decision tells the caller what to do with the current record.
// The component that evaluates filters owns the control flow; a filter
// only returns one of these.
type Decision uint8

const (
	// Pass means the record should continue towards the sink.
	Pass Decision = iota

	// Drop means the record should be discarded. Dropping is silent by
	// design; callers that care keep their own counters.
	Drop
)

// Filter decides whether a record is allowed through. Implementations must
// be safe for concurrent use and must not mutate the record.
type Filter interface {
	// Decide inspects the record and returns Pass or Drop.
	Decide(r *record.Record) Decision
}

// Func is an adapter to allow ordinary functions as Filter implementations.
type Func func(r *record.Record) Decision

// Decide calls f(r).
func (f Func) Decide(r *record.Record) Decision {
	return f(r)
}

// MinLevel returns a filter that drops records below min. This is the same
// comparison the dispatcher performs against its atomic global level; the
// filter form exists for per-sink tightening.
func MinLevel(min level.Level) Filter {
	return Func(func(r *record.Record) Decision {
		if r.Level.Enables(min) {
			return Pass
		}
		return Drop
	})
}

// TargetPrefix returns a filter that drops records whose target starts with
// prefix. It backs the file sink's skip-server-logs convenience switch; it
// is a routing aid, not a security boundary.
func TargetPrefix(prefix string) Filter {
	return Func(func(r *record.Record) Decision {
		if prefix != "" && strings.HasPrefix(r.Target, prefix) {
			return Drop
		}
		return Pass
	})
}

// All composes filters; the record passes only if every filter passes.
// Nil entries are skipped. An empty chain passes everything.
func All(filters ...Filter) Filter {
	return Func(func(r *record.Record) Decision {
		for _, f := range filters {
			if f == nil {
				continue
			}
			if f.Decide(r) == Drop {
				return Drop
			}
		}
		return Pass
	})
}
