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

package record

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"dirpx.dev/dcast/apis/level"
)

// Record is the canonical log event shape inside dcast.
//
// A Record is created once, on the producer goroutine, and is then shared
// by pointer among every sink worker of a single broadcast. After creation
// it must be treated as immutable: N-way fan-out is N pointer copies, never
// N record copies.
type Record struct {
	// Level defines the severity.
	Level level.Level
	// Target is the short symbolic path of the emitter (e.g. "engine::net").
	Target string
	// Message is the rendered, human-readable text.
	Message string

	// Module is the import path of the call site, when captured.
	Module string
	// File is the base name of the source file, when captured.
	File string
	// Line is the source line, when captured. Zero means "not captured".
	Line int

	// AuthToken authenticates the record towards a remote receiver.
	// Only the UDP sink reads it; empty for local-only setups.
	AuthToken string
	// AppID identifies the emitting application towards a remote receiver.
	AppID string

	// Time is the event time in UTC, fixed at creation so that every sink
	// formats the same instant regardless of when its worker drains it.
	Time time.Time
}

// New builds a Record with the required parts and stamps the current UTC time.
// Site metadata (module/file/line) and network identity are attached by the
// caller when available; see Here for call-site capture.
func New(lvl level.Level, target, msg string) *Record {
	return &Record{
		Level:   lvl,
		Target:  target,
		Message: msg,
		Time:    time.Now().UTC(),
	}
}

// Validate checks that the record has a valid level and a non-zero timestamp.
// Runtime components may add stricter rules on top (e.g. non-empty target).
func (r *Record) Validate() error {
	if err := r.Level.Validate(); err != nil {
		return fmt.Errorf("dcast: invalid record level: %w", err)
	}
	if r.Time.IsZero() {
		return fmt.Errorf("dcast: record time is zero")
	}
	return nil
}

// HasSite reports whether call-site metadata was captured for this record.
func (r *Record) HasSite() bool {
	return r.File != "" || r.Line != 0
}

// Site describes a resolved call site.
type Site struct {
	Module string
	File   string
	Line   int
}

// Here resolves the call site skip frames above the caller.
//
// The returned module is the package path portion of the enclosing function
// (e.g. "dirpx.dev/dcast/runtime/broadcast"), the file is reduced to its
// base name. A zero Site is returned when the runtime cannot resolve the
// frame; records then simply carry no site metadata.
func Here(skip int) Site {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Site{}
	}
	s := Site{
		File: filepath.Base(file),
		Line: line,
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		s.Module = packagePath(fn.Name())
	}
	return s
}

// packagePath strips the function and receiver parts from a runtime
// function name, leaving the import path.
//
//	"dirpx.dev/dcast/runtime/broadcast.(*dispatcher).Log" ->
//	"dirpx.dev/dcast/runtime/broadcast"
func packagePath(fn string) string {
	// The package path may contain dots (domain), but the last slash-free
	// segment always starts after the final '/'.
	slash := strings.LastIndexByte(fn, '/')
	dot := strings.IndexByte(fn[slash+1:], '.')
	if dot < 0 {
		return fn
	}
	return fn[:slash+1+dot]
}
