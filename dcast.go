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

// Package dcast is the public facade of the broadcast logger: a fluent
// builder, a Logger type, and package-level logging functions bound to
// the process-wide installed pipeline.
//
// Quick start:
//
//	logger, err := dcast.New().
//		Level(level.Info).
//		WithTerminal(sink.Format{Colored: true}).
//		WithFile(sink.FileSpec{Dir: "/var/log/myapp"}, policy.Rotation{}).
//		Install(ctx)
//	if err != nil { ... }
//	defer dcast.Shutdown(ctx)
//
//	dcast.Info("listening on %s", addr)
//
// Emit paths never return errors; see apis.Logger for the contract.
package dcast

import (
	"context"
	"fmt"
	"sync/atomic"

	"dirpx.dev/dcast/apis"
	abroadcast "dirpx.dev/dcast/apis/broadcast"
	"dirpx.dev/dcast/apis/health"
	"dirpx.dev/dcast/apis/level"
	"dirpx.dev/dcast/apis/record"
	"dirpx.dev/dcast/runtime/broadcast"

	// Register the built-in sinks.
	_ "dirpx.dev/dcast/runtime/sink/file"
	_ "dirpx.dev/dcast/runtime/sink/terminal"
	_ "dirpx.dev/dcast/runtime/sink/udp"
)

// Compile-time check: *Logger implements the apis contracts.
var (
	_ apis.Logger       = (*Logger)(nil)
	_ apis.TargetLogger = (*Logger)(nil)
)

// Logger binds the producer surface to one controller. The zero value is
// unusable; construct through the Builder.
type Logger struct {
	ctl abroadcast.Controller

	target      string
	authToken   string
	appID       string
	captureSite bool
}

// Enabled reports whether lvl passes the global filter.
func (l *Logger) Enabled(lvl level.Level) bool {
	return l.ctl.Enabled(lvl)
}

// Trace logs a trace-level message.
func (l *Logger) Trace(format string, args ...any) { l.emit(level.Trace, "", format, args) }

// Debug logs a debug-level message.
func (l *Logger) Debug(format string, args ...any) { l.emit(level.Debug, "", format, args) }

// Info logs an info-level message.
func (l *Logger) Info(format string, args ...any) { l.emit(level.Info, "", format, args) }

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) { l.emit(level.Warn, "", format, args) }

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) { l.emit(level.Error, "", format, args) }

// Log emits a record with an explicit level and target.
func (l *Logger) Log(lvl level.Level, target, format string, args ...any) {
	l.emit(lvl, target, format, args)
}

// Flush pushes buffered records towards all sinks; see apis.Logger.
func (l *Logger) Flush(ctx context.Context) error {
	return l.ctl.Flush(ctx)
}

// WithTarget returns a derived logger whose records carry the given target.
func (l *Logger) WithTarget(target string) apis.Logger {
	out := *l
	out.target = target
	return &out
}

// Health reports the per-sink health of the underlying pipeline.
func (l *Logger) Health(ctx context.Context) health.Report {
	if hc, ok := l.ctl.(interface {
		Health(context.Context) health.Report
	}); ok {
		return hc.Health(ctx)
	}
	return health.Report{Status: health.StatusUnknown}
}

// emit is the single construction point for records. The level gate runs
// before the message is rendered, so disabled levels cost one atomic load.
func (l *Logger) emit(lvl level.Level, target, format string, args []any) {
	if !l.ctl.Enabled(lvl) {
		return
	}

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	r := record.New(lvl, target, msg)
	if l.captureSite {
		site := record.Here(2) // skip emit and the leveled wrapper
		r.Module, r.File, r.Line = site.Module, site.File, site.Line
		if r.Target == "" {
			r.Target = site.Module
		}
	}
	if r.Target == "" {
		r.Target = l.target
	}
	r.AuthToken = l.authToken
	r.AppID = l.appID

	l.ctl.Log(r)
}

// --- package-level surface over the installed global ---

// globalLogger carries the fully configured Logger produced by
// Builder.Install, so the package-level functions see the same target,
// identity and call-site settings as the returned logger. The underlying
// controller slot in runtime/broadcast stays the set-once authority.
var globalLogger atomic.Pointer[Logger]

// installed returns the global logger surface, or nil when none is in
// place. Pre-install logging is a silent no-op by contract.
//
// A pipeline installed through Builder.Install is returned with its full
// builder configuration. The fallback covers controllers installed
// directly via runtime/broadcast, which carry no facade config; those
// get the defaults.
func installed() *Logger {
	if l := globalLogger.Load(); l != nil {
		return l
	}
	ctl, ok := broadcast.Installed()
	if !ok {
		return nil
	}
	return &Logger{ctl: ctl, captureSite: true}
}

// Enabled reports whether lvl would be logged by the installed pipeline.
func Enabled(lvl level.Level) bool {
	if l := installed(); l != nil {
		return l.Enabled(lvl)
	}
	return false
}

// Trace logs through the installed pipeline.
func Trace(format string, args ...any) {
	if l := installed(); l != nil {
		l.emit(level.Trace, "", format, args)
	}
}

// Debug logs through the installed pipeline.
func Debug(format string, args ...any) {
	if l := installed(); l != nil {
		l.emit(level.Debug, "", format, args)
	}
}

// Info logs through the installed pipeline.
func Info(format string, args ...any) {
	if l := installed(); l != nil {
		l.emit(level.Info, "", format, args)
	}
}

// Warn logs through the installed pipeline.
func Warn(format string, args ...any) {
	if l := installed(); l != nil {
		l.emit(level.Warn, "", format, args)
	}
}

// Error logs through the installed pipeline.
func Error(format string, args ...any) {
	if l := installed(); l != nil {
		l.emit(level.Error, "", format, args)
	}
}

// Flush pushes buffered records towards all sinks of the installed
// pipeline.
func Flush(ctx context.Context) error {
	if l := installed(); l != nil {
		return l.Flush(ctx)
	}
	return nil
}

// Shutdown tears down the installed pipeline: drain, flush, compress on
// drop, join. The process should call it exactly once on exit; it blocks
// until outstanding compression finished.
func Shutdown(ctx context.Context) error {
	ctl, ok := broadcast.Installed()
	if !ok {
		return nil
	}
	return ctl.Shutdown(ctx)
}
