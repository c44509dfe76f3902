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

package dcast

import (
	"context"

	abroadcast "dirpx.dev/dcast/apis/broadcast"
	"dirpx.dev/dcast/apis/level"
	asink "dirpx.dev/dcast/apis/sink"
	"dirpx.dev/dcast/apis/sink/policy"
	"dirpx.dev/dcast/runtime/broadcast"
)

// Builder assembles a pipeline specification fluently. Every method
// returns the builder for chaining; Build or Install finish the job.
//
// The builder is not safe for concurrent use, which is fine: it runs once
// during startup, on one goroutine.
type Builder struct {
	spec        abroadcast.Specification
	target      string
	authToken   string
	appID       string
	captureSite bool
}

// New starts a builder with the defaults: info level, environment
// override enabled, asynchronous operation, call-site capture on.
func New() *Builder {
	return &Builder{
		spec: abroadcast.Specification{
			Level:        level.Info,
			LevelFromEnv: true,
		},
		captureSite: true,
	}
}

// Level sets the global filter and disables the environment override.
func (b *Builder) Level(lvl level.Level) *Builder {
	b.spec.Level = lvl
	b.spec.LevelFromEnv = false
	return b
}

// LevelFromEnv re-enables the DCAST_LOG override on top of an explicit
// level.
func (b *Builder) LevelFromEnv() *Builder {
	b.spec.LevelFromEnv = true
	return b
}

// DevMode makes every log call drain all sinks before returning.
func (b *Builder) DevMode() *Builder {
	b.spec.DevMode = true
	return b
}

// Sync forces the synchronous batch parameters onto every sink.
func (b *Builder) Sync() *Builder {
	b.spec.Sync = true
	return b
}

// Async is the explicit spelling of the default operating mode.
func (b *Builder) Async() *Builder {
	b.spec.Sync = false
	return b
}

// Target sets the default target for records logged without one, used
// when call-site capture is off (or fails to resolve).
func (b *Builder) Target(target string) *Builder {
	b.target = target
	return b
}

// Identity attaches the network identity carried on every record; the
// UDP sink prepends it to each datagram.
func (b *Builder) Identity(authToken, appID string) *Builder {
	b.authToken = authToken
	b.appID = appID
	return b
}

// WithoutCallSite disables runtime.Caller capture on the hot path.
func (b *Builder) WithoutCallSite() *Builder {
	b.captureSite = false
	return b
}

// WithTerminal adds a stdout sink with the given format.
func (b *Builder) WithTerminal(format asink.Format) *Builder {
	return b.WithSink(asink.Specification{
		Name:   "terminal",
		Kind:   "terminal",
		Format: format,
	})
}

// WithFile adds a rotating file sink. The zero rotation selects all
// defaults (10 MiB segments, 5 archives, lz4 level 4, 2 compressors).
func (b *Builder) WithFile(fs asink.FileSpec, rot policy.Rotation) *Builder {
	return b.WithSink(asink.Specification{
		Name:     "file",
		Kind:     "file",
		Rotation: &rot,
		File:     &fs,
	})
}

// WithUDP adds the datagram sink.
func (b *Builder) WithUDP(us asink.UDPSpec) *Builder {
	return b.WithSink(asink.Specification{
		Name: "udp",
		Kind: "udp",
		UDP:  &us,
	})
}

// WithSink adds a fully specified sink; the escape hatch for per-sink
// queue, batch, backpressure and retry tuning.
func (b *Builder) WithSink(spec asink.Specification) *Builder {
	b.spec.Sinks = append(b.spec.Sinks, spec)
	return b
}

// Specification returns a copy of the accumulated specification.
func (b *Builder) Specification() abroadcast.Specification {
	out := b.spec
	out.Sinks = append([]asink.Specification(nil), b.spec.Sinks...)
	return out
}

// Build constructs a running pipeline and returns a Logger bound to it,
// without touching the process-wide slot. The caller owns teardown via
// the logger's Shutdown method; Install is the global path.
func (b *Builder) Build(ctx context.Context) (*Logger, error) {
	ctl, err := broadcast.NewBuilder().Build(ctx, b.spec)
	if err != nil {
		return nil, err
	}
	return &Logger{
		ctl:         ctl,
		target:      b.target,
		authToken:   b.authToken,
		appID:       b.appID,
		captureSite: b.captureSite,
	}, nil
}

// Install builds the pipeline and installs it as the process-wide
// default. Fails with broadcast.ErrAlreadyInstalled when a pipeline is
// already in place; the freshly built pipeline is torn down again in that
// case.
//
// The returned logger and the package-level functions share the same
// configuration: installing publishes the logger itself, not just its
// controller, so Target, Identity and call-site settings apply to both.
func (b *Builder) Install(ctx context.Context) (*Logger, error) {
	logger, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	if err := broadcast.Install(logger.ctl); err != nil {
		_ = logger.ctl.Shutdown(ctx)
		return nil, err
	}
	// The controller slot is set-once, so exactly one Install ever
	// reaches this store.
	globalLogger.Store(logger)
	return logger, nil
}

// Shutdown tears down this logger's own pipeline. For the installed
// global, use the package-level Shutdown.
func (l *Logger) Shutdown(ctx context.Context) error {
	return l.ctl.Shutdown(ctx)
}
