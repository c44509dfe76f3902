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

package broadcast

import (
	"context"
	"errors"
	"fmt"

	abroadcast "dirpx.dev/dcast/apis/broadcast"
	"dirpx.dev/dcast/apis/filter"
	"dirpx.dev/dcast/apis/level"
	asink "dirpx.dev/dcast/apis/sink"
	"dirpx.dev/dcast/runtime/encoder"
	jsonenc "dirpx.dev/dcast/runtime/encoder/json"
	"dirpx.dev/dcast/runtime/encoder/template"
	rsink "dirpx.dev/dcast/runtime/sink"
	"dirpx.dev/dcast/runtime/worker"
)

// ErrSpecInvalid is returned by Build for impossible configurations.
var ErrSpecInvalid = errors.New("broadcast: invalid specification")

// Builder turns a declarative specification into a running Controller.
type Builder struct{}

// Compile-time check: Builder implements the apis contract.
var _ abroadcast.Builder = Builder{}

// NewBuilder returns the runtime pipeline builder.
func NewBuilder() Builder { return Builder{} }

// Build validates the specification, constructs every sink with its
// encoder and worker, and starts the workers. On any error the already
// started workers are shut down again so Build never leaks goroutines.
func (Builder) Build(ctx context.Context, spec abroadcast.Specification) (abroadcast.Controller, error) {
	if len(spec.Sinks) == 0 {
		return nil, fmt.Errorf("%w: no sinks configured", ErrSpecInvalid)
	}
	spec = spec.Normalize()

	lvl := spec.Level
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpecInvalid, err)
	}
	if spec.LevelFromEnv {
		if env, ok := level.FromEnv(); ok {
			lvl = env
		}
	}

	seen := make(map[string]struct{}, len(spec.Sinks))
	workers := make([]*worker.Worker, 0, len(spec.Sinks))

	fail := func(err error) (abroadcast.Controller, error) {
		c := newController(lvl, false, workers)
		_ = c.Shutdown(context.Background())
		return nil, err
	}

	for i := range spec.Sinks {
		sspec := &spec.Sinks[i]
		if sspec.Name == "" {
			sspec.Name = sspec.Kind
		}
		if _, dup := seen[sspec.Name]; dup {
			return fail(fmt.Errorf("%w: duplicate sink name %q", ErrSpecInvalid, sspec.Name))
		}
		seen[sspec.Name] = struct{}{}

		enc, err := buildEncoder(sspec)
		if err != nil {
			return fail(err)
		}

		s, err := rsink.Build(ctx, sspec)
		if err != nil {
			return fail(err)
		}

		var flt filter.Filter
		if sspec.File != nil && sspec.File.SkipTargetPrefix != "" {
			flt = filter.TargetPrefix(sspec.File.SkipTargetPrefix)
		}

		w := worker.New(worker.Config{
			Name:          sspec.Name,
			QueueCapacity: rsink.QueueCapacity(sspec),
			Backpressure:  sspec.Backpressure,
			Batch:         sspec.Batch,
			Filter:        flt,
			Encoder:       enc,
			Sink:          s,
		})
		w.Start()
		workers = append(workers, w)
	}

	return newController(lvl, spec.DevMode, workers), nil
}

// buildEncoder selects the sink's encoder from its format spec. A raw
// file sink bypasses formatting entirely.
func buildEncoder(spec *asink.Specification) (encoder.Encoder, error) {
	if spec.File != nil && spec.File.Raw {
		return encoder.Raw(encoder.Options{}), nil
	}

	switch spec.Format.Encoder {
	case "", "template":
		cfg := template.Config{
			Template:  spec.Format.Template,
			Timestamp: spec.Format.Timestamp,
		}
		if spec.Format.Colored {
			cfg.Colors = template.DefaultColors()
		}
		return template.New(cfg, encoder.Options{}), nil
	case "json":
		return jsonenc.New(encoder.Options{}), nil
	default:
		return nil, fmt.Errorf("%w: unknown encoder %q", ErrSpecInvalid, spec.Format.Encoder)
	}
}
