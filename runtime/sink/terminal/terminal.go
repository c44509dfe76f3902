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

package terminal

import (
	"context"
	"io"
	"os"

	asink "dirpx.dev/dcast/apis/sink"
	rsink "dirpx.dev/dcast/runtime/sink"
)

// Compile-time check: *Sink implements asink.Sink.
var _ asink.Sink = (*Sink)(nil)

// Sink writes formatted batches to standard output (or any injected
// writer, which is how tests capture it). Color is the encoder's concern;
// this sink only moves bytes.
type Sink struct {
	name string
	w    io.Writer
}

// New constructs a terminal sink. A nil writer selects os.Stdout.
func New(name string, w io.Writer) *Sink {
	if w == nil {
		w = os.Stdout
	}
	if name == "" {
		name = "terminal"
	}
	return &Sink{name: name, w: w}
}

// Name returns the sink identifier.
func (s *Sink) Name() string { return s.name }

// Emit writes one batch to the underlying writer.
func (s *Sink) Emit(ctx context.Context, batch []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.w.Write(batch)
	return err
}

// Sync flushes stdout when the writer is a file. Sync errors are swallowed:
// stdout attached to a pipe or terminal reports EINVAL on some platforms
// and there is nothing actionable in that.
func (s *Sink) Sync(ctx context.Context) error {
	if f, ok := s.w.(*os.File); ok {
		_ = f.Sync()
	}
	return nil
}

// Close is a no-op; the process owns stdout.
func (s *Sink) Close(ctx context.Context) error { return nil }

func init() {
	rsink.Register("terminal", func(ctx context.Context, spec *asink.Specification) (asink.Sink, error) {
		return New(spec.Name, nil), nil
	})
}
