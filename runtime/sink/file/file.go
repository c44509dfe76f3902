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

package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"dirpx.dev/dcast/apis/command"
	asink "dirpx.dev/dcast/apis/sink"
	"dirpx.dev/dcast/apis/sink/policy"
	rsink "dirpx.dev/dcast/runtime/sink"
	"dirpx.dev/dcast/telemetry"
)

// Compile-time checks: *Sink implements the sink contract plus the
// command extension.
var (
	_ asink.Sink           = (*Sink)(nil)
	_ asink.CommandHandler = (*Sink)(nil)
)

const (
	// CurrentName is the live append target inside the log directory.
	CurrentName = "app.log"

	// segmentStamp is the UTC timestamp embedded in retired segment names.
	segmentStamp = "20060102-150405"

	// ArchiveSuffix marks a compressed retired segment.
	ArchiveSuffix = ".lz4"
)

var (
	// ErrClosed indicates that the sink has been closed.
	ErrClosed = errors.New("sink/file: closed")

	// ErrNoDir indicates that an empty log directory was provided.
	ErrNoDir = errors.New("sink/file: empty log directory")
)

// Options configures a rotating, compressing file sink.
type Options struct {
	// Name overrides the sink name. If empty, the sink reports itself
	// as "file(<dir base>)".
	Name string

	// Dir is the log directory; created when missing.
	Dir string

	// Rotation describes segment growth, compression and retention.
	Rotation policy.Rotation

	// Retry describes how a failed rotation is retried before the error
	// propagates (and the worker disables the sink).
	Retry policy.Retry

	// FileMode controls permissions for created log files.
	// When zero, a default of 0640 is used.
	FileMode os.FileMode
}

// Sink is the rotating file writer. It moves between two states: Open
// (appending to the current file) and Rotating (retiring a full segment);
// compression happens concurrently on the pool owned by the sink.
//
// A single worker goroutine drives Emit/Sync/Close, so the writer state
// needs no lock; only the archive ring is shared with compression workers.
type Sink struct {
	name string
	dir  string
	opt  Options
	pol  policy.Rotation

	f       *os.File
	path    string
	written int64

	// rotation names within the same second get a sequence suffix.
	lastStamp string
	lastSeq   int

	comp   *compressor
	closed bool
}

// New constructs the sink: it creates the directory, opens (or re-opens)
// the current file, recovers any state a previous run left behind, and
// starts the compression pool.
//
// Recovery rules:
//   - existing archives seed the retention ring in name order (the
//     timestamp in the name sorts chronologically);
//   - retired raw segments (crash before or during compression) are
//     re-enqueued for compression.
func New(opt Options) (*Sink, error) {
	if opt.Dir == "" {
		return nil, ErrNoDir
	}
	opt.Rotation = opt.Rotation.Normalize()
	opt.Retry = opt.Retry.Normalize()
	if opt.FileMode == 0 {
		opt.FileMode = 0o640
	}

	s := &Sink{
		name: opt.Name,
		dir:  opt.Dir,
		opt:  opt,
		pol:  opt.Rotation,
		path: filepath.Join(opt.Dir, CurrentName),
	}
	if s.name == "" {
		s.name = "file(" + filepath.Base(opt.Dir) + ")"
	}

	if err := os.MkdirAll(opt.Dir, 0o755); err != nil {
		return nil, err
	}

	ring := newArchiveRing(s.pol.MaxArchives)
	s.comp = newCompressor(s.pol.CompressThreads, s.pol.CompressionLevel, ring)

	archives, leftovers, err := scanDir(opt.Dir)
	if err != nil {
		return nil, err
	}
	ring.seed(archives)

	if err := s.openCurrent(); err != nil {
		s.comp.close()
		return nil, err
	}

	// Re-enqueue after the pool is running; compression of leftovers
	// proceeds while new writes append.
	for _, p := range leftovers {
		s.comp.enqueue(p)
	}
	return s, nil
}

// Name returns the human-friendly name of the sink.
func (s *Sink) Name() string { return s.name }

// Emit appends one batch to the current file, rotating first when the
// batch would cross the size threshold, so the fresh file receives it and
// the live file never exceeds the limit (as long as a single batch fits,
// which the batcher's buffer cap guarantees for any sane configuration).
func (s *Sink) Emit(ctx context.Context, batch []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.closed {
		return ErrClosed
	}

	if s.written+int64(len(batch)) > s.pol.MaxFileSize && s.written > 0 {
		if err := s.rotateWithRetry(); err != nil {
			return err
		}
	}

	n, err := s.f.Write(batch)
	s.written += int64(n)
	if err != nil {
		return err
	}

	if s.pol.ForceSync {
		return datasync(s.f)
	}
	return nil
}

// Sync forces file data down to the medium.
func (s *Sink) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.closed {
		return ErrClosed
	}
	if s.f == nil {
		return nil
	}
	return datasync(s.f)
}

// HandleCommand processes rotate and compress commands; anything else is
// ignored so the worker can forward commands blindly.
func (s *Sink) HandleCommand(ctx context.Context, cmd command.Command) error {
	switch cmd.Op {
	case command.OpRotate:
		if s.closed {
			return ErrClosed
		}
		if s.written == 0 {
			return nil
		}
		return s.rotateWithRetry()
	case command.OpCompress:
		s.comp.enqueue(cmd.Path)
		return nil
	default:
		return nil
	}
}

// Close drains the sink: sync and close the current file, optionally
// retire it for compression, then wait until the compression queue is
// empty. After Close the sink rejects all operations with ErrClosed.
func (s *Sink) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	if s.f != nil {
		if err := datasync(s.f); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := s.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.f = nil
	}

	if s.pol.CompressOnClose && s.written > 0 {
		if retired, err := s.retireCurrent(); err == nil {
			s.comp.enqueue(retired)
		} else if firstErr == nil {
			firstErr = err
		}
	}

	// Blocks until every queued segment is archived; shutdown is bounded
	// by outstanding compression, which is the documented exit behavior.
	s.comp.close()
	return firstErr
}

// openCurrent opens the live file for append and initializes the size
// counter from what is already on disk.
func (s *Sink) openCurrent() error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, s.opt.FileMode)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	s.f = f
	s.written = info.Size()
	return nil
}

// rotateWithRetry runs one rotation, retrying per the retry policy.
// Every attempt after the first waits Retry.Delay.
func (s *Sink) rotateWithRetry() error {
	err := s.rotate()
	for i := 0; err != nil && i < s.opt.Retry.MaxRetries; i++ {
		if s.opt.Retry.Delay > 0 {
			time.Sleep(s.opt.Retry.Delay)
		}
		err = s.rotate()
	}
	return err
}

// rotate retires the current file and opens a fresh one. The retired
// segment is fully closed and renamed before the new current file is
// created; a crash in between leaves a consistent directory (the missing
// current file is re-created on next start).
func (s *Sink) rotate() error {
	if s.f != nil {
		if err := s.f.Close(); err != nil {
			// Reopen so a failed rotation leaves a writable sink.
			_ = s.openCurrent()
			return err
		}
		s.f = nil
	}

	retired, err := s.retireCurrent()
	if err != nil {
		_ = s.openCurrent()
		return err
	}

	if err := s.openCurrent(); err != nil {
		return err
	}

	telemetry.RotationsTotal.Inc()
	s.comp.enqueue(retired)
	return nil
}

// retireCurrent renames the current file to its segment name and returns
// the new path. Rotations within the same second get a sequence suffix so
// names never collide.
func (s *Sink) retireCurrent() (string, error) {
	stamp := time.Now().UTC().Format(segmentStamp)
	if stamp == s.lastStamp {
		s.lastSeq++
	} else {
		s.lastStamp = stamp
		s.lastSeq = 0
	}

	name := fmt.Sprintf("app.%s.log", stamp)
	if s.lastSeq > 0 {
		name = fmt.Sprintf("app.%s.%d.log", stamp, s.lastSeq)
	}
	retired := filepath.Join(s.dir, name)

	if err := os.Rename(s.path, retired); err != nil {
		return "", err
	}
	s.written = 0
	return retired, nil
}

// scanDir classifies a log directory's contents into compressed archives
// and leftover raw segments. The live file is neither.
func scanDir(dir string) (archives, leftovers []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == CurrentName || !strings.HasPrefix(name, "app.") {
			continue
		}
		switch {
		case strings.HasSuffix(name, ArchiveSuffix):
			archives = append(archives, filepath.Join(dir, name))
		case strings.HasSuffix(name, ".log"):
			leftovers = append(leftovers, filepath.Join(dir, name))
		}
	}

	// Segment stamps sort chronologically as strings.
	sort.Strings(archives)
	sort.Strings(leftovers)
	return archives, leftovers, nil
}

func init() {
	rsink.Register("file", func(ctx context.Context, spec *asink.Specification) (asink.Sink, error) {
		if spec.File == nil {
			return nil, ErrNoDir
		}
		var rot policy.Rotation
		if spec.Rotation != nil {
			rot = *spec.Rotation
		}
		s, err := New(Options{
			Name:     spec.Name,
			Dir:      spec.File.Dir,
			Rotation: rot,
			Retry:    spec.Retry,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
