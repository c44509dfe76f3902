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
	"io"
	"os"
	"sync"

	"github.com/pierrec/lz4/v4"

	"dirpx.dev/dcast/telemetry"
)

// compressQueueCap bounds the set of retired segments awaiting
// compression. Rotations are rare relative to writes; when the queue is
// full the enqueuer (the sink's worker goroutine) blocks rather than
// losing a segment.
const compressQueueCap = 64

// compressor owns the fixed pool of compression workers and the archive
// retention ring. It is created once per file sink and closed during the
// sink's Close; close blocks until the queue is drained.
type compressor struct {
	queue chan string
	wg    sync.WaitGroup
	ring  *archiveRing
	level lz4.CompressionLevel
}

func newCompressor(threads int, level int, ring *archiveRing) *compressor {
	c := &compressor{
		queue: make(chan string, compressQueueCap),
		ring:  ring,
		level: mapLevel(level),
	}
	if threads < 1 {
		threads = 1
	}
	c.wg.Add(threads)
	for i := 0; i < threads; i++ {
		go c.run()
	}
	return c
}

// enqueue hands a retired segment to the pool. Blocks when the queue is
// full; see compressQueueCap.
func (c *compressor) enqueue(path string) {
	c.queue <- path
}

// close stops the pool after the queue drained and waits for the workers.
func (c *compressor) close() {
	close(c.queue)
	c.wg.Wait()
}

func (c *compressor) run() {
	defer c.wg.Done()
	for path := range c.queue {
		if err := c.compress(path); err != nil {
			// The retired raw segment stays in place; the next start
			// re-enqueues it. No in-run retry.
			telemetry.CompressFailuresTotal.Inc()
			continue
		}
		telemetry.ArchivesTotal.Inc()
	}
}

// compress turns path into path+".lz4" atomically: the archive is written
// to a temp file, synced, and renamed; only then is the source unlinked.
// A crash at any point leaves the raw segment, alone or with a stale temp
// file or with its complete archive, never a half archive under its final
// name.
func (c *compressor) compress(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	final := path + ArchiveSuffix
	tmp := final + ".tmp"

	dst, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640)
	if err != nil {
		return err
	}

	zw := lz4.NewWriter(dst)
	if err := zw.Apply(lz4.CompressionLevelOption(c.level)); err != nil {
		_ = dst.Close()
		_ = os.Remove(tmp)
		return err
	}

	if _, err := io.Copy(zw, src); err != nil {
		_ = zw.Close()
		_ = dst.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := zw.Close(); err != nil {
		_ = dst.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := dst.Sync(); err != nil {
		_ = dst.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Remove(path); err != nil {
		return err
	}

	c.ring.add(final)
	return nil
}

// mapLevel translates the 1..9 configuration scale onto lz4's levels.
// 1 selects the fast path; 2..9 select the matching high-compression level.
func mapLevel(level int) lz4.CompressionLevel {
	switch level {
	case 2:
		return lz4.Level2
	case 3:
		return lz4.Level3
	case 4:
		return lz4.Level4
	case 5:
		return lz4.Level5
	case 6:
		return lz4.Level6
	case 7:
		return lz4.Level7
	case 8:
		return lz4.Level8
	case 9:
		return lz4.Level9
	default:
		return lz4.Fast
	}
}
