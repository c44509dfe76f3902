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

package policy

// Rotation defaults; see the field docs for units.
const (
	DefaultMaxFileSize      = int64(10 << 20)
	DefaultMaxArchives      = 5
	DefaultCompressionLevel = 4
	DefaultCompressThreads  = 2
)

// Rotation describes the file sink's segment growth, compression and
// retention behavior.
type Rotation struct {
	// MaxFileSize is the per-file byte threshold. A write that would
	// cross it rotates first, so the new file receives that record and
	// the live file never exceeds the threshold. Values <= 0 select
	// DefaultMaxFileSize.
	MaxFileSize int64

	// MaxArchives bounds the compressed archive ring; when exceeded the
	// oldest archive is unlinked. Values <= 0 select DefaultMaxArchives.
	MaxArchives int

	// CompressionLevel is the lz4 level, 1 (fastest) to 9 (smallest).
	// Out-of-range values select DefaultCompressionLevel.
	CompressionLevel int

	// CompressThreads is the fixed size of the compression pool,
	// at least 1. Values <= 0 select DefaultCompressThreads.
	CompressThreads int

	// CompressOnClose also retires and compresses the live file during
	// shutdown, instead of leaving it as the next start's append target.
	CompressOnClose bool

	// ForceSync calls the platform's file-data-sync on every batch emit.
	// Off, the OS page cache is trusted.
	ForceSync bool
}

// Normalize fills unset or out-of-range fields with defaults.
func (r Rotation) Normalize() Rotation {
	if r.MaxFileSize <= 0 {
		r.MaxFileSize = DefaultMaxFileSize
	}
	if r.MaxArchives <= 0 {
		r.MaxArchives = DefaultMaxArchives
	}
	if r.CompressionLevel < 1 || r.CompressionLevel > 9 {
		r.CompressionLevel = DefaultCompressionLevel
	}
	if r.CompressThreads < 1 {
		r.CompressThreads = DefaultCompressThreads
	}
	return r
}
