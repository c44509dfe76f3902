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

package encoder

import (
	"io"

	"dirpx.dev/dcast/apis/record"
)

// rawEncoder writes the record's message bytes verbatim, one line per
// record. It backs the file sink's raw mode for pre-formatted streams.
type rawEncoder struct {
	newline bool
}

// Raw returns the pass-through encoder.
func Raw(opt Options) Encoder {
	return &rawEncoder{newline: opt.AppendNewline == nil || *opt.AppendNewline}
}

func (e *rawEncoder) Name() string        { return "raw" }
func (e *rawEncoder) ContentType() string { return "application/octet-stream" }

func (e *rawEncoder) Encode(r *record.Record, w io.Writer) error {
	msg := r.Message
	if _, err := io.WriteString(w, msg); err != nil {
		return err
	}
	if e.newline && (len(msg) == 0 || msg[len(msg)-1] != '\n') {
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}
