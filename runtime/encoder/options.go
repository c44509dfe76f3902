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

// Options carries cross-encoder settings. Encoder-specific configuration
// (templates, palettes) lives with the concrete encoder packages.
type Options struct {
	// AppendNewline controls trailing-newline framing:
	//   - nil or true: ensure exactly one trailing '\n' per record
	//   - false:       strip the trailing '\n'
	//
	// The default mirrors line-oriented log files and NDJSON.
	AppendNewline *bool
}
