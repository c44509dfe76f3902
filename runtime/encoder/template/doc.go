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

// Package template provides the human-oriented line encoder: a fixed
// template with {placeholder} substitution, strftime-style timestamps,
// per-level labels and optional ANSI color.
//
// The template is parsed once at construction; encoding walks pre-parsed
// segments and borrows a pooled buffer, keeping the per-record cost flat.
// Every rendered line ends with exactly one newline.
package template
