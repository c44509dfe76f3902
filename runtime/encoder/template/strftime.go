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

package template

import (
	"time"

	"go.uber.org/zap/buffer"
)

// appendStrftime renders t into buf according to a chrono-style strftime
// layout.
//
// Recognized specifiers:
//
//	%Y %y %m %d %H %M %S %j %z %%
//	%.3f %.6f %.9f   (fractional seconds including the leading dot)
//
// Unrecognized specifiers are copied literally, including the '%', so a
// layout with an unsupported directive degrades visibly instead of
// silently dropping text.
func appendStrftime(buf *buffer.Buffer, layout string, t time.Time) {
	for i := 0; i < len(layout); i++ {
		c := layout[i]
		if c != '%' || i+1 >= len(layout) {
			buf.AppendByte(c)
			continue
		}

		// Fractional seconds: "%.3f", "%.6f", "%.9f".
		if layout[i+1] == '.' && i+3 < len(layout) && layout[i+3] == 'f' {
			switch layout[i+2] {
			case '3':
				buf.AppendByte('.')
				appendPadded(buf, t.Nanosecond()/1e6, 3)
				i += 3
				continue
			case '6':
				buf.AppendByte('.')
				appendPadded(buf, t.Nanosecond()/1e3, 6)
				i += 3
				continue
			case '9':
				buf.AppendByte('.')
				appendPadded(buf, t.Nanosecond(), 9)
				i += 3
				continue
			}
		}

		i++
		switch layout[i] {
		case 'Y':
			appendPadded(buf, t.Year(), 4)
		case 'y':
			appendPadded(buf, t.Year()%100, 2)
		case 'm':
			appendPadded(buf, int(t.Month()), 2)
		case 'd':
			appendPadded(buf, t.Day(), 2)
		case 'H':
			appendPadded(buf, t.Hour(), 2)
		case 'M':
			appendPadded(buf, t.Minute(), 2)
		case 'S':
			appendPadded(buf, t.Second(), 2)
		case 'j':
			appendPadded(buf, t.YearDay(), 3)
		case 'z':
			_, off := t.Zone()
			if off < 0 {
				buf.AppendByte('-')
				off = -off
			} else {
				buf.AppendByte('+')
			}
			appendPadded(buf, off/3600, 2)
			appendPadded(buf, (off%3600)/60, 2)
		case '%':
			buf.AppendByte('%')
		default:
			// Unknown directive: keep it literal.
			buf.AppendByte('%')
			buf.AppendByte(layout[i])
		}
	}
}

// appendPadded writes v left-padded with zeros to the given width.
// Values wider than width are written in full.
func appendPadded(buf *buffer.Buffer, v, width int) {
	if v < 0 {
		v = 0
	}
	var digits [16]byte
	n := 0
	for x := v; x > 0; x /= 10 {
		digits[n] = byte('0' + x%10)
		n++
	}
	if n == 0 {
		digits[0] = '0'
		n = 1
	}
	for pad := width - n; pad > 0; pad-- {
		buf.AppendByte('0')
	}
	for j := n - 1; j >= 0; j-- {
		buf.AppendByte(digits[j])
	}
}
