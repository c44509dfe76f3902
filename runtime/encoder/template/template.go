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
	"io"
	"strings"

	"go.uber.org/zap/buffer"

	"dirpx.dev/dcast/apis/record"
	"dirpx.dev/dcast/runtime/encoder"
	"dirpx.dev/dcast/runtime/encoder/internalzap"
)

// Compile-time check: *Encoder implements encoder.Encoder.
var _ encoder.Encoder = (*Encoder)(nil)

const (
	templateName        = "template"
	templateContentType = "text/plain; charset=utf-8"

	// DefaultTemplate is the line layout used when Config.Template is empty.
	DefaultTemplate = "[{timestamp}] [{level}] [{target}] {message}"

	// DefaultTimestamp is the strftime layout used when Config.Timestamp
	// is empty. Millisecond precision, chrono-style fraction specifier.
	DefaultTimestamp = "%Y-%m-%d %H:%M:%S%.3f"
)

// pool supplies render buffers; one Encode call borrows exactly one buffer.
var pool = buffer.NewPool()

// placeholder identifies one substitutable slot in the template.
type placeholder uint8

const (
	phLiteral placeholder = iota
	phTimestamp
	phLevel
	phTarget
	phFile
	phLine
	phModule
	phMessage
)

// names maps the recognized placeholder spellings. Anything else between
// braces stays literal.
var names = map[string]placeholder{
	"timestamp": phTimestamp,
	"level":     phLevel,
	"target":    phTarget,
	"file":      phFile,
	"line":      phLine,
	"module":    phModule,
	"message":   phMessage,
}

// segment is one parsed piece of the template: either a literal byte run
// or a placeholder.
type segment struct {
	ph  placeholder
	lit string // set when ph == phLiteral
}

// LevelStyle supplies the textual label rendered for {level}, indexed by
// the level's numeric value.
type LevelStyle struct {
	Labels [5]string
}

// DefaultLevelStyle returns the conventional uppercase labels.
func DefaultLevelStyle() LevelStyle {
	return LevelStyle{Labels: [5]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}}
}

// label returns the style's label for l, falling back to the canonical
// lowercase name for levels outside the table.
func (s LevelStyle) label(r *record.Record) string {
	i := int(r.Level)
	if i >= 0 && i < len(s.Labels) && s.Labels[i] != "" {
		return s.Labels[i]
	}
	return r.Level.String()
}

// Config parameterizes the template encoder.
type Config struct {
	// Template is the line layout; see DefaultTemplate. Recognized
	// placeholders: {timestamp} {level} {target} {file} {line} {module}
	// {message}. Unrecognized placeholders are left literal.
	Template string

	// Timestamp is the strftime-style layout for {timestamp}; see
	// DefaultTimestamp and strftime.go for the recognized specifiers.
	Timestamp string

	// Style supplies per-level labels. The zero value selects
	// DefaultLevelStyle.
	Style *LevelStyle

	// Colors enables ANSI rendering: each placeholder is wrapped in its
	// configured sequence and closed with a reset. Nil emits no ANSI.
	Colors *ColorConfig
}

// Encoder renders records through a pre-parsed line template. Parsing
// happens once in New; Encode only walks segments, which keeps the hot
// path allocation-free apart from the pooled buffer.
type Encoder struct {
	segs       []segment
	timestamp  string
	style      LevelStyle
	colors     *ColorConfig
	lineEnding string
}

// New constructs a template encoder.
func New(cfg Config, opt encoder.Options) *Encoder {
	tpl := cfg.Template
	if tpl == "" {
		tpl = DefaultTemplate
	}
	ts := cfg.Timestamp
	if ts == "" {
		ts = DefaultTimestamp
	}
	style := DefaultLevelStyle()
	if cfg.Style != nil {
		style = *cfg.Style
	}
	return &Encoder{
		segs:       parse(tpl),
		timestamp:  ts,
		style:      style,
		colors:     cfg.Colors,
		lineEnding: internalzap.PickLineEnding(opt.AppendNewline),
	}
}

// Name returns a short, stable identifier for this encoder implementation.
func (e *Encoder) Name() string { return templateName }

// ContentType returns the MIME type for template output.
func (e *Encoder) ContentType() string { return templateContentType }

// Encode renders one record as one line. Missing optional fields (file,
// line, module) render as empty strings; the surrounding literals stay.
func (e *Encoder) Encode(r *record.Record, w io.Writer) error {
	buf := pool.Get()

	for _, seg := range e.segs {
		if seg.ph == phLiteral {
			buf.AppendString(seg.lit)
			continue
		}
		e.appendValue(buf, seg.ph, r)
	}

	out := internalzap.NormalizeLineEnding(buf.Bytes(), e.lineEnding)

	_, err := w.Write(out)
	buf.Free()
	return err
}

// appendValue renders one placeholder, with ANSI wrapping when configured.
func (e *Encoder) appendValue(buf *buffer.Buffer, ph placeholder, r *record.Record) {
	open := e.colors.open(ph, r.Level)
	if open != "" {
		buf.AppendString(open)
	}

	switch ph {
	case phTimestamp:
		appendStrftime(buf, e.timestamp, r.Time)
	case phLevel:
		buf.AppendString(e.style.label(r))
	case phTarget:
		buf.AppendString(r.Target)
	case phFile:
		buf.AppendString(r.File)
	case phLine:
		if r.Line != 0 {
			buf.AppendInt(int64(r.Line))
		}
	case phModule:
		buf.AppendString(r.Module)
	case phMessage:
		buf.AppendString(r.Message)
	}

	if open != "" {
		buf.AppendString(ansiReset)
	}
}

// parse splits a template into literal and placeholder segments.
// Unrecognized or unterminated braces are preserved as literal text, so a
// template like "{weird} {message}" renders "{weird}" verbatim.
func parse(tpl string) []segment {
	var segs []segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{ph: phLiteral, lit: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(tpl); {
		open := strings.IndexByte(tpl[i:], '{')
		if open < 0 {
			lit.WriteString(tpl[i:])
			break
		}
		lit.WriteString(tpl[i : i+open])
		i += open

		end := strings.IndexByte(tpl[i:], '}')
		if end < 0 {
			lit.WriteString(tpl[i:])
			break
		}
		name := tpl[i+1 : i+end]
		ph, ok := names[name]
		if !ok {
			// Keep the braces and the unknown name literal.
			lit.WriteString(tpl[i : i+end+1])
			i += end + 1
			continue
		}
		flush()
		segs = append(segs, segment{ph: ph})
		i += end + 1
	}
	flush()
	return segs
}
