// Package internalzap hosts small utilities for adapting dcast's
// vendor-neutral runtime to zap encoders. It provides a compact,
// deterministic mapping from dcast record fields to zapcore types, plus
// shared configuration helpers used by the JSON encoder.
package internalzap

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dirpx.dev/dcast/apis/level"
	"dirpx.dev/dcast/apis/record"
)

// DefaultEncoderConfig returns a minimal, stable zap EncoderConfig for the
// JSON adapter. Caller/name/stack keys stay empty — dcast carries call-site
// data as ordinary fields so the layout is identical for captured and
// uncaptured records.
func DefaultEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "",
		CallerKey:      "",
		MessageKey:     "msg",
		StacktraceKey:  "",
		LineEnding:     "\n", // final framing normalized by NormalizeLineEnding
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// PickLineEnding converts an optional boolean into a concrete line ending.
// Semantics:
//   - nil or true  => "\n" (NDJSON-style framing)
//   - false        => ""   (no trailing newline)
func PickLineEnding(p *bool) string {
	if p == nil || *p {
		return "\n"
	}
	return ""
}

// NormalizeLineEnding enforces the desired trailing newline policy on the
// encoded byte slice, independent of zap's internal defaults.
//
// Behavior:
//   - ending == "\n": ensure a single trailing '\n' (idempotent)
//   - ending == "":   ensure no trailing '\n'
func NormalizeLineEnding(b []byte, ending string) []byte {
	if ending == "\n" {
		if len(b) > 0 && b[len(b)-1] == '\n' {
			return b
		}
		out := make([]byte, 0, len(b)+1)
		out = append(out, b...)
		return append(out, '\n')
	}
	// ending == ""
	if len(b) > 0 && b[len(b)-1] == '\n' {
		return b[:len(b)-1]
	}
	return b
}

// MapLevel converts dcast's level to a zap level. Trace has no zap
// counterpart and collapses into Debug.
func MapLevel(l level.Level) zapcore.Level {
	switch l {
	case level.Trace, level.Debug:
		return zapcore.DebugLevel
	case level.Info:
		return zapcore.InfoLevel
	case level.Warn:
		return zapcore.WarnLevel
	case level.Error:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// RecordFields converts a record's metadata into zap fields in a fixed,
// deterministic order. Zero-valued optional fields are omitted so that the
// JSON stays compact. The auth token is deliberately never included: it is
// transport credentials, not log payload.
func RecordFields(r *record.Record) []zapcore.Field {
	fields := make([]zapcore.Field, 0, 5)
	if r.Target != "" {
		fields = append(fields, zap.String("target", r.Target))
	}
	if r.Module != "" {
		fields = append(fields, zap.String("module", r.Module))
	}
	if r.File != "" {
		fields = append(fields, zap.String("file", r.File))
	}
	if r.Line != 0 {
		fields = append(fields, zap.Int("line", r.Line))
	}
	if r.AppID != "" {
		fields = append(fields, zap.String("app_id", r.AppID))
	}
	return fields
}
