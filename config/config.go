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

// Package config loads a declarative logger configuration from YAML and
// lowers it into a broadcast specification. It exists for applications
// that wire dcast from a deployment file rather than the fluent builder;
// both paths produce the same Specification and therefore the same
// pipeline.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	abroadcast "dirpx.dev/dcast/apis/broadcast"
	"dirpx.dev/dcast/apis/level"
	asink "dirpx.dev/dcast/apis/sink"
	"dirpx.dev/dcast/apis/sink/policy"
)

// ErrConfigInvalid is wrapped around every validation failure so callers
// can test for the kind with errors.Is.
var ErrConfigInvalid = errors.New("config: invalid configuration")

// Config is the YAML document shape.
//
// Example:
//
//	level: info
//	dev_mode: false
//	sync: false
//	terminal:
//	  colored: true
//	file:
//	  dir: /var/log/myapp
//	  max_file_size: 10485760
//	  max_compressed_files: 5
//	udp:
//	  addr: 127.0.0.1:9999
//	  auth_token: t0k3n
//	  app_id: myapp
type Config struct {
	Level        string `yaml:"level"`
	LevelFromEnv *bool  `yaml:"level_from_env"`
	DevMode      bool   `yaml:"dev_mode"`
	Sync         bool   `yaml:"sync"`

	Terminal *TerminalConfig `yaml:"terminal"`
	File     *FileConfig     `yaml:"file"`
	UDP      *UDPConfig      `yaml:"udp"`
}

// BatchConfig is shared by all sink blocks.
type BatchConfig struct {
	MaxBytes   int `yaml:"max_bytes"`
	MaxEntries int `yaml:"max_entries"`
	IntervalMS int `yaml:"interval_ms"`
	BufferCap  int `yaml:"buffer_cap"`
}

func (b *BatchConfig) policy() policy.Batch {
	if b == nil {
		return policy.Batch{}
	}
	return policy.Batch{
		MaxBytes:   b.MaxBytes,
		MaxEntries: b.MaxEntries,
		Interval:   time.Duration(b.IntervalMS) * time.Millisecond,
		BufferCap:  b.BufferCap,
	}
}

// FormatConfig is shared by terminal and file blocks.
type FormatConfig struct {
	Encoder   string `yaml:"encoder"`
	Template  string `yaml:"template"`
	Timestamp string `yaml:"timestamp"`
	Colored   bool   `yaml:"colored"`
}

func (f FormatConfig) spec() asink.Format {
	return asink.Format{
		Encoder:   f.Encoder,
		Template:  f.Template,
		Timestamp: f.Timestamp,
		Colored:   f.Colored,
	}
}

// TerminalConfig configures the stdout sink.
type TerminalConfig struct {
	Format FormatConfig `yaml:",inline"`
	Batch  *BatchConfig `yaml:"batch"`
	Queue  int          `yaml:"queue"`
}

// FileConfig configures the rotating file sink.
type FileConfig struct {
	Dir                string       `yaml:"dir"`
	MaxFileSize        int64        `yaml:"max_file_size"`
	MaxCompressedFiles int          `yaml:"max_compressed_files"`
	CompressionLevel   int          `yaml:"compression_level"`
	CompressThreads    int          `yaml:"compress_threads"`
	CompressOnClose    bool         `yaml:"compress_on_close"`
	ForceSync          bool         `yaml:"force_sync"`
	Raw                bool         `yaml:"raw"`
	SkipTargetPrefix   string       `yaml:"skip_target_prefix"`
	Format             FormatConfig `yaml:",inline"`
	Batch              *BatchConfig `yaml:"batch"`
	Queue              int          `yaml:"queue"`
}

// UDPConfig configures the network sink.
type UDPConfig struct {
	Addr      string       `yaml:"addr"`
	AuthToken string       `yaml:"auth_token"`
	AppID     string       `yaml:"app_id"`
	Batch     *BatchConfig `yaml:"batch"`
	Queue     int          `yaml:"queue"`
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML bytes into a Config. Unknown fields are rejected so
// a typo fails install instead of silently configuring nothing.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	return &cfg, nil
}

// Specification lowers the config into the broadcast specification,
// validating as it goes.
func (c *Config) Specification() (abroadcast.Specification, error) {
	var spec abroadcast.Specification

	lvl := level.Info
	if c.Level != "" {
		parsed, err := level.ParseLevel(c.Level)
		if err != nil {
			return spec, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
		}
		lvl = parsed
	}

	spec.Level = lvl
	// The environment override defaults to on when no explicit level was
	// configured, matching the builder surface.
	spec.LevelFromEnv = c.Level == ""
	if c.LevelFromEnv != nil {
		spec.LevelFromEnv = *c.LevelFromEnv
	}
	spec.DevMode = c.DevMode
	spec.Sync = c.Sync

	if c.Terminal != nil {
		f := c.Terminal.Format.spec()
		spec.Sinks = append(spec.Sinks, asink.Specification{
			Name:          "terminal",
			Kind:          "terminal",
			QueueCapacity: c.Terminal.Queue,
			Batch:         c.Terminal.Batch.policy(),
			Format:        f,
		})
	}

	if c.File != nil {
		if c.File.Dir == "" {
			return spec, fmt.Errorf("%w: file sink requires dir", ErrConfigInvalid)
		}
		spec.Sinks = append(spec.Sinks, asink.Specification{
			Name:          "file",
			Kind:          "file",
			QueueCapacity: c.File.Queue,
			Batch:         c.File.Batch.policy(),
			Format:        c.File.Format.spec(),
			Rotation: &policy.Rotation{
				MaxFileSize:      c.File.MaxFileSize,
				MaxArchives:      c.File.MaxCompressedFiles,
				CompressionLevel: c.File.CompressionLevel,
				CompressThreads:  c.File.CompressThreads,
				CompressOnClose:  c.File.CompressOnClose,
				ForceSync:        c.File.ForceSync,
			},
			File: &asink.FileSpec{
				Dir:              c.File.Dir,
				Raw:              c.File.Raw,
				SkipTargetPrefix: c.File.SkipTargetPrefix,
			},
		})
	}

	if c.UDP != nil {
		if c.UDP.Addr == "" {
			return spec, fmt.Errorf("%w: udp sink requires addr", ErrConfigInvalid)
		}
		spec.Sinks = append(spec.Sinks, asink.Specification{
			Name:          "udp",
			Kind:          "udp",
			QueueCapacity: c.UDP.Queue,
			Batch:         c.UDP.Batch.policy(),
			UDP: &asink.UDPSpec{
				Addr:      c.UDP.Addr,
				AuthToken: c.UDP.AuthToken,
				AppID:     c.UDP.AppID,
			},
		})
	}

	if len(spec.Sinks) == 0 {
		return spec, fmt.Errorf("%w: no sinks configured", ErrConfigInvalid)
	}
	return spec, nil
}
