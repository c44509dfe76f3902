package config

import (
	"errors"
	"testing"
	"time"

	"dirpx.dev/dcast/apis/level"
)

const fullDoc = `
level: warn
dev_mode: true
sync: true
terminal:
  colored: true
  template: "[{level}] {message}"
file:
  dir: /var/log/demo
  max_file_size: 1048576
  max_compressed_files: 3
  compression_level: 6
  compress_threads: 1
  compress_on_close: true
  force_sync: true
  skip_target_prefix: server
  batch:
    max_bytes: 4096
    interval_ms: 50
udp:
  addr: 127.0.0.1:9999
  auth_token: t0k3n
  app_id: demo
  queue: 1024
`

func TestParse_FullDocument(t *testing.T) {
	cfg, err := Parse([]byte(fullDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	spec, err := cfg.Specification()
	if err != nil {
		t.Fatalf("Specification: %v", err)
	}

	if spec.Level != level.Warn {
		t.Fatalf("level = %v, want warn", spec.Level)
	}
	if !spec.DevMode || !spec.Sync {
		t.Fatalf("dev_mode/sync not carried: %+v", spec)
	}
	if spec.LevelFromEnv {
		t.Fatalf("explicit level must disable the env override")
	}
	if len(spec.Sinks) != 3 {
		t.Fatalf("sinks = %d, want 3", len(spec.Sinks))
	}

	term := spec.Sinks[0]
	if term.Kind != "terminal" || !term.Format.Colored || term.Format.Template != "[{level}] {message}" {
		t.Fatalf("terminal spec = %+v", term)
	}

	file := spec.Sinks[1]
	if file.Kind != "file" || file.File == nil || file.Rotation == nil {
		t.Fatalf("file spec = %+v", file)
	}
	if file.File.Dir != "/var/log/demo" || file.File.SkipTargetPrefix != "server" {
		t.Fatalf("file spec = %+v", *file.File)
	}
	if file.Rotation.MaxFileSize != 1048576 || file.Rotation.MaxArchives != 3 ||
		file.Rotation.CompressionLevel != 6 || !file.Rotation.CompressOnClose || !file.Rotation.ForceSync {
		t.Fatalf("rotation = %+v", *file.Rotation)
	}
	if file.Batch.MaxBytes != 4096 || file.Batch.Interval != 50*time.Millisecond {
		t.Fatalf("batch = %+v", file.Batch)
	}

	udp := spec.Sinks[2]
	if udp.Kind != "udp" || udp.UDP == nil || udp.QueueCapacity != 1024 {
		t.Fatalf("udp spec = %+v", udp)
	}
	if udp.UDP.Addr != "127.0.0.1:9999" || udp.UDP.AuthToken != "t0k3n" || udp.UDP.AppID != "demo" {
		t.Fatalf("udp spec = %+v", *udp.UDP)
	}
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	_, err := Parse([]byte("levle: info\nterminal: {}\n"))
	if !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("err = %v, want ErrConfigInvalid", err)
	}
}

func TestSpecification_Invalid(t *testing.T) {
	cases := []string{
		"level: info\n",                        // no sinks
		"level: loud\nterminal: {}\n",          // bad level
		"file:\n  max_file_size: 1\n",          // file without dir
		"udp:\n  auth_token: t\n",              // udp without addr
	}
	for _, doc := range cases {
		cfg, err := Parse([]byte(doc))
		if err != nil {
			continue // rejected at parse time is fine too
		}
		if _, err := cfg.Specification(); !errors.Is(err, ErrConfigInvalid) {
			t.Fatalf("doc %q: err = %v, want ErrConfigInvalid", doc, err)
		}
	}
}

func TestSpecification_EnvDefaultWhenNoLevel(t *testing.T) {
	cfg, err := Parse([]byte("terminal: {}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	spec, err := cfg.Specification()
	if err != nil {
		t.Fatalf("Specification: %v", err)
	}
	if !spec.LevelFromEnv {
		t.Fatalf("missing level must enable the env override")
	}
	if spec.Level != level.Info {
		t.Fatalf("default level = %v, want info", spec.Level)
	}
}
