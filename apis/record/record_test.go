package record

import (
	"strings"
	"testing"
	"time"

	"dirpx.dev/dcast/apis/level"
)

func TestNew_StampsUTC(t *testing.T) {
	r := New(level.Info, "engine::net", "hello")
	if r.Time.IsZero() {
		t.Fatalf("New did not stamp a time")
	}
	if r.Time.Location() != time.UTC {
		t.Fatalf("record time zone = %v, want UTC", r.Time.Location())
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	r := &Record{Level: level.Level(9), Time: time.Now()}
	if err := r.Validate(); err == nil {
		t.Fatalf("expected error for invalid level, got nil")
	}

	r = &Record{Level: level.Info}
	if err := r.Validate(); err == nil {
		t.Fatalf("expected error for zero time, got nil")
	}
}

func TestHere(t *testing.T) {
	site := Here(0)
	if site.File != "record_test.go" {
		t.Fatalf("site.File = %q, want record_test.go", site.File)
	}
	if site.Line == 0 {
		t.Fatalf("site.Line = 0, want a real line")
	}
	if !strings.HasSuffix(site.Module, "apis/record") {
		t.Fatalf("site.Module = %q, want .../apis/record", site.Module)
	}
}

func TestHasSite(t *testing.T) {
	r := &Record{}
	if r.HasSite() {
		t.Fatalf("empty record claims a site")
	}
	r.Line = 12
	if !r.HasSite() {
		t.Fatalf("record with line lacks a site")
	}
}
