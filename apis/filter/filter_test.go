package filter

import (
	"testing"

	"dirpx.dev/dcast/apis/level"
	"dirpx.dev/dcast/apis/record"
)

func TestMinLevel(t *testing.T) {
	f := MinLevel(level.Warn)
	if got := f.Decide(record.New(level.Info, "t", "m")); got != Drop {
		t.Fatalf("info under warn filter = %v, want Drop", got)
	}
	if got := f.Decide(record.New(level.Error, "t", "m")); got != Pass {
		t.Fatalf("error under warn filter = %v, want Pass", got)
	}
}

func TestTargetPrefix(t *testing.T) {
	f := TargetPrefix("server")
	if got := f.Decide(record.New(level.Info, "server::gc", "m")); got != Drop {
		t.Fatalf("server-targeted record = %v, want Drop", got)
	}
	if got := f.Decide(record.New(level.Info, "app::server", "m")); got != Pass {
		t.Fatalf("prefix must anchor at the start; got %v", got)
	}

	// Empty prefix disables the filter.
	f = TargetPrefix("")
	if got := f.Decide(record.New(level.Info, "anything", "m")); got != Pass {
		t.Fatalf("empty prefix = %v, want Pass", got)
	}
}

func TestAll(t *testing.T) {
	f := All(nil, MinLevel(level.Info), TargetPrefix("server"))
	if got := f.Decide(record.New(level.Info, "app", "m")); got != Pass {
		t.Fatalf("passing record = %v, want Pass", got)
	}
	if got := f.Decide(record.New(level.Debug, "app", "m")); got != Drop {
		t.Fatalf("debug record = %v, want Drop", got)
	}
	if got := f.Decide(record.New(level.Info, "server::x", "m")); got != Drop {
		t.Fatalf("server record = %v, want Drop", got)
	}
	if got := All().Decide(record.New(level.Trace, "t", "m")); got != Pass {
		t.Fatalf("empty chain = %v, want Pass", got)
	}
}
