package level

import (
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"trace", Trace},
		{"debug", Debug},
		{"info", Info},
		{"warn", Warn},
		{"warning", Warn},
		{"error", Error},
		{"err", Error},
		{"  INFO  ", Info},
		{"Error", Error},
	}
	for _, c := range cases {
		got, err := ParseLevel(c.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseLevel_Invalid(t *testing.T) {
	for _, in := range []string{"", "verbose", "fatal", "42"} {
		if _, err := ParseLevel(in); err == nil {
			t.Fatalf("ParseLevel(%q): expected error, got nil", in)
		}
	}
}

func TestLevel_Enables(t *testing.T) {
	if !Error.Enables(Info) {
		t.Fatalf("Error should pass an Info filter")
	}
	if Debug.Enables(Info) {
		t.Fatalf("Debug should not pass an Info filter")
	}
	if !Info.Enables(Info) {
		t.Fatalf("Info should pass an Info filter")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvVar, "debug")
	got, ok := FromEnv()
	if !ok || got != Debug {
		t.Fatalf("FromEnv() = (%v, %v), want (Debug, true)", got, ok)
	}

	t.Setenv(EnvVar, "nonsense")
	if _, ok := FromEnv(); ok {
		t.Fatalf("FromEnv() with unrecognized value: ok = true, want false")
	}
}

func TestLevel_TextRoundTrip(t *testing.T) {
	for _, l := range []Level{Trace, Debug, Info, Warn, Error} {
		b, err := l.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", l, err)
		}
		var back Level
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if back != l {
			t.Fatalf("round trip = %v, want %v", back, l)
		}
	}
}

func TestLevel_WireValueStable(t *testing.T) {
	// The numeric values travel as a single byte in the UDP frame; any
	// reordering here is a wire break.
	if Trace != 0 || Debug != 1 || Info != 2 || Warn != 3 || Error != 4 {
		t.Fatalf("level numeric values changed: %d %d %d %d %d",
			Trace, Debug, Info, Warn, Error)
	}
}
