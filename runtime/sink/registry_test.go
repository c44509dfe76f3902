package sink

import (
	"context"
	"errors"
	"strings"
	"testing"

	asink "dirpx.dev/dcast/apis/sink"
	"dirpx.dev/dcast/apis/sink/policy"
)

type nopSink struct{ name string }

func (n *nopSink) Name() string                                { return n.name }
func (n *nopSink) Emit(ctx context.Context, batch []byte) error { return nil }
func (n *nopSink) Sync(ctx context.Context) error               { return nil }
func (n *nopSink) Close(ctx context.Context) error              { return nil }

func init() {
	Register("nop", func(ctx context.Context, spec *asink.Specification) (asink.Sink, error) {
		return &nopSink{name: spec.Name}, nil
	})
}

func TestBuild_DefaultsNameToKind(t *testing.T) {
	s, err := Build(context.Background(), &asink.Specification{Kind: "nop"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, want := s.Name(), "nop"; got != want {
		t.Fatalf("Name() = %q, want %q", got, want)
	}
}

func TestBuild_MissingKind(t *testing.T) {
	if _, err := Build(context.Background(), &asink.Specification{}); !errors.Is(err, ErrNoKind) {
		t.Fatalf("err = %v, want ErrNoKind", err)
	}
	if _, err := Build(context.Background(), nil); !errors.Is(err, ErrNoKind) {
		t.Fatalf("nil spec err = %v, want ErrNoKind", err)
	}
}

func TestBuild_UnknownKindNamesTheSink(t *testing.T) {
	_, err := Build(context.Background(), &asink.Specification{Name: "aud", Kind: "s3"})
	if err == nil {
		t.Fatalf("unknown kind accepted")
	}
	if got := err.Error(); !strings.Contains(got, "aud") {
		t.Fatalf("error %q does not attribute the failing sink", got)
	}
}

func TestQueueCapacity(t *testing.T) {
	cases := []struct {
		spec asink.Specification
		want int
	}{
		{asink.Specification{Kind: "terminal"}, policy.DefaultQueueCapacity},
		{asink.Specification{Kind: "file"}, policy.DefaultQueueCapacity},
		{asink.Specification{Kind: "udp"}, policy.DefaultUDPQueueCapacity},
		{asink.Specification{Kind: "UDP"}, policy.DefaultUDPQueueCapacity},
		{asink.Specification{Kind: "udp", QueueCapacity: 17}, 17},
	}
	for _, c := range cases {
		if got := QueueCapacity(&c.spec); got != c.want {
			t.Fatalf("QueueCapacity(%q, %d) = %d, want %d",
				c.spec.Kind, c.spec.QueueCapacity, got, c.want)
		}
	}
}

func TestKinds_IncludesRegistered(t *testing.T) {
	found := false
	for _, k := range Kinds() {
		if k == "nop" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Kinds() = %v, missing registered kind", Kinds())
	}
}
