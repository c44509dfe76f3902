package registry

import (
	"context"
	"errors"
	"testing"
)

type widget struct{ name string }

func builderFor(name string) Builder[*widget, string] {
	return func(ctx context.Context, spec string) (*widget, error) {
		return &widget{name: name + ":" + spec}, nil
	}
}

func TestRegistry_RegisterAndBuild(t *testing.T) {
	r := New[*widget, string]()
	if err := r.Register(Key{Kind: "sink", Name: "mem"}, builderFor("mem")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	w, err := r.Build(context.Background(), Key{Kind: "sink", Name: "mem"}, "spec")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if w.name != "mem:spec" {
		t.Fatalf("built %q, want mem:spec", w.name)
	}
}

func TestRegistry_UnknownKey(t *testing.T) {
	r := New[*widget, string]()
	if _, err := r.Build(context.Background(), Key{Kind: "sink", Name: "nope"}, ""); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("err = %v, want ErrUnknownKey", err)
	}
}

func TestRegistry_DuplicateKey(t *testing.T) {
	r := New[*widget, string]()
	k := Key{Kind: "sink", Name: "mem"}
	if err := r.Register(k, builderFor("a")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(k, builderFor("b")); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("err = %v, want ErrDuplicateKey", err)
	}
}

func TestRegistry_CaseFold(t *testing.T) {
	r := New[*widget, string](WithCaseFoldLower())
	if err := r.Register(Key{Kind: "Sink", Name: "MEM"}, builderFor("mem")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := r.Build(context.Background(), Key{Kind: "sink", Name: "mem"}, ""); err != nil {
		t.Fatalf("case-folded Build: %v", err)
	}
}

func TestRegistry_Seal(t *testing.T) {
	r := New[*widget, string]()
	r.Seal()
	if err := r.Register(Key{Kind: "sink", Name: "late"}, builderFor("late")); !errors.Is(err, ErrSealed) {
		t.Fatalf("err = %v, want ErrSealed", err)
	}
}
