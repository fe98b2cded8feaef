package exercise

import (
	"testing"

	"github.com/jikirun/jikirun/pkg/exec"
	"github.com/jikirun/jikirun/pkg/timeline"
)

type stubExercise struct {
	Base
	slug string
}

func (s *stubExercise) Slug() string { return s.slug }

func stubCtor(slug string) Constructor {
	return func(ctx *exec.Context, rec *timeline.Recorder) Exercise {
		return &stubExercise{Base: NewBase(ctx, rec), slug: slug}
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("maze", stubCtor("maze")); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := reg.Register("maze", stubCtor("maze")); err == nil {
		t.Error("duplicate Register should fail")
	}
}

func TestRegistryNew(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("maze", stubCtor("maze")); err != nil {
		t.Fatal(err)
	}

	ctx := exec.NewContext()
	ex, err := reg.New("maze", ctx, timeline.NewRecorder(ctx))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ex.Slug() != "maze" {
		t.Errorf("Slug() = %q, want maze", ex.Slug())
	}

	if _, err := reg.New("unknown", ctx, timeline.NewRecorder(ctx)); err == nil {
		t.Error("New with unknown slug should fail")
	}
}

func TestRegistrySlugsSorted(t *testing.T) {
	reg := NewRegistry()
	for _, slug := range []string{"zebra", "alpha", "maze"} {
		if err := reg.Register(slug, stubCtor(slug)); err != nil {
			t.Fatal(err)
		}
	}

	slugs := reg.Slugs()
	want := []string{"alpha", "maze", "zebra"}
	for i, slug := range want {
		if slugs[i] != slug {
			t.Fatalf("Slugs() = %v, want %v", slugs, want)
		}
	}
}
