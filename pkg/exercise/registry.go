package exercise

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jikirun/jikirun/pkg/exec"
	"github.com/jikirun/jikirun/pkg/timeline"
)

// Constructor builds a fresh exercise instance bound to one run's
// context and recorder.
type Constructor func(ctx *exec.Context, rec *timeline.Recorder) Exercise

// Registry maps project slugs to constructible exercise types. Exercises
// are constructed once per test execution, never shared across runs.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register adds a constructor under the given slug. Registering the same
// slug twice is a programming error and returns an error rather than
// silently replacing the earlier exercise.
func (r *Registry) Register(slug string, ctor Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[slug]; exists {
		return fmt.Errorf("exercise %q already registered", slug)
	}
	r.constructors[slug] = ctor
	return nil
}

// New constructs a fresh exercise for one run.
func (r *Registry) New(slug string, ctx *exec.Context, rec *timeline.Recorder) (Exercise, error) {
	r.mu.RLock()
	ctor, ok := r.constructors[slug]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown exercise %q", slug)
	}
	return ctor(ctx, rec), nil
}

// Slugs returns the registered slugs, sorted.
func (r *Registry) Slugs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slugs := make([]string, 0, len(r.constructors))
	for slug := range r.constructors {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
