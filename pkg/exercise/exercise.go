// Package exercise defines the contract between the test runner and the
// exercises students drive from interpreted code, plus the registry that
// maps project slugs to constructible exercise types.
package exercise

import (
	"github.com/jikirun/jikirun/pkg/exec"
	"github.com/jikirun/jikirun/pkg/object"
	"github.com/jikirun/jikirun/pkg/timeline"
)

// HostFunction is one function an exercise exposes to the interpreted
// run. Description is the past-tense narration template; ${argN}
// placeholders are substituted with the call's arguments.
type HostFunction struct {
	Name        string
	Description string
	Func        func(ctx *exec.Context, args []object.JikiObject) object.JikiObject
}

// Exercise is the capability surface one exercise exposes to the
// interpreter boundary and the test runner. Implementations compose
// zero or more class definitions built at construction time.
type Exercise interface {
	// Slug is the stable project identifier.
	Slug() string

	// AvailableFunctions lists the host functions the interpreted run
	// may call.
	AvailableFunctions() []HostFunction

	// AvailableClasses lists the class definitions the interpreted run
	// may construct and call into.
	AvailableClasses() []*object.ClassDefinition

	// GetState exposes named state properties for check resolution.
	GetState() map[string]object.JikiObject

	// WholeRunEffects returns explicit whole-run animation effects, or
	// nil for exercises with a stepwise object model.
	WholeRunEffects() []timeline.Effect

	// AnimateInfiniteLoops reports whether this exercise opts in to
	// animating runaway scripts instead of suppressing the timeline.
	AnimateInfiniteLoops() bool
}

// Base carries the run-scoped plumbing every exercise needs: the
// execution context and the effect recorder. Concrete exercises embed it
// and override the contract methods they care about.
type Base struct {
	Ctx      *exec.Context
	Recorder *timeline.Recorder
}

// NewBase binds the plumbing for one run.
func NewBase(ctx *exec.Context, rec *timeline.Recorder) Base {
	return Base{Ctx: ctx, Recorder: rec}
}

func (b *Base) AvailableFunctions() []HostFunction { return nil }

func (b *Base) AvailableClasses() []*object.ClassDefinition { return nil }

func (b *Base) GetState() map[string]object.JikiObject { return nil }

func (b *Base) WholeRunEffects() []timeline.Effect { return nil }

func (b *Base) AnimateInfiniteLoops() bool { return false }
