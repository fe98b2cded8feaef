// Package timeline records the visual effects emitted during one
// interpreted run and compiles them into a single seekable animation
// timeline.
package timeline

import (
	"github.com/jikirun/jikirun/pkg/exec"
)

// Effect is a single recorded visual mutation. Immutable once appended.
type Effect struct {
	// Targets is the selector the effect applies to.
	Targets string `json:"targets"`

	// Duration is how long the effect plays, in virtual ms.
	Duration int `json:"duration"`

	// Transformations maps animated property names to their end values.
	Transformations map[string]interface{} `json:"transformations"`

	// Offset is the virtual time at which the effect starts.
	Offset int `json:"offset"`

	// Easing names the easing curve, empty for the default.
	Easing string `json:"easing,omitempty"`
}

// Recorder is the run-scoped append-only effect list. Effects are
// appended in the order methods run, and every effect is stamped with
// the run's current virtual time, so offsets are non-decreasing in
// append order. One recorder per run; never shared across runs.
type Recorder struct {
	ctx     *exec.Context
	effects []Effect
}

// NewRecorder creates a recorder bound to the run's execution context.
func NewRecorder(ctx *exec.Context) *Recorder {
	return &Recorder{ctx: ctx}
}

// Record appends an effect stamped at the current virtual time.
func (r *Recorder) Record(e Effect) {
	e.Offset = r.ctx.Now()
	r.effects = append(r.effects, e)
}

// FastForwardAfter records the effect, then advances the virtual clock
// by ms. Record-then-advance is the standard idiom every animated
// mutation follows; it is what keeps effect offsets synchronized with
// the clock.
func (r *Recorder) FastForwardAfter(e Effect, ms int) error {
	r.Record(e)
	return r.ctx.Advance(ms)
}

// Effects returns the recorded effects in append order.
func (r *Recorder) Effects() []Effect {
	return r.effects
}

// Timeline is the compiled, ordered, duration-correct animation for one
// run.
type Timeline struct {
	// Segments are the playable effects in order.
	Segments []Effect `json:"segments"`

	// TotalDuration is the end of the last segment, in virtual ms.
	TotalDuration int `json:"totalDuration"`

	// Suppressed marks a timeline discarded by the runaway-script
	// policy. Distinct from an empty timeline on a failed run.
	Suppressed bool `json:"suppressed"`
}

// Compile builds the timeline for one run.
//
// If declared whole-run effects are present they are used verbatim; that
// path is for exercises with no stepwise object model, only a final
// pass/fail state. A successful run with no effects at all gets a single
// placeholder segment spanning the run's final virtual time so the
// timeline is always seekable. Runs that terminated as runaway scripts
// have all effects discarded unless the exercise opted in to animating
// infinite loops - a policy decision about the animation payload, not a
// pass/fail outcome.
func Compile(effects, wholeRun []Effect, status exec.RunStatus, animateInfinite bool, finalTime int) Timeline {
	if (status == exec.StatusMaxIterations || status == exec.StatusInfiniteRecursion) && !animateInfinite {
		return Timeline{Suppressed: true}
	}

	var segments []Effect
	switch {
	case len(wholeRun) > 0:
		segments = wholeRun
	case status == exec.StatusSuccess && len(effects) == 0:
		duration := finalTime
		if duration < 1 {
			duration = 1
		}
		segments = []Effect{{Targets: "body", Duration: duration, Transformations: map[string]interface{}{}}}
	default:
		segments = effects
	}

	total := 0
	for _, seg := range segments {
		if end := seg.Offset + seg.Duration; end > total {
			total = end
		}
	}

	return Timeline{Segments: segments, TotalDuration: total}
}
