package timeline

import (
	"reflect"
	"testing"

	"github.com/jikirun/jikirun/pkg/exec"
)

func TestRecordStampsOffsetFromClock(t *testing.T) {
	ctx := exec.NewContext()
	rec := NewRecorder(ctx)

	rec.Record(Effect{Targets: "#a", Duration: 50})
	if err := ctx.Advance(100); err != nil {
		t.Fatal(err)
	}
	rec.Record(Effect{Targets: "#b", Duration: 20, Offset: 999}) // explicit offset is overridden

	effects := rec.Effects()
	if effects[0].Offset != 0 || effects[1].Offset != 100 {
		t.Errorf("offsets = %d, %d, want 0, 100", effects[0].Offset, effects[1].Offset)
	}
}

func TestFastForwardAfterAdvancesClock(t *testing.T) {
	ctx := exec.NewContext()
	rec := NewRecorder(ctx)

	if err := rec.FastForwardAfter(Effect{Targets: "#a", Duration: 150}, 150); err != nil {
		t.Fatal(err)
	}
	if ctx.Now() != 150 {
		t.Errorf("Now() = %d, want 150", ctx.Now())
	}
	if rec.Effects()[0].Offset != 0 {
		t.Errorf("offset = %d, want 0 (record before advance)", rec.Effects()[0].Offset)
	}
}

func TestCompileTotalDuration(t *testing.T) {
	// Two effects at offsets 0 and 100 with durations 50 and 20.
	effects := []Effect{
		{Targets: "#a", Duration: 50, Offset: 0},
		{Targets: "#b", Duration: 20, Offset: 100},
	}

	tl := Compile(effects, nil, exec.StatusSuccess, false, 120)
	if tl.TotalDuration != 120 {
		t.Errorf("TotalDuration = %d, want 120", tl.TotalDuration)
	}
	if len(tl.Segments) != 2 || tl.Suppressed {
		t.Errorf("Segments = %d, Suppressed = %v, want 2 segments unsuppressed", len(tl.Segments), tl.Suppressed)
	}
}

func TestCompileIsIdempotent(t *testing.T) {
	effects := []Effect{
		{Targets: "#a", Duration: 50, Offset: 0},
		{Targets: "#b", Duration: 20, Offset: 100},
	}

	first := Compile(effects, nil, exec.StatusSuccess, false, 120)
	second := Compile(effects, nil, exec.StatusSuccess, false, 120)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Compile is not idempotent: %+v vs %+v", first, second)
	}
}

func TestCompilePlaceholderOnSuccessWithoutEffects(t *testing.T) {
	tl := Compile(nil, nil, exec.StatusSuccess, false, 300)
	if len(tl.Segments) != 1 {
		t.Fatalf("Segments = %d, want one placeholder", len(tl.Segments))
	}
	if tl.Segments[0].Duration != 300 || tl.TotalDuration != 300 {
		t.Errorf("placeholder duration = %d, total = %d, want 300 each", tl.Segments[0].Duration, tl.TotalDuration)
	}

	// Even a zero-length successful run is seekable.
	tl = Compile(nil, nil, exec.StatusSuccess, false, 0)
	if tl.TotalDuration != 1 {
		t.Errorf("TotalDuration = %d, want minimum of 1", tl.TotalDuration)
	}
}

func TestCompileSuppression(t *testing.T) {
	effects := make([]Effect, 500)
	for i := range effects {
		effects[i] = Effect{Targets: "#a", Duration: 10, Offset: i * 10}
	}

	tests := []struct {
		name            string
		status          exec.RunStatus
		animateInfinite bool
		wantSuppressed  bool
	}{
		{"max iterations suppressed", exec.StatusMaxIterations, false, true},
		{"infinite recursion suppressed", exec.StatusInfiniteRecursion, false, true},
		{"opt-in keeps effects", exec.StatusMaxIterations, true, false},
		{"plain runtime error not suppressed", exec.StatusRuntimeError, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := Compile(effects, nil, tt.status, tt.animateInfinite, 5000)
			if tl.Suppressed != tt.wantSuppressed {
				t.Errorf("Suppressed = %v, want %v", tl.Suppressed, tt.wantSuppressed)
			}
			if tt.wantSuppressed && len(tl.Segments) != 0 {
				t.Errorf("suppressed timeline kept %d segments", len(tl.Segments))
			}
		})
	}
}

func TestCompileEmptyFailedRunIsNotSuppressed(t *testing.T) {
	tl := Compile(nil, nil, exec.StatusLogicError, false, 50)
	if tl.Suppressed {
		t.Error("failed run without effects must not be marked suppressed")
	}
	if len(tl.Segments) != 0 || tl.TotalDuration != 0 {
		t.Errorf("Segments = %d, TotalDuration = %d, want empty timeline", len(tl.Segments), tl.TotalDuration)
	}
}

func TestCompileWholeRunEffectsVerbatim(t *testing.T) {
	wholeRun := []Effect{{Targets: "#result", Duration: 400, Offset: 0}}
	stepwise := []Effect{{Targets: "#a", Duration: 10, Offset: 0}}

	tl := Compile(stepwise, wholeRun, exec.StatusSuccess, false, 10)
	if len(tl.Segments) != 1 || tl.Segments[0].Targets != "#result" {
		t.Errorf("whole-run effects should replace stepwise effects, got %+v", tl.Segments)
	}
	if tl.TotalDuration != 400 {
		t.Errorf("TotalDuration = %d, want 400", tl.TotalDuration)
	}
}
