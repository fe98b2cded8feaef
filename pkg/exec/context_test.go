package exec

import (
	"errors"
	"testing"
)

func TestAdvanceAccumulates(t *testing.T) {
	tests := []struct {
		name     string
		advances []int
		want     int
	}{
		{"no advances", nil, 0},
		{"single advance", []int{100}, 100},
		{"multiple advances", []int{50, 20, 30}, 100},
		{"zero advances allowed", []int{0, 0, 10}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext()
			last := 0
			for _, ms := range tt.advances {
				if err := ctx.Advance(ms); err != nil {
					t.Fatalf("Advance(%d) returned error: %v", ms, err)
				}
				if ctx.Now() < last {
					t.Fatalf("clock went backwards: %d < %d", ctx.Now(), last)
				}
				last = ctx.Now()
			}
			if ctx.Now() != tt.want {
				t.Errorf("Now() = %d, want %d", ctx.Now(), tt.want)
			}
		})
	}
}

func TestAdvanceRejectsNegative(t *testing.T) {
	ctx := NewContext()
	if err := ctx.Advance(100); err != nil {
		t.Fatalf("Advance(100) returned error: %v", err)
	}

	err := ctx.Advance(-1)
	if err == nil {
		t.Fatal("Advance(-1) should fail")
	}
	var runErr *RunError
	if !errors.As(err, &runErr) || runErr.Class != ErrorClassValidation {
		t.Errorf("Advance(-1) error = %v, want validation class", err)
	}
	if ctx.Now() != 100 {
		t.Errorf("Now() = %d after rejected advance, want 100", ctx.Now())
	}
}

func TestReportLogicErrorKeepsFirst(t *testing.T) {
	ctx := NewContext()
	if !ctx.OK() {
		t.Fatal("fresh context should be OK")
	}

	ctx.ReportLogicError("first problem")
	ctx.ReportLogicError("second problem")

	logicErr := ctx.LogicError()
	if logicErr == nil {
		t.Fatal("LogicError() = nil after report")
	}
	if logicErr.Message != "first problem" {
		t.Errorf("LogicError().Message = %q, want the first report", logicErr.Message)
	}
	if ctx.OK() {
		t.Error("OK() should be false after a report")
	}
}

func TestStatusResolution(t *testing.T) {
	tests := []struct {
		name     string
		logicErr bool
		finish   RunStatus
		want     RunStatus
	}{
		{"unfinished clean run", false, "", StatusSuccess},
		{"finished success", false, StatusSuccess, StatusSuccess},
		{"logic error wins over success", true, StatusSuccess, StatusLogicError},
		{"terminal error kept", false, StatusMaxIterations, StatusMaxIterations},
		{"terminal error wins over logic error", true, StatusSyntaxError, StatusSyntaxError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext()
			if tt.logicErr {
				ctx.ReportLogicError("boom")
			}
			if tt.finish != "" {
				ctx.Finish(tt.finish)
			}
			if got := ctx.Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFramesStampedAtCurrentTime(t *testing.T) {
	ctx := NewContext()
	ctx.AddFrame("started", FrameSuccess)
	if err := ctx.Advance(250); err != nil {
		t.Fatal(err)
	}
	ctx.AddFrame("moved", FrameSuccess)

	frames := ctx.Frames()
	if len(frames) != 2 {
		t.Fatalf("len(Frames()) = %d, want 2", len(frames))
	}
	if frames[0].Time != 0 || frames[1].Time != 250 {
		t.Errorf("frame times = %d, %d, want 0, 250", frames[0].Time, frames[1].Time)
	}
}

func TestRunErrorClassification(t *testing.T) {
	logicErr := NewLogicError("nope")
	if !IsLogic(logicErr) {
		t.Error("IsLogic(logic error) = false")
	}
	if !IsLogic(NewValidationError("bad type")) {
		t.Error("IsLogic(validation error) = false")
	}
	if IsLogic(NewRuntimeError("crash", nil)) {
		t.Error("IsLogic(runtime error) = true")
	}

	synErr := NewSyntaxError("unexpected token", nil).WithPosition(3, 7)
	if !IsSyntax(synErr) {
		t.Error("IsSyntax(syntax error) = false")
	}
	if synErr.Line != 3 || synErr.Column != 7 {
		t.Errorf("position = %d:%d, want 3:7", synErr.Line, synErr.Column)
	}
}
