package exercises

import (
	"fmt"

	"github.com/jikirun/jikirun/pkg/exec"
	"github.com/jikirun/jikirun/pkg/exercise"
	"github.com/jikirun/jikirun/pkg/object"
	"github.com/jikirun/jikirun/pkg/timeline"
)

// shapeFadeIn is how long each drawn shape takes to appear, in virtual ms.
const shapeFadeIn = 100

// Drawing is a canvas exercise: scripts call shape functions and each
// call fades one shape onto the canvas.
type Drawing struct {
	exercise.Base
	shapes []object.JikiObject
}

// NewDrawing constructs the exercise for one run.
func NewDrawing(ctx *exec.Context, rec *timeline.Recorder) exercise.Exercise {
	return &Drawing{Base: exercise.NewBase(ctx, rec)}
}

func (d *Drawing) Slug() string { return "drawing" }

func (d *Drawing) AvailableFunctions() []exercise.HostFunction {
	return []exercise.HostFunction{
		{
			Name:        "rectangle",
			Description: "drew a rectangle at (${arg1}, ${arg2}) sized ${arg3} by ${arg4}",
			Func:        d.rectangle,
		},
		{
			Name:        "circle",
			Description: "drew a circle at (${arg1}, ${arg2}) with radius ${arg3}",
			Func:        d.circle,
		},
	}
}

func (d *Drawing) GetState() map[string]object.JikiObject {
	return map[string]object.JikiObject{
		"shapes": object.NewList(d.shapes...),
		"count":  object.NewNumber(float64(len(d.shapes))),
	}
}

func (d *Drawing) rectangle(ctx *exec.Context, args []object.JikiObject) object.JikiObject {
	if !object.RequireArity(ctx, args, 4, "rectangle") {
		return nil
	}
	x, ok := object.RequireNumber(ctx, args[0], "x")
	if !ok {
		return nil
	}
	y, ok := object.RequireNumber(ctx, args[1], "y")
	if !ok {
		return nil
	}
	width, ok := object.RequireNumber(ctx, args[2], "width")
	if !ok {
		return nil
	}
	height, ok := object.RequireNumber(ctx, args[3], "height")
	if !ok {
		return nil
	}
	if width <= 0 || height <= 0 {
		ctx.ReportLogicError("a rectangle's width and height must both be positive")
		return nil
	}

	d.appendShape(map[string]object.JikiObject{
		"type":   object.NewString("rectangle"),
		"x":      object.NewNumber(x),
		"y":      object.NewNumber(y),
		"width":  object.NewNumber(width),
		"height": object.NewNumber(height),
	})
	return nil
}

func (d *Drawing) circle(ctx *exec.Context, args []object.JikiObject) object.JikiObject {
	if !object.RequireArity(ctx, args, 3, "circle") {
		return nil
	}
	cx, ok := object.RequireNumber(ctx, args[0], "cx")
	if !ok {
		return nil
	}
	cy, ok := object.RequireNumber(ctx, args[1], "cy")
	if !ok {
		return nil
	}
	radius, ok := object.RequireNumber(ctx, args[2], "radius")
	if !ok {
		return nil
	}
	if radius <= 0 {
		ctx.ReportLogicError("a circle's radius must be positive")
		return nil
	}

	d.appendShape(map[string]object.JikiObject{
		"type":   object.NewString("circle"),
		"cx":     object.NewNumber(cx),
		"cy":     object.NewNumber(cy),
		"radius": object.NewNumber(radius),
	})
	return nil
}

func (d *Drawing) appendShape(fields map[string]object.JikiObject) {
	d.shapes = append(d.shapes, object.NewDictionary(fields))
	// Errors from Advance cannot occur for a non-negative constant.
	_ = d.Recorder.FastForwardAfter(timeline.Effect{
		Targets:         fmt.Sprintf("#shape-%d", len(d.shapes)),
		Duration:        shapeFadeIn,
		Transformations: map[string]interface{}{"opacity": 1},
	}, shapeFadeIn)
}
