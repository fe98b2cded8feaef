package exercises

import (
	"fmt"

	"github.com/jikirun/jikirun/pkg/exec"
	"github.com/jikirun/jikirun/pkg/exercise"
	"github.com/jikirun/jikirun/pkg/object"
	"github.com/jikirun/jikirun/pkg/timeline"
)

const (
	ballMoveDuration = 150
	ballShotDuration = 300
	fieldWidth       = 100.0
	fieldHeight      = 100.0
)

// BallGame is a class-driven exercise: scripts construct a Game holding
// a Ball and move the ball around the field through declared setters and
// methods. The Game-to-Ball reference is a non-owning cross-reference
// used for lookup only.
type BallGame struct {
	exercise.Base
	ballClass *object.ClassDefinition
	gameClass *object.ClassDefinition
	game      *object.Instance
	shots     int
}

// NewBallGame constructs the exercise for one run. Class definitions are
// built once here and immutable thereafter; the exercise is passed into
// each builder explicitly so class bodies can reach shared state.
func NewBallGame(ctx *exec.Context, rec *timeline.Recorder) exercise.Exercise {
	bg := &BallGame{Base: exercise.NewBase(ctx, rec)}
	bg.ballClass = newBallClass(bg)
	bg.gameClass = newGameClass(bg)
	return bg
}

func (bg *BallGame) Slug() string { return "ball-game" }

func (bg *BallGame) AvailableClasses() []*object.ClassDefinition {
	return []*object.ClassDefinition{bg.ballClass, bg.gameClass}
}

func (bg *BallGame) GetState() map[string]object.JikiObject {
	state := map[string]object.JikiObject{
		"shots": object.NewNumber(float64(bg.shots)),
	}
	if bg.game != nil {
		if ball, ok := bg.game.GetField("ball").(*object.Instance); ok {
			state["ball_x"] = ball.GetField("x")
			state["ball_y"] = ball.GetField("y")
		}
	}
	return state
}

// newBallClass defines Ball: constructed with an x/y position, moved by
// assigning the x and y setters. Every accepted move records a translate
// effect and advances the clock.
func newBallClass(bg *BallGame) *object.ClassDefinition {
	moveAxis := func(axis string, limit float64) object.SetterFn {
		return func(ctx *exec.Context, inst *object.Instance, value object.JikiObject) {
			pos, ok := object.RequireNumber(ctx, value, "the ball's "+axis+" position")
			if !ok {
				return
			}
			if pos < 0 || pos > limit {
				ctx.ReportLogicError(fmt.Sprintf("the ball cannot leave the field: %s must be between 0 and %g", axis, limit))
				return
			}
			inst.SetField(axis, object.NewNumber(pos))
			_ = bg.Recorder.FastForwardAfter(timeline.Effect{
				Targets:         "#ball",
				Duration:        ballMoveDuration,
				Transformations: map[string]interface{}{axis: pos},
				Easing:          "ease-in-out",
			}, ballMoveDuration)
		}
	}

	return object.DefineClass("Ball").
		AddConstructor(func(ctx *exec.Context, inst *object.Instance, args []object.JikiObject) {
			if !object.RequireArity(ctx, args, 2, "Ball") {
				return
			}
			x, ok := object.RequireNumber(ctx, args[0], "the ball's x position")
			if !ok {
				return
			}
			y, ok := object.RequireNumber(ctx, args[1], "the ball's y position")
			if !ok {
				return
			}
			inst.SetField("x", object.NewNumber(x))
			inst.SetField("y", object.NewNumber(y))
		}).
		AddGetter("x", object.Public, nil).
		AddGetter("y", object.Public, nil).
		AddSetter("x", object.Public, moveAxis("x", fieldWidth)).
		AddSetter("y", object.Public, moveAxis("y", fieldHeight)).
		Build()
}

// newGameClass defines Game: holds the ball and exposes shoot.
func newGameClass(bg *BallGame) *object.ClassDefinition {
	return object.DefineClass("Game").
		AddConstructor(func(ctx *exec.Context, inst *object.Instance, args []object.JikiObject) {
			if !object.RequireArity(ctx, args, 1, "Game") {
				return
			}
			ball, ok := args[0].(*object.Instance)
			if !ok || ball.Class().Name() != "Ball" {
				ctx.ReportValidationError("a Game must be constructed with a Ball")
				return
			}
			inst.SetField("ball", ball)
			bg.game = inst
		}).
		AddGetter("ball", object.Public, nil).
		AddMethod("shoot", "shot the ball towards the goal", object.Public,
			func(ctx *exec.Context, inst *object.Instance, args []object.JikiObject) object.JikiObject {
				if !object.RequireArity(ctx, args, 0, "shoot") {
					return nil
				}
				ball, ok := inst.GetField("ball").(*object.Instance)
				if !ok {
					ctx.ReportLogicError("the game has no ball to shoot")
					return nil
				}
				bg.shots++
				ball.SetField("x", object.NewNumber(fieldWidth))
				_ = bg.Recorder.FastForwardAfter(timeline.Effect{
					Targets:         "#ball",
					Duration:        ballShotDuration,
					Transformations: map[string]interface{}{"x": fieldWidth},
					Easing:          "ease-out",
				}, ballShotDuration)
				return object.NewNumber(float64(bg.shots))
			}).
		Build()
}
