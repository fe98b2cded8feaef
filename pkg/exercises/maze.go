package exercises

import (
	"github.com/jikirun/jikirun/pkg/exec"
	"github.com/jikirun/jikirun/pkg/exercise"
	"github.com/jikirun/jikirun/pkg/object"
	"github.com/jikirun/jikirun/pkg/timeline"
)

const (
	mazeStepDuration = 200
	mazeTurnDuration = 100
	mazeCellSize     = 40
)

// Maze directions, clockwise from up.
var mazeDirections = []string{"up", "right", "down", "left"}

var mazeDeltas = map[string][2]int{
	"up":    {-1, 0},
	"right": {0, 1},
	"down":  {1, 0},
	"left":  {0, -1},
}

// defaultMazeGrid is a small fixed maze; 1 is a wall.
var defaultMazeGrid = [][]int{
	{0, 0, 1, 0},
	{1, 0, 1, 0},
	{0, 0, 0, 0},
	{0, 1, 1, 0},
}

// Maze is a robot exercise: scripts steer a robot through a grid with
// move and turn functions. Walking into a wall is a logic error.
type Maze struct {
	exercise.Base
	grid      [][]int
	row, col  int
	direction int
	moves     int
}

// NewMaze constructs the exercise for one run with the robot at the
// top-left cell, facing right.
func NewMaze(ctx *exec.Context, rec *timeline.Recorder) exercise.Exercise {
	return &Maze{
		Base:      exercise.NewBase(ctx, rec),
		grid:      defaultMazeGrid,
		direction: 1,
	}
}

func (m *Maze) Slug() string { return "maze" }

func (m *Maze) AvailableFunctions() []exercise.HostFunction {
	return []exercise.HostFunction{
		{Name: "move", Description: "moved one cell forward", Func: m.move},
		{Name: "turn_left", Description: "turned to face left", Func: m.turnLeft},
		{Name: "turn_right", Description: "turned to face right", Func: m.turnRight},
		{Name: "can_move", Description: "looked at the cell ahead", Func: m.canMove},
	}
}

func (m *Maze) GetState() map[string]object.JikiObject {
	return map[string]object.JikiObject{
		"row":       object.NewNumber(float64(m.row)),
		"column":    object.NewNumber(float64(m.col)),
		"direction": object.NewString(mazeDirections[m.direction]),
		"moves":     object.NewNumber(float64(m.moves)),
	}
}

func (m *Maze) blocked() bool {
	delta := mazeDeltas[mazeDirections[m.direction]]
	row, col := m.row+delta[0], m.col+delta[1]
	if row < 0 || row >= len(m.grid) || col < 0 || col >= len(m.grid[row]) {
		return true
	}
	return m.grid[row][col] == 1
}

func (m *Maze) move(ctx *exec.Context, args []object.JikiObject) object.JikiObject {
	if !object.RequireArity(ctx, args, 0, "move") {
		return nil
	}
	if m.blocked() {
		ctx.ReportLogicError("you can't move there: the robot bumped into a wall")
		return nil
	}
	delta := mazeDeltas[mazeDirections[m.direction]]
	m.row += delta[0]
	m.col += delta[1]
	m.moves++
	_ = m.Recorder.FastForwardAfter(timeline.Effect{
		Targets:  "#robot",
		Duration: mazeStepDuration,
		Transformations: map[string]interface{}{
			"left": m.col * mazeCellSize,
			"top":  m.row * mazeCellSize,
		},
		Easing: "linear",
	}, mazeStepDuration)
	return nil
}

func (m *Maze) turnLeft(ctx *exec.Context, args []object.JikiObject) object.JikiObject {
	return m.turn(ctx, args, "turn_left", -1)
}

func (m *Maze) turnRight(ctx *exec.Context, args []object.JikiObject) object.JikiObject {
	return m.turn(ctx, args, "turn_right", 1)
}

func (m *Maze) turn(ctx *exec.Context, args []object.JikiObject, name string, step int) object.JikiObject {
	if !object.RequireArity(ctx, args, 0, name) {
		return nil
	}
	m.direction = (m.direction + step + len(mazeDirections)) % len(mazeDirections)
	_ = m.Recorder.FastForwardAfter(timeline.Effect{
		Targets:         "#robot",
		Duration:        mazeTurnDuration,
		Transformations: map[string]interface{}{"rotate": m.direction * 90},
	}, mazeTurnDuration)
	return nil
}

func (m *Maze) canMove(ctx *exec.Context, args []object.JikiObject) object.JikiObject {
	if !object.RequireArity(ctx, args, 0, "can_move") {
		return nil
	}
	return object.NewBoolean(!m.blocked())
}
