// Package exercises contains the built-in exercises: small worlds of
// drawable shapes, game entities, and robots that interpreted student
// code drives through the capability surface.
package exercises

import (
	"github.com/jikirun/jikirun/pkg/exercise"
)

// RegisterAll registers every built-in exercise into the registry.
func RegisterAll(reg *exercise.Registry) error {
	if err := reg.Register("drawing", NewDrawing); err != nil {
		return err
	}
	if err := reg.Register("ball-game", NewBallGame); err != nil {
		return err
	}
	if err := reg.Register("maze", NewMaze); err != nil {
		return err
	}
	return nil
}

// DefaultRegistry returns a registry with all built-in exercises.
func DefaultRegistry() *exercise.Registry {
	reg := exercise.NewRegistry()
	// Registration of the built-in set cannot collide.
	_ = RegisterAll(reg)
	return reg
}
