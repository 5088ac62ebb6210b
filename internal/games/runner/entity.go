// Package runner implements the G Runner game engine: a side-scrolling
// obstacle-avoidance game where the player moves vertically to collect
// beneficial objects and dodge harmful ones while the world accelerates.
//
// The package holds no terminal or audio code. It issues draw and sound
// commands through the Presenter interface and receives input as Events
// plus a level-triggered core.InputFrame, so every rule can be exercised
// deterministically in tests.
package runner

import (
	"math"

	"github.com/vovakirdan/g-runner/internal/core"
)

// Outcome is what happens when the player touches an obstacle.
type Outcome int

const (
	OutcomeBeneficial Outcome = iota // Award points and remove the obstacle
	OutcomeHarmful                   // End the round
)

func (o Outcome) String() string {
	if o == OutcomeBeneficial {
		return "beneficial"
	}
	return "harmful"
}

// Category is the closed set of obstacle kinds.
type Category int

const (
	CategoryVim Category = iota
	CategoryApple
	CategoryDell
	CategoryVSCode
)

// Categories lists every obstacle kind in spawn-table order.
var Categories = []Category{CategoryVim, CategoryApple, CategoryDell, CategoryVSCode}

// Outcome returns the outcome class of the category.
func (c Category) Outcome() Outcome {
	switch c {
	case CategoryVim, CategoryApple:
		return OutcomeBeneficial
	default:
		return OutcomeHarmful
	}
}

// String returns the category name, which is also its image asset name.
func (c Category) String() string {
	switch c {
	case CategoryVim:
		return "vim"
	case CategoryApple:
		return "apple"
	case CategoryDell:
		return "dell"
	case CategoryVSCode:
		return "vscode"
	default:
		return "unknown"
	}
}

// Player is the single player-controlled sprite. X never changes.
type Player struct {
	X, Y  int // Top-left corner in playfield units
	W, H  int
	Frame int // Animation phase, wraps over the configured frame count
}

// Rect returns the player's bounding box.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// Obstacle scrolls from the spawn window towards the left edge.
type Obstacle struct {
	ID       uint64 // Creation order within the process, used as collision order
	Category Category
	X        float64 // Left edge; fractional because the scroll scale is real
	Y        int
	W, H     int
}

// Rect returns the obstacle's bounding box, rounding X to the nearest unit.
func (o Obstacle) Rect() core.Rect {
	return core.NewRect(int(math.Round(o.X)), o.Y, o.W, o.H)
}
