package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/g-runner/internal/core"
)

// Title is the game's display name.
const Title = "G Runner"

func (e *Engine) center(yFraction float64) core.Point {
	return core.Point{
		X: e.cfg.Playfield.Width / 2,
		Y: int(float64(e.cfg.Playfield.Height) * yFraction),
	}
}

func (e *Engine) drawTitle() {
	p := e.presenter
	p.Draw(e.assets.background, core.Point{})
	p.DrawText("G  R U N N E R", e.center(0.25), AlignCenter)
	p.DrawText("Collect vim and apples. Dodge dell and vscode.", e.center(0.45), AlignCenter)
	p.DrawText("Up/Down to move", e.center(0.55), AlignCenter)
	p.DrawText("Press ENTER to start, Q to quit", e.center(0.7), AlignCenter)
}

func (e *Engine) drawOver() {
	s := e.session
	p := e.presenter
	p.Draw(e.assets.background, core.Point{})
	p.DrawText("GAME OVER", e.center(0.25), AlignCenter)
	p.DrawText(fmt.Sprintf("Score: %d", s.LastScore), e.center(0.45), AlignCenter)
	p.DrawText(fmt.Sprintf("High score: %d", s.HighScore), e.center(0.55), AlignCenter)
	p.DrawText("Press ENTER to play again, Q to quit", e.center(0.7), AlignCenter)
}

// drawField draws background, obstacles and player, back to front.
func (e *Engine) drawField() {
	s := e.session
	p := e.presenter

	p.Draw(e.assets.background, core.Point{X: -int(math.Round(s.Background))})
	for _, o := range s.Obstacles {
		p.Draw(e.assets.obstacles[o.Category], o.Rect().TopLeft())
	}
	if len(e.assets.player) > 0 {
		frame := s.Player.Frame % len(e.assets.player)
		p.Draw(e.assets.player[frame], s.Player.Rect().TopLeft())
	}
}

func (e *Engine) drawHUD() {
	s := e.session
	e.presenter.DrawText(fmt.Sprintf("Score: %d", s.Score), core.Point{X: 10, Y: 0}, AlignLeft)
	e.presenter.DrawText(fmt.Sprintf("Speed x%.2f", 1+s.Difficulty.Scale()), core.Point{X: e.cfg.Playfield.Width - 150, Y: 0}, AlignLeft)
}
