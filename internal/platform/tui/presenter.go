package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/g-runner/internal/core"
	"github.com/vovakirdan/g-runner/internal/games/runner"
)

// effectDuration is how long a one-shot sound stays in the status line.
const effectDuration = 600 * time.Millisecond

// Jukebox stands in for audio: it tracks the looping track and the latest
// one-shot effect so the status line can show what would be playing.
type Jukebox struct {
	loop        string
	effect      string
	effectUntil time.Time
}

// Play starts a track. A looping track replaces the current loop.
func (j *Jukebox) Play(name string, loop bool, now time.Time) {
	if loop {
		j.loop = name
		return
	}
	j.effect = name
	j.effectUntil = now.Add(effectDuration)
}

// Stop silences a track.
func (j *Jukebox) Stop(name string) {
	if j.loop == name {
		j.loop = ""
	}
	if j.effect == name {
		j.effect = ""
	}
}

// NowPlaying returns the looping track name, or "" when silent.
func (j *Jukebox) NowPlaying() string { return j.loop }

// Status returns the status line text at now.
func (j *Jukebox) Status(now time.Time) string {
	var parts []string
	if j.loop != "" {
		parts = append(parts, "♪ "+tracks[j.loop])
	}
	if j.effect != "" && now.Before(j.effectUntil) {
		parts = append(parts, tracks[j.effect])
	}
	return strings.Join(parts, "  ")
}

// ScreenPresenter implements runner.Presenter on a character screen.
// Playfield coordinates are scaled to the terminal size. Drawing goes to a
// back buffer that PresentFrame swaps to the front.
type ScreenPresenter struct {
	fieldW, fieldH int
	back, front    *core.Screen

	images []Sprite
	sounds []string

	jukebox Jukebox
	now     func() time.Time

	timers    map[runner.TimerID]uint64
	intervals map[runner.TimerID]time.Duration
	gen       uint64
	pending   []tea.Cmd
}

// NewScreenPresenter creates a presenter for a fieldW x fieldH playfield
// shown on a cols x rows screen.
func NewScreenPresenter(fieldW, fieldH, cols, rows int) *ScreenPresenter {
	return &ScreenPresenter{
		fieldW:    fieldW,
		fieldH:    fieldH,
		back:      core.NewScreen(cols, rows),
		front:     core.NewScreen(cols, rows),
		now:       time.Now,
		timers:    make(map[runner.TimerID]uint64),
		intervals: make(map[runner.TimerID]time.Duration),
	}
}

// Resize changes the screen size. Both buffers are cleared.
func (p *ScreenPresenter) Resize(cols, rows int) {
	p.back.Resize(cols, rows)
	p.front.Resize(cols, rows)
}

// Screen returns the last presented frame.
func (p *ScreenPresenter) Screen() *core.Screen { return p.front }

// Jukebox returns the audio stand-in.
func (p *ScreenPresenter) Jukebox() *Jukebox { return &p.jukebox }

// LoadImage resolves an image name to its sprite.
func (p *ScreenPresenter) LoadImage(name string) (runner.ImageHandle, error) {
	s, ok := sprites[name]
	if !ok {
		return 0, fmt.Errorf("tui: unknown image %q", name)
	}
	p.images = append(p.images, s)
	return runner.ImageHandle(len(p.images) - 1), nil
}

// LoadSound resolves a sound name to a jukebox track.
func (p *ScreenPresenter) LoadSound(name string) (runner.SoundHandle, error) {
	if _, ok := tracks[name]; !ok {
		return 0, fmt.Errorf("tui: unknown sound %q", name)
	}
	p.sounds = append(p.sounds, name)
	return runner.SoundHandle(len(p.sounds) - 1), nil
}

// Draw blits a sprite with its top-left corner at pos.
func (p *ScreenPresenter) Draw(h runner.ImageHandle, pos core.Point) {
	if int(h) < 0 || int(h) >= len(p.images) {
		return
	}
	s := p.images[h]
	x, y := p.toCell(pos)

	if s.Backdrop {
		p.drawBackdrop(s, x)
		return
	}
	p.blit(s, x, y)
}

// DrawText writes text at pos. Centered text is centered on pos.X.
func (p *ScreenPresenter) DrawText(text string, pos core.Point, align runner.TextAlign) {
	x, y := p.toCell(pos)
	if align == runner.AlignCenter {
		x -= len([]rune(text)) / 2
	}
	p.back.DrawText(x, y, text, core.ColorBrightWhite)
}

// PresentFrame makes the back buffer visible and starts a new one.
func (p *ScreenPresenter) PresentFrame() {
	p.back, p.front = p.front, p.back
	p.back.Clear()
}

// PlaySound starts a track on the jukebox.
func (p *ScreenPresenter) PlaySound(h runner.SoundHandle, loop bool) {
	if int(h) < len(p.sounds) {
		p.jukebox.Play(p.sounds[h], loop, p.now())
	}
}

// StopSound stops a track on the jukebox.
func (p *ScreenPresenter) StopSound(h runner.SoundHandle) {
	if int(h) < len(p.sounds) {
		p.jukebox.Stop(p.sounds[h])
	}
}

// SetRecurringTimer (re)programs a timer. The Bubble Tea command that
// drives it is queued until the model collects it with TakeCmds.
func (p *ScreenPresenter) SetRecurringTimer(id runner.TimerID, interval time.Duration) {
	p.gen++
	p.timers[id] = p.gen
	p.intervals[id] = interval
	if interval > 0 {
		p.pending = append(p.pending, timerCmd(id, p.gen, interval))
	}
}

// Fire handles a timer message. It reports whether the firing belongs to
// the current programming and returns the command for the next firing.
func (p *ScreenPresenter) Fire(msg TimerMsg) (tea.Cmd, bool) {
	gen, ok := p.timers[msg.ID]
	if !ok || gen != msg.Gen || p.intervals[msg.ID] <= 0 {
		return nil, false
	}
	return timerCmd(msg.ID, gen, p.intervals[msg.ID]), true
}

// TakeCmds returns and clears the queued timer commands.
func (p *ScreenPresenter) TakeCmds() []tea.Cmd {
	cmds := p.pending
	p.pending = nil
	return cmds
}

func (p *ScreenPresenter) toCell(pos core.Point) (int, int) {
	return floorDiv(pos.X*p.back.Width(), p.fieldW), floorDiv(pos.Y*p.back.Height(), p.fieldH)
}

func (p *ScreenPresenter) blit(s Sprite, x, y int) {
	for dy, line := range s.Lines {
		dx := 0
		for _, r := range line {
			if r != ' ' {
				p.back.SetColored(x+dx, y+dy, r, s.Color)
			}
			dx++
		}
	}
}

// drawBackdrop tiles s along the bottom rows, shifted by offset cells.
func (p *ScreenPresenter) drawBackdrop(s Sprite, offset int) {
	w := s.Width()
	if w == 0 {
		return
	}
	y := p.back.Height() - len(s.Lines)
	x := offset % w
	if x > 0 {
		x -= w
	}
	for ; x < p.back.Width(); x += w {
		p.blit(s, x, y)
	}
}

func floorDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
