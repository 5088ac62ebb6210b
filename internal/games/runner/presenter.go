package runner

import (
	"strconv"
	"time"

	"github.com/vovakirdan/g-runner/internal/core"
)

// ImageHandle identifies an image loaded by the presenter.
type ImageHandle int

// SoundHandle identifies a sound loaded by the presenter.
type SoundHandle int

// TimerID identifies a recurring platform timer.
type TimerID int

// SpawnTimer is the recurring timer whose events create obstacles.
const SpawnTimer TimerID = 1

// TextAlign controls how DrawText positions text relative to its point.
type TextAlign int

const (
	AlignLeft   TextAlign = iota // Point is the left end of the text
	AlignCenter                  // Point is the middle of the text
)

// Presenter is the presentation collaborator: drawing, audio and timers.
// Positions are playfield units; mapping them to output pixels or cells
// is the presenter's job. Calls are assumed to succeed once the assets
// have been loaded.
type Presenter interface {
	LoadImage(name string) (ImageHandle, error)
	LoadSound(name string) (SoundHandle, error)
	Draw(img ImageHandle, pos core.Point)
	DrawText(text string, pos core.Point, align TextAlign)
	// PresentFrame flushes every draw queued since the previous call.
	PresentFrame()
	PlaySound(h SoundHandle, loop bool)
	StopSound(h SoundHandle)
	// SetRecurringTimer (re)starts timer id so it fires every interval.
	SetRecurringTimer(id TimerID, interval time.Duration)
}

// EventKind classifies an Event.
type EventKind int

const (
	EventQuit    EventKind = iota // Window close or interrupt; honored in every state
	EventKeyDown                  // Edge-triggered key press
	EventTimer                    // A recurring timer fired
)

// Event is one entry of the per-tick event queue.
type Event struct {
	Kind  EventKind
	Key   core.Action // Set for EventKeyDown
	Timer TimerID     // Set for EventTimer
}

// QuitEvent returns a window-close event.
func QuitEvent() Event { return Event{Kind: EventQuit} }

// KeyDown returns a key-press event for the action.
func KeyDown(a core.Action) Event { return Event{Kind: EventKeyDown, Key: a} }

// TimerFired returns a timer event.
func TimerFired(id TimerID) Event { return Event{Kind: EventTimer, Timer: id} }

// Asset names requested from the presenter.
const (
	ImageBackground = "city"
	SoundTitleTheme = "title-theme"
	SoundGameTheme  = "game-theme"
	SoundCollect    = "collect"
	SoundFail       = "fail"
)

// PlayerImageName returns the asset name of player animation frame i.
func PlayerImageName(frame int) string {
	return "gprime-" + strconv.Itoa(frame)
}
