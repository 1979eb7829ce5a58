package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState holds the polled state of inputs for a single tick,
// separating input polling from input handling.
type InputState struct {
	Quit             bool
	Next             bool
	Previous         bool
	TogglePause      bool
	RandomJump       bool
	ToggleFullscreen bool

	LeftClick      bool
	MouseX, MouseY int
}

// ReadState polls the keyboard and mouse once per tick.
func ReadState() InputState {
	var st InputState

	st.Quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyQ)
	st.Next = inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) ||
		inpututil.IsKeyJustPressed(ebiten.KeyN)
	st.Previous = inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) ||
		inpututil.IsKeyJustPressed(ebiten.KeyP)
	st.TogglePause = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	st.RandomJump = inpututil.IsKeyJustPressed(ebiten.KeyR)
	st.ToggleFullscreen = inpututil.IsKeyJustPressed(ebiten.KeyF)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		st.LeftClick = true
		st.MouseX, st.MouseY = ebiten.CursorPosition()
	}

	return st
}

// Zone is a horizontal third of the screen used for click navigation.
type Zone int

const (
	ZoneLeft Zone = iota
	ZoneMiddle
	ZoneRight
)

// ClickZone maps a click at x on a surface of the given width to its
// screen third. The thirds use integer division, with both boundary
// pixels belonging to the middle zone.
func ClickZone(x, width int) Zone {
	switch {
	case x < width/3:
		return ZoneLeft
	case x > 2*width/3:
		return ZoneRight
	default:
		return ZoneMiddle
	}
}
