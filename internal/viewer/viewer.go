// Package viewer runs the fullscreen slideshow: a fixed-rate ebiten
// game loop that owns all mutable slideshow state, advancing on a
// timer and reacting to keyboard, mouse and control-socket commands.
package viewer

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/pyframe/pyframe/internal/catalog"
	"github.com/pyframe/pyframe/internal/compositor"
	"github.com/pyframe/pyframe/internal/config"
	"github.com/pyframe/pyframe/internal/ipc"
	"github.com/pyframe/pyframe/internal/sequencer"
	"github.com/pyframe/pyframe/internal/transition"
)

const ticksPerSecond = 30

// debugCharWidth and debugLineHeight match the ebitenutil debug font,
// used to center the paused overlay.
const (
	debugCharWidth  = 6
	debugLineHeight = 16
)

// Viewer is the single owner of slideshow state. All mutation happens
// inside Update; the only cross-goroutine surfaces are the buffered
// command queue and the status snapshot, both safe by construction.
type Viewer struct {
	settings config.Settings
	catalog  *catalog.Catalog
	seq      *sequencer.Sequencer
	fade     *transition.Crossfade

	width, height int

	current     *ebiten.Image
	previous    *ebiten.Image
	currentSrc  image.Image // decoded source of the current frame, for recomposition
	currentPath string

	delayElapsed time.Duration
	lastTick     time.Time

	cmds        chan ipc.Command
	watchEvents <-chan catalog.Event

	bad map[string]bool

	quit bool

	snapMu sync.Mutex
	snap   ipc.ViewerStatus
}

// New creates a viewer over an already scanned catalog. watchEvents
// may be nil when directory watching is disabled.
func New(settings config.Settings, cat *catalog.Catalog, watchEvents <-chan catalog.Event) *Viewer {
	if settings.SlideshowMode == config.ModeRandom {
		// Randomize the walk order so a history-less retreat still
		// varies between runs.
		cat.Shuffle()
	}

	return &Viewer{
		settings:    settings,
		catalog:     cat,
		seq:         sequencer.New(settings.SlideshowMode, cat.Len()),
		fade:        transition.New(time.Duration(settings.TransitionDuration * float64(time.Second))),
		cmds:        make(chan ipc.Command, 8),
		watchEvents: watchEvents,
		bad:         make(map[string]bool),
	}
}

// Run opens the fullscreen window and blocks until the user quits or
// the window is closed.
func (v *Viewer) Run() error {
	monitorW, monitorH := ebiten.Monitor().Size()
	log.Info("display", "width", monitorW, "height", monitorH)

	ebiten.SetWindowTitle("Photo Frame")
	ebiten.SetWindowSize(monitorW, monitorH)
	ebiten.SetFullscreen(true)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)
	ebiten.SetTPS(ticksPerSecond)

	return ebiten.RunGame(v)
}

// EnqueueCommand queues a control-socket command for the next tick.
// Safe to call from the IPC goroutine.
func (v *Viewer) EnqueueCommand(cmd ipc.Command) {
	select {
	case v.cmds <- cmd:
	default:
		log.Warn("command queue full, dropped command", "type", cmd.Type)
	}
}

// Snapshot returns the viewer state as of the last completed tick.
// Safe to call from the IPC goroutine.
func (v *Viewer) Snapshot() ipc.ViewerStatus {
	v.snapMu.Lock()
	defer v.snapMu.Unlock()
	return v.snap
}

func (v *Viewer) Update() error {
	now := time.Now()
	if v.lastTick.IsZero() {
		v.lastTick = now
	}
	dt := now.Sub(v.lastTick)
	v.lastTick = now

	if v.current == nil && v.width > 0 {
		// First tick after Layout has established the surface size.
		// Start in Holding with previous == current so nothing fades
		// in from an undefined frame.
		v.navigate(now, v.seq.Current)
		v.previous = v.current
		v.fade = transition.New(time.Duration(v.settings.TransitionDuration * float64(time.Second)))
	}

	v.drainCommands(now)
	v.applyWatchEvents()
	v.handleInput(now)

	if v.quit {
		return ebiten.Termination
	}

	if v.accrueDelay(dt) {
		v.advance(now)
	}

	v.updateSnapshot()
	return nil
}

// accrueDelay advances the hold timer by dt and reports whether the
// slideshow delay has elapsed. The timer only runs while unpaused and
// not mid-fade, so pausing never banks up an instant advance for
// later.
func (v *Viewer) accrueDelay(dt time.Duration) bool {
	if v.seq.Paused() || v.fade.State() != transition.Holding {
		return false
	}
	v.delayElapsed += dt
	return v.delayElapsed.Seconds() >= v.settings.SlideshowDelay
}

func (v *Viewer) drainCommands(now time.Time) {
	for {
		select {
		case cmd := <-v.cmds:
			switch cmd.Type {
			case ipc.CommandStop:
				log.Info("Received stop command")
				v.quit = true
			case ipc.CommandNext:
				v.advance(now)
			case ipc.CommandPrevious:
				v.retreat(now)
			case ipc.CommandPause:
				v.togglePause()
			case ipc.CommandRandom:
				v.jumpRandom(now)
			default:
				log.Error("Unknown command", "type", cmd.Type)
			}
		default:
			return
		}
	}
}

func (v *Viewer) applyWatchEvents() {
	if v.watchEvents == nil {
		return
	}
	for {
		select {
		case ev := <-v.watchEvents:
			switch ev.Op {
			case catalog.Added:
				if v.catalog.Add(ev.Path) {
					log.Info("Image added", "path", ev.Path)
					v.seq.Resize(v.catalog.Len())
				}
			case catalog.Removed:
				if _, ok := v.catalog.Remove(ev.Path); ok {
					log.Info("Image removed", "path", ev.Path)
					delete(v.bad, ev.Path)
					if v.catalog.Len() == 0 {
						log.Error("All images removed from catalog")
					}
					v.seq.Resize(v.catalog.Len())
				}
			}
		default:
			return
		}
	}
}

func (v *Viewer) handleInput(now time.Time) {
	st := ReadState()

	switch {
	case st.Quit:
		v.quit = true
	case st.Next:
		v.advance(now)
	case st.Previous:
		v.retreat(now)
	case st.TogglePause:
		v.togglePause()
	case st.RandomJump:
		v.jumpRandom(now)
	case st.ToggleFullscreen:
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	case st.LeftClick:
		switch ClickZone(st.MouseX, v.width) {
		case ZoneLeft:
			v.retreat(now)
		case ZoneRight:
			v.advance(now)
		case ZoneMiddle:
			v.togglePause()
		}
	}
}

func (v *Viewer) advance(now time.Time) {
	v.navigate(now, v.seq.Advance)
}

func (v *Viewer) retreat(now time.Time) {
	v.navigate(now, v.seq.Retreat)
}

func (v *Viewer) jumpRandom(now time.Time) {
	if v.catalog.Len() <= 1 {
		return
	}
	v.navigate(now, v.seq.JumpRandom)
}

// navigate runs one navigation step and, when the target image cannot
// be decoded, skips forward until a good image is found. Bounded by
// the catalog size so an all-bad catalog terminates with an error
// frame instead of spinning.
func (v *Viewer) navigate(now time.Time, step func() int) {
	v.delayElapsed = 0

	if v.catalog.Len() == 0 {
		v.showErrorFrame("catalog is empty")
		return
	}

	idx := step()
	for attempts := 0; attempts < v.catalog.Len(); attempts++ {
		if v.showIndex(idx, now) {
			return
		}
		idx = v.seq.Advance()
	}

	log.Error("no decodable images in catalog")
	v.showErrorFrame("no decodable images found")
}

func (v *Viewer) togglePause() {
	if v.seq.TogglePause() {
		log.Info("Slideshow paused")
	} else {
		log.Info("Slideshow resumed")
		v.delayElapsed = 0
	}
}

// showIndex decodes and composes the catalog entry at idx, keeping the
// outgoing frame as the fade source. Returns false when the file
// cannot be decoded; the path is remembered as bad so the skip loop
// does not retry it.
func (v *Viewer) showIndex(idx int, now time.Time) bool {
	path := v.catalog.Path(idx)
	if v.bad[path] {
		return false
	}

	img, err := decodeImage(path)
	if err != nil {
		log.Error("failed to decode image, skipping", "path", path, "err", err)
		v.bad[path] = true
		return false
	}
	log.Info("loading image", "path", path,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	composed := compositor.Compose(img, v.width, v.height, v.settings.FillType)

	if v.current != nil {
		v.previous = v.current
	}
	v.current = ebiten.NewImageFromImage(composed)
	v.currentSrc = img
	v.currentPath = path
	v.fade.Begin(now)
	return true
}

func (v *Viewer) showErrorFrame(msg string) {
	if v.width <= 0 || v.height <= 0 {
		return
	}
	frame := ebiten.NewImage(v.width, v.height)
	ebitenutil.DebugPrintAt(frame, msg,
		(v.width-len(msg)*debugCharWidth)/2, v.height/2)
	v.previous = v.current
	v.current = frame
	v.currentSrc = nil
	v.currentPath = ""
}

func (v *Viewer) updateSnapshot() {
	v.snapMu.Lock()
	defer v.snapMu.Unlock()
	v.snap = ipc.ViewerStatus{
		CurrentImage: v.currentPath,
		Paused:       v.seq.Paused(),
		Mode:         string(v.settings.SlideshowMode),
		CatalogSize:  v.catalog.Len(),
	}
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.current == nil {
		return
	}

	alpha := v.fade.Alpha(time.Now())

	screen.DrawImage(v.current, nil)
	if alpha < 1 && v.previous != nil {
		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleAlpha(float32(1 - alpha))
		screen.DrawImage(v.previous, op)
	}

	if v.seq.Paused() && v.fade.State() == transition.Holding {
		v.drawPausedOverlay(screen)
	}
}

func (v *Viewer) drawPausedOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "||", 10, 10)

	if v.currentPath == "" {
		return
	}
	label := v.currentPath
	if rel, err := filepath.Rel(v.catalog.Root(), v.currentPath); err == nil {
		label = rel
	}
	x := (v.width - len(label)*debugCharWidth) / 2
	y := v.height - debugLineHeight - 10
	ebitenutil.DebugPrintAt(screen, label, x, y)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != v.width || outsideHeight != v.height {
		v.width = outsideWidth
		v.height = outsideHeight
		v.recompose()
	}
	return v.width, v.height
}

// recompose rebuilds the current frame at the new surface size. The
// previous frame is dropped rather than rescaled; any fade in flight
// simply completes on the fresh frame.
func (v *Viewer) recompose() {
	if v.currentSrc == nil || v.width <= 0 || v.height <= 0 {
		return
	}
	composed := compositor.Compose(v.currentSrc, v.width, v.height, v.settings.FillType)
	v.current = ebiten.NewImageFromImage(composed)
	v.previous = v.current
}

func decodeImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	return img, nil
}
