package viewer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyframe/pyframe/internal/catalog"
	"github.com/pyframe/pyframe/internal/config"
	"github.com/pyframe/pyframe/internal/transition"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestDecodeImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, path, 32, 16)

	img, err := decodeImage(path)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
}

func TestDecodeImageCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("this is not a png"), 0644))

	_, err := decodeImage(path)
	assert.Error(t, err)
}

func TestDecodeImageMissing(t *testing.T) {
	_, err := decodeImage(filepath.Join(t.TempDir(), "gone.png"))
	assert.Error(t, err)
}

func newTestViewer(t *testing.T, delay float64) *Viewer {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 4, 4)

	cat, err := catalog.Scan(dir)
	require.NoError(t, err)

	return New(config.Settings{
		ImageDirectory: dir,
		FillType:       config.FillBlack,
		SlideshowMode:  config.ModeSequential,
		SlideshowDelay: delay,
	}, cat, nil)
}

func TestAccrueDelayFiresAfterHold(t *testing.T) {
	v := newTestViewer(t, 1.0)

	assert.False(t, v.accrueDelay(400*time.Millisecond))
	assert.False(t, v.accrueDelay(400*time.Millisecond))
	assert.True(t, v.accrueDelay(400*time.Millisecond))
}

func TestAccrueDelayFrozenWhilePaused(t *testing.T) {
	v := newTestViewer(t, 1.0)
	v.seq.TogglePause()

	// Hours of paused ticks must not bank toward the next advance.
	for i := 0; i < 100; i++ {
		assert.False(t, v.accrueDelay(time.Minute))
	}
	assert.Equal(t, time.Duration(0), v.delayElapsed)

	// After unpausing the hold starts from zero.
	v.seq.TogglePause()
	assert.False(t, v.accrueDelay(900*time.Millisecond))
	assert.True(t, v.accrueDelay(200*time.Millisecond))
}

func TestAccrueDelayFrozenWhileFading(t *testing.T) {
	v := newTestViewer(t, 1.0)
	v.fade = transition.New(time.Second)
	v.fade.Begin(time.Now())

	assert.False(t, v.accrueDelay(time.Hour))
	assert.Equal(t, time.Duration(0), v.delayElapsed)
}
