// Package window hosts the particle field in an Ebitengine window.
package window

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/starfield/internal/config"
	"github.com/olivierh59500/starfield/internal/display"
	"github.com/olivierh59500/starfield/internal/field"
)

// imageSurface draws onto an ebiten image
type imageSurface struct {
	dst *ebiten.Image
}

func (s *imageSurface) Clear(c color.NRGBA) {
	s.dst.Fill(c)
}

func (s *imageSurface) FillCircle(x, y, r float64, c color.NRGBA) {
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), c, true)
}

func (s *imageSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

// Window is the Ebitengine host. It implements ebiten.Game.
type Window struct {
	Field  *field.Field
	loop   *field.Loop
	queue  *field.FrameQueue
	canvas *imageSurface
	width  int
	height int
	Paused bool // User pause, toggled with Space
}

// New creates the host and a field sized to the configured window
func New(cfg config.Config, rng field.Rand) (*Window, error) {
	f, err := display.NewField(cfg, float64(cfg.Width), float64(cfg.Height), rng)
	if err != nil {
		return nil, err
	}

	w := &Window{
		Field:  f,
		queue:  &field.FrameQueue{},
		canvas: &imageSurface{},
		width:  cfg.Width,
		height: cfg.Height,
	}
	w.loop = display.StartLoop(f, w.canvas, w.queue)
	return w, nil
}

// Update is called each tick by Ebitengine
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.Paused = !w.Paused
	}

	w.loop.SetVisible(!ebiten.IsWindowMinimized() && !w.Paused)
	return nil
}

// Draw is called before each repaint. Pending field frames run here.
func (w *Window) Draw(screen *ebiten.Image) {
	w.canvas.dst = screen
	w.queue.Fire()
	w.canvas.dst = nil
}

// Layout follows the window size and resizes the field when it changes
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != w.width || outsideHeight != w.height) {
		w.width, w.height = outsideWidth, outsideHeight
		w.Field.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return w.width, w.height
}

// Run opens a window and runs the field until the user quits
func Run(cfg config.Config, rng field.Rand) error {
	w, err := New(cfg, rng)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetRunnableOnUnfocused(true)
	// The last frame stays on screen while the loop is stopped
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
