package display

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/starfield/internal/config"
	"github.com/olivierh59500/starfield/internal/field"
)

// Terminal is the tcell host. Focus loss counts as the surface being hidden.
type Terminal struct {
	Field   *field.Field
	Paused  bool // User pause, toggled with Space
	screen  tcell.Screen
	loop    *field.Loop
	queue   *field.FrameQueue
	grid    *cellGrid
	tps     int
	focused bool
}

// NewTerminal creates the host on an initialized screen, with a field
// covering the whole screen
func NewTerminal(screen tcell.Screen, cfg config.Config, rng field.Rand) (*Terminal, error) {
	cols, rows := screen.Size()
	f, err := NewField(cfg, float64(cols)*CellWidth, float64(rows)*CellHeight, rng)
	if err != nil {
		return nil, err
	}

	t := &Terminal{
		Field:   f,
		screen:  screen,
		queue:   &field.FrameQueue{},
		grid:    newCellGrid(cols, rows),
		tps:     cfg.TPS,
		focused: true,
	}
	t.loop = StartLoop(f, t.grid, t.queue)
	return t, nil
}

// Run pumps events and frames until ctx is done or the user quits
func (t *Terminal) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(t.tps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !t.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			t.frame()
		}
	}
}

// frame fires the queued field frame and shows it
func (t *Terminal) frame() {
	if t.queue.Fire() > 0 {
		t.grid.draw(t.screen)
	}
}

// handleEvent returns false when the user asked to quit
func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			t.Paused = !t.Paused
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.resize(cols, rows)

	case *tcell.EventFocus:
		t.focused = ev.Focused
	}

	t.loop.SetVisible(t.focused && !t.Paused)
	return true
}

// resize follows the terminal size and repaints the current state
func (t *Terminal) resize(cols, rows int) {
	t.screen.Sync()
	t.grid.resize(cols, rows)
	t.Field.Resize(float64(cols)*CellWidth, float64(rows)*CellHeight)
	t.Field.Redraw(t.grid)
	t.grid.draw(t.screen)
}

// RunTerminal takes over the terminal and runs the field until ctx is done
// or the user quits
func RunTerminal(ctx context.Context, cfg config.Config, rng field.Rand) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	screen.EnableFocus()
	screen.HideCursor()

	t, err := NewTerminal(screen, cfg, rng)
	if err != nil {
		return err
	}
	return t.Run(ctx)
}
