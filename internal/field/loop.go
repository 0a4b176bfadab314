package field

import "errors"

// ErrNoSurface is returned when a loop is created without a drawing surface.
// Hosts treat it as the effect being disabled.
var ErrNoSurface = errors.New("field: no drawing surface")

// Loop drives a Field one frame per scheduler tick while visible. A nil
// Loop is a disabled effect and ignores every call.
type Loop struct {
	field   *Field
	surface Surface
	sched   Scheduler
	pending TickID
	running bool
	frames  uint64
}

// NewLoop binds f to a surface and scheduler. The loop starts stopped.
func NewLoop(f *Field, s Surface, sched Scheduler) (*Loop, error) {
	if s == nil {
		return nil, ErrNoSurface
	}
	return &Loop{field: f, surface: s, sched: sched}, nil
}

// Start schedules the next frame. It does not run one immediately, so a
// Stop/Start pair leaves the field untouched.
func (l *Loop) Start() {
	if l == nil || l.running {
		return
	}
	l.running = true
	l.schedule()
}

// Stop cancels the pending frame. Particle state is kept as is.
func (l *Loop) Stop() {
	if l == nil || !l.running {
		return
	}
	l.running = false
	if l.pending != 0 {
		l.sched.CancelTick(l.pending)
		l.pending = 0
	}
}

// SetVisible starts the loop when the surface is shown and stops it when
// hidden.
func (l *Loop) SetVisible(visible bool) {
	if visible {
		l.Start()
	} else {
		l.Stop()
	}
}

// Running reports whether a frame is scheduled
func (l *Loop) Running() bool { return l != nil && l.running }

// Frames returns how many frames this loop has run
func (l *Loop) Frames() uint64 {
	if l == nil {
		return 0
	}
	return l.frames
}

func (l *Loop) schedule() {
	l.pending = l.sched.RequestTick(l.tick)
}

func (l *Loop) tick() {
	l.pending = 0
	if !l.running {
		return
	}
	l.field.Step(l.surface)
	l.frames++
	l.schedule()
}
