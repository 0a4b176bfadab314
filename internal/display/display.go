// Package display hosts a particle field: it provides the drawing surface,
// frame ticks, resize and visibility events that the field package expects
// from its environment.
package display

import (
	"errors"
	"log"

	"github.com/olivierh59500/starfield/internal/config"
	"github.com/olivierh59500/starfield/internal/field"
)

// NewField builds a field sized w by h from the config
func NewField(cfg config.Config, w, h float64, rng field.Rand) (*field.Field, error) {
	particle, background, err := cfg.Palette()
	if err != nil {
		return nil, err
	}

	return field.New(w, h, rng,
		field.WithColor(particle),
		field.WithCounts(cfg.MobileCount, cfg.DesktopCount),
		field.WithTwinkleChance(cfg.TwinkleChance),
		field.WithBackdrop(field.NewBackdrop(background, cfg.BackdropSwing, cfg.Seed)),
	), nil
}

// StartLoop binds f to a surface and scheduler and starts it. Without a
// surface the effect is disabled: it logs and returns a nil loop, which
// ignores every call.
func StartLoop(f *field.Field, s field.Surface, sched field.Scheduler) *field.Loop {
	l, err := field.NewLoop(f, s, sched)
	if errors.Is(err, field.ErrNoSurface) {
		log.Printf("particle field disabled: %v", err)
		return nil
	}
	l.Start()
	return l
}
