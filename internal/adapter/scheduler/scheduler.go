// Package scheduler runs the periodic jobs of the site.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/bant-confirm/internal/core/port"
	"github.com/robfig/cron/v3"
)

var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type Scheduler struct {
	cron *cron.Cron
}

// New schedules the carousel rotation. spec is a cron expression or a
// descriptor such as "@every 5s".
func New(rotator port.CarouselRotator, spec string) (*Scheduler, error) {
	const op = "scheduler.New"

	c := cron.New(cron.WithParser(parser))
	_, err := c.AddFunc(spec, func() {
		if err := rotator.RotateBanner(context.Background()); err != nil {
			slog.Error("failed to rotate banner", "op", op, "err", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Scheduler{cron: c}, nil
}

// Run blocks until ctx is done, then waits for a running job to finish.
func (s *Scheduler) Run(ctx context.Context) {
	const op = "Scheduler.Run"
	log := slog.With("op", op)

	s.cron.Start()
	log.Info("scheduler is running")

	<-ctx.Done()
	<-s.cron.Stop().Done()
	log.Info("scheduler is stopped")
}
