// Package events hands lead events to a producer without holding up the
// request that caused them.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/bant-confirm/internal/core/domain"
	"github.com/niksmo/bant-confirm/internal/core/port"
	"github.com/panjf2000/ants/v2"
)

var (
	_ port.LeadEventsPublisher = (*AsyncPublisher)(nil)
	_ port.LeadEventsPublisher = NopPublisher{}
)

const (
	defaultProduceTimeout = 10 * time.Second
	releaseTimeout        = 5 * time.Second
)

// AsyncPublisher produces every event on a bounded worker pool. Events are
// produced detached from the caller's cancellation.
type AsyncPublisher struct {
	pool     *ants.Pool
	producer port.LeadEventsProducer
	timeout  time.Duration
}

func NewAsyncPublisher(
	producer port.LeadEventsProducer, workers int, timeout time.Duration,
) (*AsyncPublisher, error) {
	const op = "NewAsyncPublisher"

	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(v any) {
		slog.Error("lead event worker panic", "op", op, "panic", v)
	}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if timeout <= 0 {
		timeout = defaultProduceTimeout
	}
	return &AsyncPublisher{pool: pool, producer: producer, timeout: timeout}, nil
}

func (p *AsyncPublisher) PublishLeadEvent(ctx context.Context, evt domain.LeadEvent) error {
	const op = "AsyncPublisher.PublishLeadEvent"

	ctx = context.WithoutCancel(ctx)
	err := p.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		if err := p.producer.ProduceLeadEvents(ctx, evt); err != nil {
			slog.Error("failed to produce lead event",
				"op", op, "kind", evt.Kind, "key", evt.Key(), "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close waits for queued events, then closes the producer.
func (p *AsyncPublisher) Close() {
	const op = "AsyncPublisher.Close"
	log := slog.With("op", op)

	if err := p.pool.ReleaseTimeout(releaseTimeout); err != nil {
		log.Warn("lead events left unpublished", "err", err)
	}
	p.producer.Close()
	log.Info("publisher is closed")
}

// NopPublisher drops events. It stands in when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishLeadEvent(ctx context.Context, evt domain.LeadEvent) error {
	slog.Debug("lead event dropped", "kind", evt.Kind, "key", evt.Key())
	return nil
}
