package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/niksmo/bant-confirm/internal/core/domain"
	"github.com/niksmo/bant-confirm/internal/core/port"
	"github.com/niksmo/bant-confirm/pkg/formcheck"
)

var (
	_ port.Catalog          = (*Service)(nil)
	_ port.Content          = (*Service)(nil)
	_ port.EnquirySubmitter = (*Service)(nil)
	_ port.Session          = (*Service)(nil)
	_ port.Assistant        = (*Service)(nil)
	_ port.Admin            = (*Service)(nil)
)

type Config struct {
	// AuthDelay is how long a successful simulated auth call takes.
	AuthDelay     time.Duration
	AdminUsername string
	AdminPassword string
	FAQs          []domain.FAQ
	Testimonials  []domain.Testimonial
}

type Service struct {
	store     *Store
	ids       port.IDGenerator
	publisher port.LeadEventsPublisher
	tally     port.SearchTally
	forms     *formcheck.Checker
	cfg       Config
	now       func() time.Time
}

// New wires the service. A nil tally leaves unmatched-search hits at zero.
func New(
	store *Store,
	ids port.IDGenerator,
	publisher port.LeadEventsPublisher,
	tally port.SearchTally,
	cfg Config,
) *Service {
	return &Service{
		store:     store,
		ids:       ids,
		publisher: publisher,
		tally:     tally,
		forms:     formcheck.New(domain.FieldMessages),
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *Service) publish(ctx context.Context, evt domain.LeadEvent) {
	const op = "Service.publish"

	if err := s.publisher.PublishLeadEvent(ctx, evt); err != nil {
		slog.Error("failed to publish lead event",
			"op", op, "kind", evt.Kind, "err", err)
	}
}

// simulate stands in for the network round trip of the auth forms.
func (s *Service) simulate(ctx context.Context) error {
	if s.cfg.AuthDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.cfg.AuthDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
