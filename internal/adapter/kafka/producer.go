package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/niksmo/bant-confirm/internal/core/domain"
	"github.com/niksmo/bant-confirm/internal/core/port"
	"github.com/niksmo/bant-confirm/pkg/retry"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.LeadEventsProducer = (*LeadEventsProducer)(nil)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

var defaultProduceRetry = retry.RetryConfig{
	MaxAttempts: 3,
	Backoff:     retry.CappedBackoff(retry.ExponentialBackoff(100*time.Millisecond), time.Second),
	ShouldRetry: retriable,
}

// retriable gives up on cancellation and on broker errors kafka marks as
// permanent.
func retriable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var ke *kerr.Error
	if errors.As(err, &ke) {
		return ke.Retriable
	}
	return true
}

// A LeadEventsProducer used for produce [domain.LeadEvent].
type LeadEventsProducer struct {
	producer producer
	encoder  Encoder
	retry    retry.RetryConfig
	opPrefix string
}

func NewLeadEventsProducer(
	opts ...ProducerOpt,
) (*LeadEventsProducer, error) {
	const op = "NewLeadEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return nil, opErr(err, op)
		}
	}

	opPrefix := "LeadEventsProducer"
	return &LeadEventsProducer{
		producer: producer{opPrefix: opPrefix, cl: options.cl},
		encoder:  options.encoder,
		retry:    defaultProduceRetry,
		opPrefix: opPrefix,
	}, nil
}

func (p *LeadEventsProducer) Close() {
	p.producer.close()
}

func (p *LeadEventsProducer) ProduceLeadEvents(
	ctx context.Context, vs ...domain.LeadEvent,
) error {
	const op = "ProduceLeadEvents"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	rs, err := p.createRecords(vs)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	err = retry.Do(ctx, p.retry, func() error {
		return p.producer.produce(ctx, rs...)
	})
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p *LeadEventsProducer) createRecords(
	vs []domain.LeadEvent,
) (rs []*kgo.Record, err error) {
	const op = "createRecords"

	for _, v := range vs {
		s := leadEventToSchemaV1(v)
		b, err := p.encoder.Encode(s)
		if err != nil {
			return nil, opErr(err, p.opPrefix, op)
		}
		rs = append(rs, &kgo.Record{Key: []byte(s.Key), Value: b})
	}
	return rs, nil
}
