package kafka

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/lovoo/goka"
	"github.com/niksmo/bant-confirm/pkg/schema"
)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

// run blocks until the processor stops.
func (p *processor) run(ctx context.Context) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	go p.waitForReady(ctx)

	log.Info("preparing...")
	if err := p.gp.Run(ctx); err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
	log.Info("running")
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A leadEventCodec used for serde [schema.LeadEventV1]
type leadEventCodec struct {
	serde Serde
}

func newLeadEventCodec(s Serde) leadEventCodec {
	return leadEventCodec{s}
}

func (c leadEventCodec) Encode(v any) ([]byte, error) {
	const op = "leadEventCodec.Encode"
	if _, ok := v.(schema.LeadEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c leadEventCodec) Decode(data []byte) (any, error) {
	const op = "leadEventCodec.Decode"
	var s schema.LeadEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A tallyValue is the number of unmatched searches for one folded term.
type tallyValue int64

// A tallyValueCodec used for serde [tallyValue]
type tallyValueCodec struct{}

func (tallyValueCodec) Encode(v any) ([]byte, error) {
	const op = "tallyValueCodec.Encode"
	tv, ok := v.(tallyValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return strconv.AppendInt([]byte(nil), int64(tv), 10), nil
}

func (tallyValueCodec) Decode(data []byte) (any, error) {
	const op = "tallyValueCodec.Decode"
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return tallyValue(n), nil
}
