package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/bant-confirm/internal/core/domain"
	"github.com/niksmo/bant-confirm/internal/core/port"
	"github.com/niksmo/bant-confirm/pkg/schema"
)

var (
	_ port.SearchTallyProcessor = (*SearchTallyProcessor)(nil)
	_ port.SearchTally          = (*SearchTallyView)(nil)
)

// A SearchTallyProcessor counts search_unmatched events per folded term
// into its group table. Other lead events are ignored.
type SearchTallyProcessor struct {
	opPrefix string
	proc     processor
}

func NewSearchTallyProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	leadEventSerde Serde,
	opts ...goka.ProcessorOption,
) (*SearchTallyProcessor, error) {
	const op = "NewSearchTallyProc"

	p := SearchTallyProcessor{opPrefix: "SearchTallyProcessor"}

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newLeadEventCodec(leadEventSerde),
			p.processFn,
		),
		goka.Persist(tallyValueCodec{}),
	)

	opts = append([]goka.ProcessorOption{withNonlogProcOpt()}, opts...)
	gp, err := goka.NewProcessor(seedBrokers, gg, opts...)
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{opPrefix: p.opPrefix, gp: gp}
	return &p, nil
}

func (p *SearchTallyProcessor) Run(ctx context.Context) {
	p.proc.run(ctx)
}

func (p *SearchTallyProcessor) Close() {
	p.proc.close()
}

func (p *SearchTallyProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"

	event, _ := msg.(schema.LeadEventV1)
	if event.Kind != string(domain.SearchUnmatched) {
		return
	}

	var n tallyValue
	if v, ok := ctx.Value().(tallyValue); ok {
		n = v
	}
	n++
	ctx.SetValue(n)

	slog.Debug("unmatched search counted",
		"op", makeOp(p.opPrefix, op), "term", ctx.Key(), "hits", n)
}

// A SearchTallyView reads the tally table built by [SearchTallyProcessor].
type SearchTallyView struct {
	gv *goka.View
}

func NewSearchTallyView(
	seedBrokers []string, groupTable string, opts ...goka.ViewOption,
) (*SearchTallyView, error) {
	const op = "NewSearchTallyView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(groupTable)),
		tallyValueCodec{},
		opts...,
	)
	if err != nil {
		return nil, opErr(err, op)
	}
	return &SearchTallyView{gv}, nil
}

func (v *SearchTallyView) Run(ctx context.Context) {
	const op = "SearchTallyView.Run"
	log := slog.With("op", op)

	if err := v.gv.Run(ctx); err != nil {
		log.Error("unexpected fail on run", "err", err)
		return
	}
	log.Info("stopped")
}

// Tally returns the hits of a folded term; unknown terms have none.
func (v *SearchTallyView) Tally(term string) (int, error) {
	const op = "SearchTallyView.Tally"

	raw, err := v.gv.Get(term)
	if err != nil {
		return 0, opErr(err, op)
	}
	if raw == nil {
		return 0, nil
	}
	n, ok := raw.(tallyValue)
	if !ok {
		return 0, opErr(fmt.Errorf("%w: %T", ErrInvalidValueType, raw), op)
	}
	return int(n), nil
}
