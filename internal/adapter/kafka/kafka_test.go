package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/lovoo/goka"
	"github.com/lovoo/goka/tester"
	"github.com/niksmo/bant-confirm/internal/core/domain"
	"github.com/niksmo/bant-confirm/pkg/retry"
	"github.com/niksmo/bant-confirm/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

type avroSerde struct {
	enc func(any) ([]byte, error)
	dec func([]byte, any) error
}

func newAvroSerde(t *testing.T) avroSerde {
	t.Helper()
	s, err := avro.Parse(schema.LeadEventSchemaTextV1)
	require.NoError(t, err)
	return avroSerde{schema.AvroEncodeFn(s), schema.AvroDecodeFn(s)}
}

func (s avroSerde) Encode(v any) ([]byte, error)  { return s.enc(v) }
func (s avroSerde) Decode(b []byte, v any) error { return s.dec(b, v) }

type MockProducerClient struct {
	mock.Mock
}

func (c *MockProducerClient) ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	args := c.Called(ctx, rs)
	return args.Get(0).(kgo.ProduceResults)
}

func (c *MockProducerClient) Close() {
	c.Called()
}

func clientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		opts.cl = cl
		return nil
	}
}

func TestLeadEventsProducer(t *testing.T) {
	evt := domain.EnquiryEvent(domain.EnquirySubmitted,
		domain.Enquiry{ID: 42, Text: "need a CRM", Status: domain.EnquiryNew},
		time.UnixMilli(1_700_000_000_000).UTC())

	newProducer := func(t *testing.T, cl ProducerClient) *LeadEventsProducer {
		p, err := NewLeadEventsProducer(clientOpt(cl), ProducerEncoderOpt(newAvroSerde(t)))
		require.NoError(t, err)
		p.retry = retry.RetryConfig{
			MaxAttempts: 3,
			Backoff:     retry.LineareBackoff(time.Millisecond),
			ShouldRetry: retriable,
		}
		return p
	}

	t.Run("WrongOptsCount", func(t *testing.T) {
		assert.Panics(t, func() { _, _ = NewLeadEventsProducer() })
	})

	t.Run("NilEncoder", func(t *testing.T) {
		_, err := NewLeadEventsProducer(clientOpt(new(MockProducerClient)), ProducerEncoderOpt(nil))
		require.Error(t, err)
	})

	t.Run("KeyedRecord", func(t *testing.T) {
		cl := new(MockProducerClient)
		cl.On("ProduceSync", mock.Anything, mock.MatchedBy(func(rs []*kgo.Record) bool {
			return len(rs) == 1 && string(rs[0].Key) == "42"
		})).Return(kgo.ProduceResults{{}}).Once()

		p := newProducer(t, cl)
		require.NoError(t, p.ProduceLeadEvents(t.Context(), evt))
		cl.AssertExpectations(t)
	})

	t.Run("RetriesRetriable", func(t *testing.T) {
		cl := new(MockProducerClient)
		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kgo.ProduceResults{{Err: kerr.NotLeaderForPartition}}).Once()
		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kgo.ProduceResults{{}}).Once()

		p := newProducer(t, cl)
		require.NoError(t, p.ProduceLeadEvents(t.Context(), evt))
		cl.AssertNumberOfCalls(t, "ProduceSync", 2)
	})

	t.Run("StopsOnPermanent", func(t *testing.T) {
		cl := new(MockProducerClient)
		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kgo.ProduceResults{{Err: kerr.TopicAuthorizationFailed}})

		p := newProducer(t, cl)
		err := p.ProduceLeadEvents(t.Context(), evt)
		require.ErrorIs(t, err, kerr.TopicAuthorizationFailed)
		cl.AssertNumberOfCalls(t, "ProduceSync", 1)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		cl := new(MockProducerClient)
		p := newProducer(t, cl)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		require.ErrorIs(t, p.ProduceLeadEvents(ctx, evt), context.Canceled)
		cl.AssertNotCalled(t, "ProduceSync", mock.Anything, mock.Anything)
	})

	t.Run("Close", func(t *testing.T) {
		cl := new(MockProducerClient)
		cl.On("Close").Return().Once()
		newProducer(t, cl).Close()
		cl.AssertExpectations(t)
	})
}

func TestRetriable(t *testing.T) {
	assert.True(t, retriable(errors.New("dial tcp: refused")))
	assert.True(t, retriable(kerr.RequestTimedOut))
	assert.False(t, retriable(kerr.InvalidTopicException))
	assert.False(t, retriable(context.DeadlineExceeded))
}

func TestTallyValueCodec(t *testing.T) {
	var c tallyValueCodec
	b, err := c.Encode(tallyValue(17))
	require.NoError(t, err)
	assert.Equal(t, "17", string(b))

	v, err := c.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, tallyValue(17), v)

	_, err = c.Encode(17)
	require.ErrorIs(t, err, ErrInvalidValueType)
	_, err = c.Decode([]byte("x"))
	require.Error(t, err)
}

func TestSearchTally(t *testing.T) {
	const (
		stream = "lead-events"
		group  = "unmatched-search-tally"
	)
	tt := tester.New(t)
	serde := newAvroSerde(t)

	proc, err := NewSearchTallyProc(nil, stream, group, serde, goka.WithTester(tt))
	require.NoError(t, err)
	view, err := NewSearchTallyView(nil, group, goka.WithViewTester(tt))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	go proc.Run(ctx)
	go view.Run(ctx)

	at := time.UnixMilli(1_700_000_000_000).UTC()
	search := leadEventToSchemaV1(domain.SearchEvent("Quantum ERP", at))
	enquiry := leadEventToSchemaV1(domain.EnquiryEvent(domain.EnquirySubmitted, domain.Enquiry{ID: 1}, at))

	for range 3 {
		tt.Consume(stream, search.Key, search)
	}
	tt.Consume(stream, enquiry.Key, enquiry)

	table := goka.GroupTable(goka.Group(group))
	assert.Equal(t, tallyValue(3), tt.TableValue(table, "quantum erp"))
	assert.Nil(t, tt.TableValue(table, "1"))

	assert.Eventually(t, func() bool {
		n, err := view.Tally("quantum erp")
		return err == nil && n == 3
	}, 5*time.Second, 20*time.Millisecond)

	n, err := view.Tally("unknown")
	require.NoError(t, err)
	assert.Zero(t, n)
}
