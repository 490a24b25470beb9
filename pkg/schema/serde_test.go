package schema_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/bant-confirm/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeLeadEventV1(t *testing.T) {
	const subject = "lead-events-value"

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeLeadEventV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeLeadEventV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("NilIdentifier", func(t *testing.T) {
		_, err := schema.NewSerdeLeadEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(nil),
		)
		require.Error(t, err)
	})

	t.Run("RegistryFails", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		errRegistry := errors.New("registry is down")
		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.LeadEventSchemaTextV1,
		).Return(0, errRegistry)

		_, err := schema.NewSerdeLeadEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.ErrorIs(t, err, errRegistry)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.LeadEventSchemaTextV1,
		).Return(7, nil)

		serde, err := schema.NewSerdeLeadEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)
		schemaIdentifier.AssertExpectations(t)

		v1 := schema.LeadEventV1{
			Kind:       "search_unmatched",
			Key:        "quantum erp",
			Text:       "Quantum ERP",
			OccurredAt: time.UnixMilli(1_700_000_000_000).UTC(),
		}

		data, err := serde.Encode(v1)
		require.NoError(t, err)
		require.Greater(t, len(data), 5)
		assert.Equal(t, byte(0), data[0], "registry magic byte")

		var v2 schema.LeadEventV1
		require.NoError(t, serde.Decode(data, &v2))
		assert.Equal(t, v1, v2)
	})
}
