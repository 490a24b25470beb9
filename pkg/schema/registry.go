package schema

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/sr"
)

// A SchemaIdentifier returns the registry id of an Avro schema text under
// subject.
type SchemaIdentifier interface {
	DetermineID(ctx context.Context, subject, avroSchemaText string) (int, error)
}

// Registry registers schemas in a Confluent-compatible schema registry.
// Registering an already known schema returns its existing id.
type Registry struct {
	cl *sr.Client
}

func NewRegistry(urls ...string) (Registry, error) {
	const op = "NewRegistry"

	cl, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		return Registry{}, fmt.Errorf("%s: %w", op, err)
	}
	return Registry{cl}, nil
}

func (r Registry) DetermineID(
	ctx context.Context, subject, avroSchemaText string,
) (int, error) {
	const op = "Registry.DetermineID"

	ss, err := r.cl.CreateSchema(ctx, subject, sr.Schema{
		Schema: avroSchemaText,
		Type:   sr.TypeAvro,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return ss.ID, nil
}
