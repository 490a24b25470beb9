package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/niksmo/bant-confirm/internal/core/port"
)

var _ port.IDGenerator = (*Snowflake)(nil)

// Snowflake hands out time-ordered ids unique to one node.
type Snowflake struct {
	node *snowflake.Node
}

func New(node int64) (*Snowflake, error) {
	const op = "idgen.New"

	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Snowflake{node: n}, nil
}

func (g *Snowflake) NextID() int64 {
	return g.node.Generate().Int64()
}
