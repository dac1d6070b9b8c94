package assets

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

// TagGenerator produces unique asset tags and serial numbers for units
// materialized during fulfillment. Tags combine the model code with a
// snowflake ID (millisecond timestamp + node + sequence), so two nodes
// fulfilling concurrently cannot collide; serials are random UUIDs.
// Persistence still treats a duplicate key as a conflict and retries.
type TagGenerator struct {
	node *snowflake.Node
}

func NewTagGenerator(nodeID int64) (*TagGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tag generator: %w", err)
	}
	return &TagGenerator{node: node}, nil
}

func (g *TagGenerator) NextTag(modelCode string) string {
	id := g.node.Generate()
	return fmt.Sprintf("EQ-%s-%s", strings.ToUpper(modelCode), strings.ToUpper(id.Base36()))
}

func (g *TagGenerator) NextSerial() string {
	return uuid.NewString()
}
