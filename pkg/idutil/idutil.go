package idutil

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// OrderNumber generates a monotonic, collision-free order number. Snowflake
// ids are time-sortable, which keeps order listings in creation order without
// an extra sort key.
func OrderNumber() string {
	nodeOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})

	return node.Generate().String()
}
