package id

import (
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Millisecond epoch for generated IDs, 2024-01-01T00:00:00Z. Keeps the
// timestamp bits useful for decades without touching the wire format.
var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

var (
	node *snowflake.Node
	once sync.Once
)

// Init sets up the Snowflake node. Each process class gets its own node
// ID (server 1, worker 2, scrumctl 3) so IDs never collide across the
// deployment. Subsequent calls are no-ops.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		snowflake.Epoch = epoch
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New returns a time-ordered, globally unique int64. Init must have been
// called first.
func New() int64 {
	return node.Generate().Int64()
}
