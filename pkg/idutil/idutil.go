package idutil

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// NextNotificationID returns a time-ordered id. Snowflake time bits give the
// per-recipient monotonic ordering the inbox relies on.
func NextNotificationID() int64 {
	nodeOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})

	return node.Generate().Int64()
}
