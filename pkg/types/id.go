package types

import (
	"fmt"

	"github.com/segmentio/ksuid"
)

// GenerateSnapshotID generates a unique, time-ordered configuration snapshot ID
func GenerateSnapshotID() string {
	return fmt.Sprintf("snap_%s", ksuid.New().String())
}
