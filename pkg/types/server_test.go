package types_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsanders-rh/exopolicy/pkg/types"
)

func TestServerAction_IsKnown(t *testing.T) {
	assert.True(t, types.ServerActionShelve.IsKnown())
	assert.False(t, types.ServerAction("Rebuild").IsKnown())
	assert.False(t, types.ServerAction("shelve").IsKnown())
}

func TestActionSet(t *testing.T) {
	t.Run("drops duplicates and sorts", func(t *testing.T) {
		set := types.NewActionSet(types.ServerActionShelve, types.ServerActionResize, types.ServerActionShelve)

		assert.Len(t, set, 2)
		assert.True(t, set.Has(types.ServerActionResize))
		assert.False(t, set.Has(types.ServerActionReboot))
		assert.Equal(t, []types.ServerAction{types.ServerActionResize, types.ServerActionShelve}, set.Sorted())
	})

	t.Run("keeps unknown actions", func(t *testing.T) {
		set := types.NewActionSet("Rebuild")
		assert.True(t, set.Has("Rebuild"))
	})

	t.Run("empty set sorts to an empty slice", func(t *testing.T) {
		assert.NotNil(t, types.NewActionSet().Sorted())
		assert.Empty(t, types.NewActionSet().Sorted())
	})
}

func TestGenerateSnapshotID(t *testing.T) {
	a, b := types.GenerateSnapshotID(), types.GenerateSnapshotID()
	assert.True(t, strings.HasPrefix(a, "snap_"))
	assert.NotEqual(t, a, b)
}
