package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownFoodTableMatch(t *testing.T) {
	table := NewKnownFoodTable()

	t.Run("exact name", func(t *testing.T) {
		entry, ok := table.Match("chicken")
		require.True(t, ok)
		assert.Equal(t, "chicken", entry.Name)
		assert.Equal(t, 165.0, entry.Per100g.Calories)
	})

	t.Run("entry name contained in food", func(t *testing.T) {
		entry, ok := table.Match("grilled chicken breast")
		require.True(t, ok)
		assert.Equal(t, "chicken", entry.Name)
	})

	t.Run("food contained in entry name", func(t *testing.T) {
		entry, ok := table.Match("cola")
		require.True(t, ok)
		assert.Equal(t, 37.5, entry.Per100g.Calories)
		assert.Equal(t, 3.3, entry.DefaultFactor)
		assert.Equal(t, 10.0, entry.FactorCap)
	})

	t.Run("cola entries win over ingredients", func(t *testing.T) {
		entry, ok := table.Match("coca-cola")
		require.True(t, ok)
		assert.Equal(t, 3.3, entry.DefaultFactor)
	})

	t.Run("case insensitive", func(t *testing.T) {
		_, ok := table.Match("Mac And Cheese")
		assert.True(t, ok)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := table.Match("dragonfruit smoothie bowl")
		assert.False(t, ok)
	})
}

func TestIsZeroCalorie(t *testing.T) {
	assert.True(t, IsZeroCalorie("water"))
	assert.True(t, IsZeroCalorie("ice"))
	assert.True(t, IsZeroCalorie("冰"))
	assert.True(t, IsZeroCalorie("冰块"))
	assert.True(t, IsZeroCalorie("  Water  "))
	assert.False(t, IsZeroCalorie("sparkling lemonade"))
}
