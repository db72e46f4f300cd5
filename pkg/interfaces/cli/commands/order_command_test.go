package commands

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemSpecs(t *testing.T) {
	t.Run("single line", func(t *testing.T) {
		lines, err := parseItemSpecs("COB:5:2")
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, "COB", lines[0].Product)
		assert.Equal(t, 5, lines[0].LengthM)
		assert.Equal(t, 2, lines[0].Qty)
		assert.Nil(t, lines[0].PriceOverride)
	})

	t.Run("multiple lines with override", func(t *testing.T) {
		lines, err := parseItemSpecs("COB:5:2, Neon:10:1:2200.50")
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Nil(t, lines[0].PriceOverride)
		require.NotNil(t, lines[1].PriceOverride)
		assert.True(t, lines[1].PriceOverride.Equal(decimal.RequireFromString("2200.50")))
	})

	t.Run("rejects malformed specs", func(t *testing.T) {
		for _, input := range []string{"", "COB", "COB:5", "COB:x:2", "COB:5:x", "COB:5:2:abc", "COB:5:2:100:extra"} {
			_, err := parseItemSpecs(input)
			assert.Error(t, err, "input %q", input)
		}
	})
}
