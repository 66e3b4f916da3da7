package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWRatioRank(t *testing.T) {
	r := NewWRatio()

	t.Run("exact match scores 100 and ranks first", func(t *testing.T) {
		ranked := r.Rank("corolla", []string{"Camry", "Corolla", "Yaris"})
		require.Len(t, ranked, 3)
		assert.Equal(t, "Corolla", ranked[0].Candidate)
		assert.Equal(t, 100, ranked[0].Score)
	})

	t.Run("word order is ignored", func(t *testing.T) {
		ranked := r.Rank("pads brake front", []string{"Front Brake Pads"})
		require.Len(t, ranked, 1)
		assert.Equal(t, 100, ranked[0].Score)
	})

	t.Run("scores stay within 0-100", func(t *testing.T) {
		ranked := r.Rank("alternator", []string{"Oil Filter", "Alternator", "xx"})
		for _, m := range ranked {
			assert.GreaterOrEqual(t, m.Score, 0)
			assert.LessOrEqual(t, m.Score, 100)
		}
	})

	t.Run("empty candidate set", func(t *testing.T) {
		assert.Empty(t, r.Rank("anything", nil))
		_, ok := Best(r, "anything", nil)
		assert.False(t, ok)
	})
}
