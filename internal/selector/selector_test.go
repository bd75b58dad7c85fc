package selector

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordletrack/internal/puzzle"
	"github.com/robalobadob/wordletrack/internal/skill"
	"github.com/robalobadob/wordletrack/internal/words"
)

func testBank() *words.Bank {
	return words.New(map[puzzle.Level][]string{
		puzzle.LevelFour: {"tree", "jazz"},
		puzzle.LevelFive: {"eaten", "siren", "quart", "vivid", "crane"},
	})
}

func TestSelectEmptyBank(t *testing.T) {
	bank := words.New(map[puzzle.Level][]string{
		puzzle.LevelFive: {"crane"},
	})
	rng := rand.New(rand.NewSource(1))

	_, err := Select(skill.TierNovice, puzzle.LevelFour, bank, rng)
	require.ErrorIs(t, err, ErrEmptyBank)
}

func TestSelectDeterministicWithFixedSeed(t *testing.T) {
	bank := testBank()
	draw := func() []string {
		rng := rand.New(rand.NewSource(42))
		out := make([]string, 20)
		for i := range out {
			w, err := Select(skill.TierExpert, puzzle.LevelFive, bank, rng)
			require.NoError(t, err)
			out[i] = w
		}
		return out
	}
	assert.Equal(t, draw(), draw())
}

func TestSelectReturnsBankWords(t *testing.T) {
	bank := testBank()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		w, err := Select(skill.TierIntermediate, puzzle.LevelFour, bank, rng)
		require.NoError(t, err)
		assert.Contains(t, []string{"tree", "jazz"}, w)
		assert.Len(t, w, puzzle.LevelFour.Len())
	}
}

// Empirical selection frequency converges to the weight distribution.
func TestSelectFrequencyMatchesWeights(t *testing.T) {
	candidates := []string{"tree", "jazz"} // very common vs. very rare letters
	bank := words.New(map[puzzle.Level][]string{puzzle.LevelFour: candidates})

	for _, tier := range []skill.Tier{skill.TierNovice, skill.TierIntermediate, skill.TierExpert} {
		w := weights(tier, candidates)
		var total float64
		for _, x := range w {
			total += x
		}

		rng := rand.New(rand.NewSource(99))
		const draws = 20000
		counts := make(map[string]int)
		for i := 0; i < draws; i++ {
			word, err := Select(tier, puzzle.LevelFour, bank, rng)
			require.NoError(t, err)
			counts[word]++
		}
		for i, word := range candidates {
			expected := w[i] / total
			got := float64(counts[word]) / draws
			assert.InDelta(t, expected, got, 0.02, "tier=%s word=%s", tier, word)
		}
	}
}

func TestWeightsTierBias(t *testing.T) {
	candidates := []string{"tree", "jazz"}

	novice := weights(skill.TierNovice, candidates)
	expert := weights(skill.TierExpert, candidates)
	mid := weights(skill.TierIntermediate, candidates)

	// "tree" is all common letters, "jazz" mostly rare ones.
	assert.Greater(t, novice[0], novice[1])
	assert.Less(t, expert[0], expert[1])
	assert.Equal(t, mid[0], mid[1])

	// Weights stay strictly positive so every word remains reachable.
	for _, w := range [][]float64{novice, expert, mid} {
		for _, x := range w {
			assert.Greater(t, x, 0.0)
		}
	}
}

func TestWeightsSingleCandidate(t *testing.T) {
	w := weights(skill.TierNovice, []string{"crane"})
	require.Len(t, w, 1)
	assert.Greater(t, w[0], 0.0)
}
