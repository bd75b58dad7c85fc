package skill

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	rounds := []Round{
		{Attempts: 3, Duration: 60 * time.Second, HintsUsed: 1, Won: true},
		{Attempts: 5, Duration: 120 * time.Second, HintsUsed: 0, Won: true},
		{Attempts: 6, Duration: 90 * time.Second, HintsUsed: 2, Won: false},
		{Attempts: 2, Duration: 30 * time.Second, HintsUsed: 0, Won: true},
	}
	v := Summarize(rounds)
	assert.InDelta(t, 4.0, v.MeanAttempts, 1e-9)
	assert.InDelta(t, 75.0, v.MeanSeconds, 1e-9)
	assert.InDelta(t, 0.5, v.HintRate, 1e-9)
	assert.InDelta(t, 0.75, v.WinRate, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Vector{}, Summarize(nil))
}

func TestAssignTiersInsufficientData(t *testing.T) {
	vectors := []Vector{
		{MeanAttempts: 3, MeanSeconds: 60, WinRate: 0.8},
		{MeanAttempts: 5, MeanSeconds: 120, WinRate: 0.2},
	}
	_, err := AssignTiers(vectors, 3)
	require.ErrorIs(t, err, ErrInsufficientData)

	_, err = AssignTiers(nil, 1)
	require.ErrorIs(t, err, ErrInsufficientData)

	_, err = AssignTiers(vectors, 0)
	require.ErrorIs(t, err, ErrInsufficientData)
}

// Nine players in three well-separated bands must land in three tiers
// matching their performance.
func wellSeparatedVectors() []Vector {
	return []Vector{
		// experts: few attempts, quick, no hints, always win
		{MeanAttempts: 2.1, MeanSeconds: 32, HintRate: 0.0, WinRate: 1.0},
		{MeanAttempts: 2.4, MeanSeconds: 35, HintRate: 0.1, WinRate: 0.95},
		{MeanAttempts: 2.2, MeanSeconds: 30, HintRate: 0.0, WinRate: 0.98},
		// intermediates
		{MeanAttempts: 4.0, MeanSeconds: 75, HintRate: 0.3, WinRate: 0.65},
		{MeanAttempts: 4.2, MeanSeconds: 80, HintRate: 0.4, WinRate: 0.6},
		{MeanAttempts: 3.9, MeanSeconds: 70, HintRate: 0.35, WinRate: 0.7},
		// novices: many attempts, slow, hint-hungry, rarely win
		{MeanAttempts: 5.8, MeanSeconds: 150, HintRate: 0.8, WinRate: 0.15},
		{MeanAttempts: 5.6, MeanSeconds: 140, HintRate: 0.9, WinRate: 0.1},
		{MeanAttempts: 5.9, MeanSeconds: 160, HintRate: 0.7, WinRate: 0.2},
	}
}

func TestAssignTiersSeparatedClusters(t *testing.T) {
	tiers, err := AssignTiers(wellSeparatedVectors(), 3)
	require.NoError(t, err)
	require.Len(t, tiers, 9)

	for i := 0; i < 3; i++ {
		assert.Equal(t, TierExpert, tiers[i], "vector %d", i)
	}
	for i := 3; i < 6; i++ {
		assert.Equal(t, TierIntermediate, tiers[i], "vector %d", i)
	}
	for i := 6; i < 9; i++ {
		assert.Equal(t, TierNovice, tiers[i], "vector %d", i)
	}
}

// Permuting the input must not change any vector's assigned tier.
func TestAssignTiersOrderInvariant(t *testing.T) {
	vectors := wellSeparatedVectors()

	forward, err := AssignTiers(vectors, 3)
	require.NoError(t, err)

	reversed := make([]Vector, len(vectors))
	for i, v := range vectors {
		reversed[len(vectors)-1-i] = v
	}
	backward, err := AssignTiers(reversed, 3)
	require.NoError(t, err)

	for i := range vectors {
		assert.Equal(t, forward[i], backward[len(vectors)-1-i], "vector %d", i)
	}
}

func TestAssignTiersDeterministic(t *testing.T) {
	a, err := AssignTiers(wellSeparatedVectors(), 3)
	require.NoError(t, err)
	b, err := AssignTiers(wellSeparatedVectors(), 3)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTierForRank(t *testing.T) {
	// k=3 is the identity mapping.
	assert.Equal(t, TierNovice, tierForRank(0, 3))
	assert.Equal(t, TierIntermediate, tierForRank(1, 3))
	assert.Equal(t, TierExpert, tierForRank(2, 3))

	// Other k spread proportionally over the three labels.
	assert.Equal(t, TierNovice, tierForRank(0, 2))
	assert.Equal(t, TierIntermediate, tierForRank(1, 2))
	assert.Equal(t, TierNovice, tierForRank(0, 1))
	assert.Equal(t, TierNovice, tierForRank(0, 6))
	assert.Equal(t, TierExpert, tierForRank(5, 6))
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "novice", TierNovice.String())
	assert.Equal(t, "intermediate", TierIntermediate.String())
	assert.Equal(t, "expert", TierExpert.String())
}
