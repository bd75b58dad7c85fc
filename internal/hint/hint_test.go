package hint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordletrack/internal/puzzle"
)

func play(t *testing.T, s *puzzle.Session, guesses ...string) {
	t.Helper()
	for _, g := range guesses {
		_, _, err := s.ApplyGuess(g, time.Second)
		require.NoError(t, err)
	}
}

func TestGenerateNoAttempts(t *testing.T) {
	s := puzzle.NewSession("crane", puzzle.LevelFive)
	_, err := Generate(s)
	require.ErrorIs(t, err, ErrNoHint)
}

func TestGenerateNoYellowLetters(t *testing.T) {
	s := puzzle.NewSession("crane", puzzle.LevelFive)
	play(t, s, "muggy") // all gray
	_, err := Generate(s)
	require.ErrorIs(t, err, ErrNoHint)
}

func TestGenerateRepositionsYellows(t *testing.T) {
	s := puzzle.NewSession("crane", puzzle.LevelFive)
	// nacre → n,a,c,r yellow at 0..3; e green at 4.
	play(t, s, "nacre")

	sug, err := Generate(s)
	require.NoError(t, err)

	// First-seen order: n, a, c, r. Each letter avoids the position it
	// was seen yellow at and the green slot 4; each takes the lowest
	// remaining candidate.
	want := Suggestion{
		{Letter: 'n', Position: 1},
		{Letter: 'a', Position: 0},
		{Letter: 'c', Position: 3},
		{Letter: 'r', Position: 2},
	}
	assert.Equal(t, want, sug)

	// No position is assigned twice, no letter lands where it was seen
	// yellow, and the green slot stays untouched.
	seen := make(map[int]bool)
	for _, p := range sug {
		assert.False(t, seen[p.Position])
		seen[p.Position] = true
		assert.NotEqual(t, 4, p.Position)
	}
}

func TestGenerateStableAcrossReplay(t *testing.T) {
	build := func() *puzzle.Session {
		s := puzzle.NewSession("alley", puzzle.LevelFive)
		play(t, s, "llama", "label")
		return s
	}
	first, err := Generate(build())
	require.NoError(t, err)
	second, err := Generate(build())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// And recomputation on the same session is stable too.
	again, err := Generate(build())
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestGenerateSkipsSolvedLetters(t *testing.T) {
	s := puzzle.NewSession("crane", puzzle.LevelFive)
	// First attempt sees r and a yellow; second places everything green.
	play(t, s, "nacre", "crane")

	// All yellow letters have since been confirmed green, so there is
	// nothing left to hint.
	_, err := Generate(s)
	require.ErrorIs(t, err, ErrNoHint)
}

func TestGenerateConflict(t *testing.T) {
	// Hand-built corrupted history: letter d is yellow at its only
	// remaining slot while every other slot is fixed green, leaving it
	// no candidate position.
	s := puzzle.NewSession("abcd", puzzle.LevelFour)
	s.Attempts = []puzzle.Attempt{{
		Index: 0,
		Guess: "abcd",
		Result: puzzle.GuessResult{
			{Letter: 'a', Status: puzzle.StatusGreen},
			{Letter: 'b', Status: puzzle.StatusGreen},
			{Letter: 'c', Status: puzzle.StatusGreen},
			{Letter: 'd', Status: puzzle.StatusYellow},
		},
	}}

	_, err := Generate(s)
	require.ErrorIs(t, err, ErrConflict)
}

func TestGenerateConflictWhenSlotsContested(t *testing.T) {
	// Two yellow letters seen at the same position, only slots 2 and 3
	// open: x (first seen) takes slot 3, leaving y ruled out of 2 by
	// its own yellow and out of 3 by x.
	s := puzzle.NewSession("abcd", puzzle.LevelFour)
	s.Attempts = []puzzle.Attempt{
		{
			Index: 0,
			Guess: "abxz",
			Result: puzzle.GuessResult{
				{Letter: 'a', Status: puzzle.StatusGreen},
				{Letter: 'b', Status: puzzle.StatusGreen},
				{Letter: 'x', Status: puzzle.StatusYellow},
				{Letter: 'z', Status: puzzle.StatusGray},
			},
		},
		{
			Index: 1,
			Guess: "abyz",
			Result: puzzle.GuessResult{
				{Letter: 'a', Status: puzzle.StatusGreen},
				{Letter: 'b', Status: puzzle.StatusGreen},
				{Letter: 'y', Status: puzzle.StatusYellow},
				{Letter: 'z', Status: puzzle.StatusGray},
			},
		},
	}

	_, err := Generate(s)
	require.ErrorIs(t, err, ErrConflict)
}
