package puzzle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statuses(r GuessResult) []LetterStatus {
	out := make([]LetterStatus, len(r))
	for i, m := range r {
		out[i] = m.Status
	}
	return out
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		hidden string
		guess  string
		want   []LetterStatus
	}{
		{
			name:   "identical guess is all green",
			hidden: "crane",
			guess:  "crane",
			want:   []LetterStatus{StatusGreen, StatusGreen, StatusGreen, StatusGreen, StatusGreen},
		},
		{
			name:   "no shared letters is all gray",
			hidden: "crane",
			guess:  "muggy",
			want:   []LetterStatus{StatusGray, StatusGray, StatusGray, StatusGray, StatusGray},
		},
		{
			name:   "full anagram is all yellow",
			hidden: "crane",
			guess:  "nacre",
			want:   []LetterStatus{StatusYellow, StatusYellow, StatusYellow, StatusYellow, StatusGreen},
		},
		{
			// Hidden has exactly two Ls: one matches green, one yellow,
			// the third guessed L must be gray.
			name:   "duplicate letters not double counted",
			hidden: "alley",
			guess:  "llama",
			want:   []LetterStatus{StatusYellow, StatusGreen, StatusYellow, StatusGray, StatusGray},
		},
		{
			// Second E in the guess has no remaining E to consume.
			name:   "repeated guess letter with single hidden occurrence",
			hidden: "crane",
			guess:  "geese",
			want:   []LetterStatus{StatusGray, StatusGray, StatusGray, StatusGray, StatusGreen},
		},
		{
			name:   "four letter words",
			hidden: "lime",
			guess:  "mile",
			want:   []LetterStatus{StatusYellow, StatusGreen, StatusYellow, StatusGreen},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.hidden, tt.guess)
			require.NoError(t, err)
			assert.Equal(t, tt.want, statuses(got))
			for i, m := range got {
				assert.Equal(t, tt.guess[i], m.Letter)
			}
		})
	}
}

func TestEvaluateLengthMismatch(t *testing.T) {
	_, err := Evaluate("crane", "lime")
	require.ErrorIs(t, err, ErrInvalidLength)

	_, err = Evaluate("lime", "crane")
	require.ErrorIs(t, err, ErrInvalidLength)
}

// Multiset correctness: for any letter, green+yellow marks never exceed
// its occurrence count in the hidden word.
func TestEvaluateMultisetBound(t *testing.T) {
	wordsList := []string{"alley", "llama", "crane", "nacre", "geese", "eerie", "level", "salsa", "asset"}
	for _, hidden := range wordsList {
		for _, guess := range wordsList {
			res, err := Evaluate(hidden, guess)
			require.NoError(t, err)

			marked := make(map[byte]int)
			for _, m := range res {
				if m.Status == StatusGreen || m.Status == StatusYellow {
					marked[m.Letter]++
				}
			}
			for letter, n := range marked {
				occ := strings.Count(hidden, string(letter))
				assert.LessOrEqual(t, n, occ,
					"hidden=%s guess=%s letter=%c", hidden, guess, letter)
			}
		}
	}
}

// Non-letter bytes in the hidden word must degrade to gray marks, not
// index outside the count table.
func TestEvaluateNonLetterHidden(t *testing.T) {
	res, err := Evaluate("ab1de", "crane")
	require.NoError(t, err)
	assert.Equal(t,
		[]LetterStatus{StatusGray, StatusGray, StatusYellow, StatusGray, StatusGreen},
		statuses(res))
}

// Earliest exact matches take green first; remaining duplicates consume
// the leftover count left to right.
func TestEvaluateGreenPriority(t *testing.T) {
	res, err := Evaluate("abbey", "babes")
	require.NoError(t, err)
	assert.Equal(t,
		[]LetterStatus{StatusYellow, StatusYellow, StatusGreen, StatusGreen, StatusGray},
		statuses(res))
}
