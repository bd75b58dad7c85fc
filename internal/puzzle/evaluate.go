// internal/puzzle/evaluate.go
//
// Feedback evaluator: scores a guess against the hidden word using the
// classic two-pass algorithm. The two passes make duplicate letters
// multiset-correct: a letter never collects more green+yellow marks
// than it has occurrences in the hidden word.

package puzzle

import "errors"

// ErrInvalidLength is returned when guess and hidden word lengths differ.
var ErrInvalidLength = errors.New("puzzle: guess length does not match hidden word")

// Evaluate scores guess against hidden and returns a per-letter result.
// Pure function: no state, no side effects. Inputs are expected to be
// lowercase a-z (the words package normalizes on load).
//
// Pass 1:
//   - Mark exact matches green.
//   - Count the remaining (non-green) hidden letters by letter index.
//
// Pass 2:
//   - For each non-green guess letter: if there is remaining count for
//     that letter, mark yellow and decrement; otherwise mark gray.
func Evaluate(hidden, guess string) (GuessResult, error) {
	n := len(hidden)
	if len(guess) != n {
		return nil, ErrInvalidLength
	}

	res := make(GuessResult, n)

	// Letter frequency for the non-green positions (a-z).
	var counts [26]int

	for i := 0; i < n; i++ {
		res[i].Letter = guess[i]
		if guess[i] == hidden[i] {
			res[i].Status = StatusGreen
		} else if j := idx(hidden[i]); j >= 0 && j < 26 {
			counts[j]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i].Status == StatusGreen {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i].Status = StatusYellow
			counts[j]--
		} else {
			res[i].Status = StatusGray
		}
	}
	return res, nil
}

// idx maps a lowercase ASCII letter to 0..25.
// Assumes inputs are validated to a-z elsewhere.
func idx(b byte) int { return int(b - 'a') }

// isAlpha checks that a string consists only of lowercase a-z.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
