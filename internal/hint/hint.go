// internal/hint/hint.go
//
// Constraint-propagation hint generator.
// Given a session's accumulated feedback, proposes positions for the
// letters known to be present but misplaced (yellow). The suggestion is
// heuristic and never reveals anything the player has not already been
// shown: it is built purely from the feedback of past attempts.
//
// Constraint model:
//   - A green mark fixes a letter at a position; that position is no
//     longer a candidate for any other letter.
//   - A yellow mark rules its letter out of the position it was seen
//     at (yellow means "present, not here").
//   - Letters are processed in the order they first appeared yellow,
//     so replaying the same attempts yields the same suggestion.
//   - Once a letter takes a slot, the slot is removed from every other
//     letter's candidate set.

package hint

import (
	"errors"

	"github.com/robalobadob/wordletrack/internal/puzzle"
)

var (
	// ErrNoHint is returned when no yellow letter has ever appeared.
	ErrNoHint = errors.New("hint: no misplaced letters recorded yet")
	// ErrConflict is returned when the accumulated feedback contradicts
	// itself and some letter has no candidate position left. This
	// surfaces corrupted session history rather than guessing silently.
	ErrConflict = errors.New("hint: contradictory feedback history")
)

// Placement is one (letter, suggested position) pair.
type Placement struct {
	Letter   byte `json:"letter"`
	Position int  `json:"position"` // 0-based
}

// Suggestion covers the yellow letters known so far, in the order they
// were processed. Ephemeral: recomputed fresh on every request.
type Suggestion []Placement

// Generate proposes corrected positions for the session's yellow letters.
func Generate(s *puzzle.Session) (Suggestion, error) {
	n := s.Level.Len()

	// Positions fixed green, and the letters holding them.
	greenAt := make(map[int]byte)
	// Letters confirmed green anywhere (solved: no longer hinted).
	greenLetters := make(map[byte]bool)
	// Per yellow letter: positions it has been ruled out of.
	ruledOut := make(map[byte]map[int]bool)
	// Yellow letters in the order they first appeared.
	var order []byte

	for _, a := range s.Attempts {
		for i, m := range a.Result {
			switch m.Status {
			case puzzle.StatusGreen:
				greenAt[i] = m.Letter
				greenLetters[m.Letter] = true
			case puzzle.StatusYellow:
				if ruledOut[m.Letter] == nil {
					ruledOut[m.Letter] = make(map[int]bool)
					order = append(order, m.Letter)
				}
				ruledOut[m.Letter][i] = true
			}
		}
	}

	if len(order) == 0 {
		return nil, ErrNoHint
	}

	// Slots still open: not fixed green.
	taken := make(map[int]bool, len(greenAt))
	for p := range greenAt {
		taken[p] = true
	}

	var out Suggestion
	for _, letter := range order {
		if greenLetters[letter] {
			continue // already placed by the player
		}
		pos := -1
		for p := 0; p < n; p++ {
			if taken[p] || ruledOut[letter][p] {
				continue
			}
			pos = p
			break
		}
		if pos < 0 {
			return nil, ErrConflict
		}
		taken[pos] = true
		out = append(out, Placement{Letter: letter, Position: pos})
	}

	if len(out) == 0 {
		// Every yellow letter has since been solved green.
		return nil, ErrNoHint
	}
	return out, nil
}
