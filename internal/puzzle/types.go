// internal/puzzle/types.go
//
// Core type definitions for the puzzle engine.
// Defines:
//   - LetterStatus: per-letter result of a guess (green/yellow/gray).
//   - Level: word-length difficulty level (four or five letters).
//   - GuessResult: ordered per-letter evaluation of one guess.
//   - Attempt: one scored guess plus its metadata.
//   - Outcome: coarse session state (in_progress/won/lost).

package puzzle

import "time"

// LetterStatus classifies a single letter of a guess.
// Possible values:
//   - "green":  letter is correct and in the correct position.
//   - "yellow": letter exists in the hidden word but elsewhere.
//   - "gray":   letter does not exist in the hidden word at all.
type LetterStatus string

const (
	StatusGreen  LetterStatus = "green"
	StatusYellow LetterStatus = "yellow"
	StatusGray   LetterStatus = "gray"
)

// Level is the word-length difficulty of a puzzle.
type Level int

const (
	LevelFour Level = 4
	LevelFive Level = 5
)

// Len returns the word length for the level.
func (l Level) Len() int { return int(l) }

// Valid reports whether l is one of the supported levels.
func (l Level) Valid() bool { return l == LevelFour || l == LevelFive }

// LetterMark is one (letter, status) pair of a GuessResult.
type LetterMark struct {
	Letter byte         `json:"letter"`
	Status LetterStatus `json:"status"`
}

// GuessResult is the ordered per-letter evaluation of a guess.
// Immutable once produced by Evaluate.
type GuessResult []LetterMark

// AllGreen reports whether every letter was placed correctly.
func (r GuessResult) AllGreen() bool {
	for _, m := range r {
		if m.Status != StatusGreen {
			return false
		}
	}
	return len(r) > 0
}

// Attempt is one scored guess within a session.
type Attempt struct {
	Index   int           `json:"index"` // 0-based position in the session
	Guess   string        `json:"guess"`
	Result  GuessResult   `json:"result"`
	Elapsed time.Duration `json:"elapsed"` // time spent on this attempt
}

// Outcome is the coarse state of a session.
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWon        Outcome = "won"
	OutcomeLost       Outcome = "lost"
)
