// internal/puzzle/session.go
//
// Session state for one puzzle round.
// Responsibilities:
//   - Create sessions with a hidden word at a difficulty level.
//   - Validate and apply guesses (length, alphabetic).
//   - Track state transitions: in_progress → won/lost.
//   - Enforce the six-attempt bound; a seventh attempt is an error,
//     never silently appended.
//
// Word-list membership checks belong to the caller (words.Bank); the
// session only owns the feedback and outcome invariants.

package puzzle

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

// MaxAttempts bounds a session to six guesses.
const MaxAttempts = 6

var (
	// ErrSessionFinished is returned when a guess or hint arrives after
	// the session reached won or lost.
	ErrSessionFinished = errors.New("puzzle: session already finished")
	// ErrInvalidGuess is returned for guesses that are not lowercase a-z.
	ErrInvalidGuess = errors.New("puzzle: guess must be lowercase letters")
)

// Session holds the state of a single puzzle round.
type Session struct {
	ID        string    // unique session identifier (random hex string)
	Hidden    string    // the solution word (always lowercase)
	Level     Level     // word-length difficulty
	Attempts  []Attempt // scored guesses so far, in order
	HintsUsed int       // number of hint requests this round
	StartedAt time.Time
}

// NewSession constructs a fresh session around a hidden word.
func NewSession(hidden string, level Level) *Session {
	return &Session{
		ID:        randomID(),
		Hidden:    strings.ToLower(hidden),
		Level:     level,
		Attempts:  []Attempt{},
		StartedAt: time.Now().UTC(),
	}
}

// Outcome derives the session state from the attempts.
// Won iff some attempt is all green; lost iff six attempts exist with
// no win; otherwise in progress.
func (s *Session) Outcome() Outcome {
	for _, a := range s.Attempts {
		if a.Result.AllGreen() {
			return OutcomeWon
		}
	}
	if len(s.Attempts) >= MaxAttempts {
		return OutcomeLost
	}
	return OutcomeInProgress
}

// Finished reports whether the session reached won or lost.
func (s *Session) Finished() bool { return s.Outcome() != OutcomeInProgress }

// ApplyGuess validates and scores a guess, appending it to the session.
// elapsed is the time the player spent on this attempt.
// Returns the per-letter result and the new outcome.
//
// Validation rules:
//   - Session must not be finished (a 7th attempt is rejected here).
//   - Guess must be exactly Level.Len() letters, lowercase a-z.
func (s *Session) ApplyGuess(guess string, elapsed time.Duration) (GuessResult, Outcome, error) {
	if s.Finished() {
		return nil, s.Outcome(), ErrSessionFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if !isAlpha(guess) {
		return nil, s.Outcome(), ErrInvalidGuess
	}
	res, err := Evaluate(s.Hidden, guess)
	if err != nil {
		return nil, s.Outcome(), err
	}
	s.Attempts = append(s.Attempts, Attempt{
		Index:   len(s.Attempts),
		Guess:   guess,
		Result:  res,
		Elapsed: elapsed,
	})
	return res, s.Outcome(), nil
}

// Duration is the total time spent across all attempts.
func (s *Session) Duration() time.Duration {
	var d time.Duration
	for _, a := range s.Attempts {
		d += a.Elapsed
	}
	return d
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
