// internal/skill/vector.go
//
// Performance vectors: the per-player numeric summary that the cluster
// assigner consumes. A vector is always derived wholesale from a
// snapshot of closed rounds and replaces any previous vector; it is
// never patched field-by-field.

package skill

import "time"

// Round is the closed-session summary the history store supplies.
type Round struct {
	Attempts  int
	Duration  time.Duration
	HintsUsed int
	Won       bool
}

// Vector is a player's 4-dimensional performance summary.
type Vector struct {
	MeanAttempts float64 `json:"meanAttempts"` // over all closed rounds
	MeanSeconds  float64 `json:"meanSeconds"`  // mean time per round
	HintRate     float64 `json:"hintRate"`     // rounds using ≥1 hint / rounds
	WinRate      float64 `json:"winRate"`      // wins / rounds
}

// Summarize derives a Vector from a snapshot of closed rounds.
// Returns the zero Vector when no rounds exist.
func Summarize(rounds []Round) Vector {
	if len(rounds) == 0 {
		return Vector{}
	}
	var attempts, hinted, won int
	var elapsed time.Duration
	for _, r := range rounds {
		attempts += r.Attempts
		elapsed += r.Duration
		if r.HintsUsed > 0 {
			hinted++
		}
		if r.Won {
			won++
		}
	}
	n := float64(len(rounds))
	return Vector{
		MeanAttempts: float64(attempts) / n,
		MeanSeconds:  elapsed.Seconds() / n,
		HintRate:     float64(hinted) / n,
		WinRate:      float64(won) / n,
	}
}
