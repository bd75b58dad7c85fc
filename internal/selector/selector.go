// internal/selector/selector.go
//
// Weighted word selector: picks the next hidden word for a player from
// the bank at the requested difficulty level, biased by the player's
// skill tier. Words built from statistically rare letters weigh more
// for expert players and less for novices; intermediates draw close to
// uniformly. Randomness is injected so selection replays exactly under
// a fixed seed.

package selector

import (
	"errors"

	"github.com/robalobadob/wordletrack/internal/puzzle"
	"github.com/robalobadob/wordletrack/internal/skill"
	"github.com/robalobadob/wordletrack/internal/words"
)

// ErrEmptyBank is returned when no words exist at the requested level.
var ErrEmptyBank = errors.New("selector: no words at requested difficulty")

// Rand is the injected randomness source. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Relative frequency of letters in English text, used to profile how
// common a word's letters are. Values are percentages.
var letterFreq = [26]float64{
	8.17, 1.49, 2.78, 4.25, 12.70, // a-e
	2.23, 2.02, 6.09, 6.97, 0.15, // f-j
	0.77, 4.03, 2.41, 6.75, 7.51, // k-o
	1.93, 0.10, 5.99, 6.33, 9.06, // p-t
	2.76, 0.98, 2.36, 2.36, 0.20, // u-y
	0.07, // z
}

// Select draws one word from the bank at the given level, weighted by
// the player's tier. With a fixed rng seed the draw is deterministic.
func Select(tier skill.Tier, level puzzle.Level, bank *words.Bank, rng Rand) (string, error) {
	candidates := bank.WordsFor(level)
	if len(candidates) == 0 {
		return "", ErrEmptyBank
	}
	w := weights(tier, candidates)

	var total float64
	for _, x := range w {
		total += x
	}
	target := rng.Float64() * total
	for i, x := range w {
		target -= x
		if target < 0 {
			return candidates[i], nil
		}
	}
	// Float64 returned exactly 1.0 worth of mass; take the last word.
	return candidates[len(candidates)-1], nil
}

// weights assigns each candidate a strictly positive weight.
//
// Each word's commonality is the mean English frequency of its letters,
// min-max scaled into [0,1] across the candidate list. Novices favor
// common-letter words, experts favor rare-letter words, intermediates
// draw flat. The 0.25 floor keeps every word reachable at every tier.
func weights(tier skill.Tier, candidates []string) []float64 {
	c := make([]float64, len(candidates))
	lo, hi := commonality(candidates[0]), commonality(candidates[0])
	for i, w := range candidates {
		c[i] = commonality(w)
		if c[i] < lo {
			lo = c[i]
		}
		if c[i] > hi {
			hi = c[i]
		}
	}
	span := hi - lo

	out := make([]float64, len(candidates))
	for i := range candidates {
		scaled := 0.5
		if span > 0 {
			scaled = (c[i] - lo) / span
		}
		switch tier {
		case skill.TierNovice:
			out[i] = 0.25 + scaled
		case skill.TierExpert:
			out[i] = 1.25 - scaled
		default:
			out[i] = 1
		}
	}
	return out
}

// commonality is the mean letter frequency of the word's letters.
func commonality(w string) float64 {
	var sum float64
	for i := 0; i < len(w); i++ {
		sum += letterFreq[w[i]-'a']
	}
	return sum / float64(len(w))
}
