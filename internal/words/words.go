// internal/words/words.go
//
// Word bank for the puzzle engine.
//
// Responsibilities:
//   - Load per-level word lists from environment-provided files or fall
//     back to embedded defaults.
//   - Maintain a membership set for dictionary validity checks.
//   - Expose WordsFor / Contains / Stats to the game loop and selector.
//
// Word lists:
//   - one list of exactly 4-letter words (LevelFour)
//   - one list of exactly 5-letter words (LevelFive)
//
// Initialization behavior (Load):
//   1. If WORDS_FOUR_FILE / WORDS_FIVE_FILE are set, the corresponding
//      level is loaded from that file.
//   2. Otherwise the level falls back to the embedded defaults from
//      default_four.txt / default_five.txt.
//
// Constraints:
//   - Words must be alphabetic a-z and exactly the level length.
//   - Lists are normalized to lowercase; blanks and #-comments skipped.

package words

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/wordletrack/internal/puzzle"
)

//go:embed default_four.txt
var embeddedFour string

//go:embed default_five.txt
var embeddedFive string

// Bank holds the per-level word lists and the membership set.
// Read-only after Load; safe for concurrent use.
type Bank struct {
	byLevel map[puzzle.Level][]string
	all     map[string]struct{}
}

// New builds a Bank directly from per-level lists. Words are kept as
// given; callers are expected to supply lowercase words of the level
// length. Mostly useful for tests and embedding.
func New(byLevel map[puzzle.Level][]string) *Bank {
	b := &Bank{
		byLevel: make(map[puzzle.Level][]string, len(byLevel)),
		all:     make(map[string]struct{}),
	}
	for level, list := range byLevel {
		b.byLevel[level] = list
		for _, w := range list {
			b.all[w] = struct{}{}
		}
	}
	return b
}

// Load builds a Bank from env-configured files or embedded defaults.
// Returns an error if any level ends up empty.
func Load() (*Bank, error) {
	b := &Bank{
		byLevel: make(map[puzzle.Level][]string),
		all:     make(map[string]struct{}),
	}
	sources := []struct {
		level    puzzle.Level
		envKey   string
		embedded string
	}{
		{puzzle.LevelFour, "WORDS_FOUR_FILE", embeddedFour},
		{puzzle.LevelFive, "WORDS_FIVE_FILE", embeddedFive},
	}
	for _, src := range sources {
		var (
			list []string
			err  error
		)
		if path := os.Getenv(src.envKey); path != "" {
			list, err = readWordFile(path, src.level.Len())
			if err != nil {
				return nil, err
			}
		} else {
			list = scanWords(strings.NewReader(src.embedded), src.level.Len())
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("words: %d-letter list is empty", src.level.Len())
		}
		b.byLevel[src.level] = list
		for _, w := range list {
			b.all[w] = struct{}{}
		}
	}
	return b, nil
}

// readWordFile loads one word per line from a file, keeping only valid
// lowercase alphabetic words of the wanted length.
func readWordFile(path string, length int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out := scanWords(f, length)
	if out == nil {
		return nil, errors.New("words: no valid words in " + path)
	}
	return out, nil
}

// scanWords lowercases, trims, and filters lines to length-letter words.
func scanWords(r io.Reader, length int) []string {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if len(w) == length && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// WordsFor returns the bank's words at a difficulty level.
// The returned slice is shared; callers must not mutate it.
func (b *Bank) WordsFor(level puzzle.Level) []string {
	return b.byLevel[level]
}

// Contains reports whether w is a known word at any level
// (dictionary validity check for guesses).
func (b *Bank) Contains(w string) bool {
	_, ok := b.all[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// Stats returns word counts per level.
func (b *Bank) Stats() map[string]int {
	return map[string]int{
		"four": len(b.byLevel[puzzle.LevelFour]),
		"five": len(b.byLevel[puzzle.LevelFive]),
	}
}
