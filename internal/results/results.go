// apps/go-solver/internal/results/results.go
//
// Per-letter feedback for a single guess.
// Responsibilities:
//   - LetterResult: evaluation of one letter of a guess (correct / present
//     elsewhere / not present).
//   - GuessResult: a guess plus one LetterResult per position.
//   - Compute: score a guess against a known objective word using the
//     classic two-pass algorithm, which is safe for repeated letters.
//   - Parse/String: the interactive text encoding ('g', 'y', '.').
//   - Compressed: a packed form of a result sequence, usable as a map key.
//
// A LetterResult is only meaningful relative to the guess that produced
// it; it says nothing global about the letter.

package results

import (
	"errors"
	"fmt"
	"strings"
)

// LetterResult is the evaluation of a single letter in a guess.
type LetterResult uint8

const (
	// NotPresent means the letter has no unclaimed occurrence left in the
	// objective word.
	NotPresent LetterResult = iota
	// PresentNotHere means the letter occurs in the objective word, but
	// not at this position.
	PresentNotHere
	// Correct means the letter is at this exact position.
	Correct
)

// ErrInconsistentFeedback reports feedback that contradicts restrictions
// accumulated from earlier rounds. It is fatal to the current game: the
// inputs are deterministic, so retrying would reproduce it.
var ErrInconsistentFeedback = errors.New("inconsistent feedback")

// WordLengthError reports a word whose length disagrees with the rest of
// the game (guess vs objective, or a dictionary entry vs the bank).
type WordLengthError struct {
	Expected int
	Actual   int
}

func (e *WordLengthError) Error() string {
	return fmt.Sprintf("word length mismatch: expected %d letters, got %d", e.Expected, e.Actual)
}

// GuessResult is the feedback for one guess: the guess itself and one
// LetterResult per letter, in guess order. Immutable once produced.
type GuessResult struct {
	Guess   string
	Results []LetterResult
}

// Compute scores guess against the hidden objective word.
//
// Pass 1 marks exact matches Correct and counts the remaining
// (non-matched) objective letters. Pass 2 hands out PresentNotHere while
// unclaimed occurrences remain, scanning the guess left to right, so each
// distinct letter receives exactly min(count in guess, count in
// objective) non-NotPresent marks, with Correct always claiming first.
func Compute(objective, guess string) (*GuessResult, error) {
	if len(objective) != len(guess) {
		return nil, &WordLengthError{Expected: len(objective), Actual: len(guess)}
	}
	res := make([]LetterResult, len(guess))

	// Occurrence counts for objective letters not matched in pass 1.
	var counts [26]int
	for i := 0; i < len(guess); i++ {
		if guess[i] == objective[i] {
			res[i] = Correct
		} else if j := int(objective[i] - 'a'); j >= 0 && j < 26 {
			counts[j]++
		}
	}
	for i := 0; i < len(guess); i++ {
		if res[i] == Correct {
			continue
		}
		if j := int(guess[i] - 'a'); j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = PresentNotHere
			counts[j]--
		}
	}
	return &GuessResult{Guess: guess, Results: res}, nil
}

// AllCorrect reports whether every letter of the guess was Correct.
func (r *GuessResult) AllCorrect() bool {
	for _, lr := range r.Results {
		if lr != Correct {
			return false
		}
	}
	return true
}

// CountInGuess returns how many occurrences of letter in this guess were
// marked present (Correct or PresentNotHere) and how many were marked
// NotPresent.
func (r *GuessResult) CountInGuess(letter byte) (present, notPresent int) {
	for i := 0; i < len(r.Guess); i++ {
		if r.Guess[i] != letter {
			continue
		}
		if r.Results[i] == NotPresent {
			notPresent++
		} else {
			present++
		}
	}
	return present, notPresent
}

// String renders the result sequence in the interactive encoding:
// 'g' for Correct, 'y' for PresentNotHere, '.' for NotPresent.
func (r *GuessResult) String() string {
	var b strings.Builder
	for _, lr := range r.Results {
		switch lr {
		case Correct:
			b.WriteByte('g')
		case PresentNotHere:
			b.WriteByte('y')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Parse decodes an interactive feedback line for the given guess. The
// line must align 1:1 with the guess and contain only '.', 'y' and 'g'.
// A bad line is a caller-fixable input error: report it and re-prompt.
func Parse(guess, line string) (*GuessResult, error) {
	line = strings.TrimSpace(line)
	if len(line) != len(guess) {
		return nil, &WordLengthError{Expected: len(guess), Actual: len(line)}
	}
	res := make([]LetterResult, len(line))
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case 'g':
			res[i] = Correct
		case 'y':
			res[i] = PresentNotHere
		case '.':
			res[i] = NotPresent
		default:
			return nil, fmt.Errorf("invalid feedback character %q: use '.', 'y' or 'g'", line[i])
		}
	}
	return &GuessResult{Guess: guess, Results: res}, nil
}

// Compressed is a result sequence packed two bits per letter. It is
// comparable, so it can key maps when partitioning candidates by the
// feedback pattern they would produce.
type Compressed uint32

// maxCompressedLen is the longest result sequence Compressed can hold.
const maxCompressedLen = 15

// Compress packs a result sequence. Words longer than 15 letters do not
// fit in 32 bits alongside the terminator and are rejected.
func Compress(rs []LetterResult) (Compressed, error) {
	if len(rs) > maxCompressedLen {
		return 0, fmt.Errorf("cannot compress %d results: max is %d", len(rs), maxCompressedLen)
	}
	var data Compressed
	for i, lr := range rs {
		data |= Compressed(lr) << (2 * i)
	}
	// Set a terminator bit so sequences of different lengths never collide.
	data |= 1 << (2 * len(rs))
	return data, nil
}
