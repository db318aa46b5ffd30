// apps/go-solver/internal/scorers/scorers.go
//
// Word scoring strategies. Every strategy implements Scorer: it is told
// about each guess as the game narrows, and assigns a score to candidate
// words where higher means a better next guess.
// Responsibilities:
//   - Scorer interface and the New factory keyed by strategy name.
//   - LetterFrequencyScorer: unique unguessed letters weighted by how
//     many candidates contain them.
//   - LocatedLettersScorer: presence and position weighted by what the
//     restrictions already pin down.
//   - ApproxEliminationsScorer: per-letter expected eliminations from
//     frequency tables.
//
// The exact and combo eliminations scorers live in eliminations.go.

package scorers

import (
	"fmt"
	"sort"

	"github.com/robalobadob/wordle/apps/go-solver/internal/restrictions"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Scorer scores words, where the maximum score indicates the best guess.
//
// Each implementation trades guessing strength against compute cost.
// EliminationsScorer guesses in the fewest rounds if the precompute cost
// is acceptable; ApproxEliminationsScorer gets close at a fraction of
// the cost.
type Scorer interface {
	// Update tells the scorer about the latest guess, the updated
	// restrictions, and the narrowed list of possible words.
	Update(latestGuess string, r *restrictions.Restrictions, possibleWords []string) error
	// ScoreWord scores the given word. Higher is better.
	ScoreWord(word string) int64
	// Clone returns an independent copy sharing any immutable
	// precomputed data, so many games can run concurrently.
	Clone() Scorer
}

// GuessFrom selects which words a guesser (and the combo scorer's second
// guess) may pick from.
type GuessFrom uint8

const (
	// PossibleWords only guesses words that could still be the answer.
	PossibleWords GuessFrom = iota
	// AllUnguessedWords may burn a guess on an impossible word if it
	// narrows the field faster.
	AllUnguessedWords
)

// Names lists the strategy names accepted by New, in display order.
func Names() []string {
	names := []string{
		"letter-frequency",
		"located-letters",
		"approx-eliminations",
		"eliminations",
		"combo-eliminations",
	}
	sort.Strings(names)
	return names
}

// New builds the named scoring strategy over the given word bank.
func New(name string, bank *words.WordBank) (Scorer, error) {
	switch name {
	case "letter-frequency":
		return NewLetterFrequencyScorer(bank.Words()), nil
	case "located-letters":
		return NewLocatedLettersScorer(bank), nil
	case "approx-eliminations":
		return NewApproxEliminationsScorer(bank), nil
	case "eliminations":
		return NewEliminationsScorer(bank), nil
	case "combo-eliminations":
		return NewComboEliminationsScorer(bank, AllUnguessedWords, defaultComboThreshold), nil
	default:
		return nil, fmt.Errorf("unknown scorer %q", name)
	}
}

// --- letter frequency ---

// LetterFrequencyScorer scores a word by the number of possible words
// that share a letter with it, summed across each unique letter that has
// not been guessed yet.
type LetterFrequencyScorer struct {
	guessedLetters map[byte]struct{}
	counter        *words.WordCounter
}

// NewLetterFrequencyScorer constructs a LetterFrequencyScorer over the
// given word list, normally the full bank the guesser uses.
func NewLetterFrequencyScorer(allWords []string) *LetterFrequencyScorer {
	return &LetterFrequencyScorer{
		guessedLetters: make(map[byte]struct{}),
		counter:        words.NewCounter(allWords),
	}
}

func (s *LetterFrequencyScorer) Update(latestGuess string, _ *restrictions.Restrictions, possibleWords []string) error {
	for i := 0; i < len(latestGuess); i++ {
		s.guessedLetters[latestGuess[i]] = struct{}{}
	}
	s.counter = words.NewCounter(possibleWords)
	return nil
}

func (s *LetterFrequencyScorer) ScoreWord(word string) int64 {
	var sum int64
	for i := 0; i < len(word); i++ {
		letter := word[i]
		if seenBefore(word, i) {
			continue
		}
		if _, guessed := s.guessedLetters[letter]; guessed {
			continue
		}
		sum += int64(s.counter.NumWordsWithLetter(letter))
	}
	return sum
}

func (s *LetterFrequencyScorer) Clone() Scorer {
	guessed := make(map[byte]struct{}, len(s.guessedLetters))
	for letter := range s.guessedLetters {
		guessed[letter] = struct{}{}
	}
	return &LetterFrequencyScorer{guessedLetters: guessed, counter: s.counter}
}

// --- located letters ---

// LocatedLettersScorer scores each letter of a word by both presence and
// location against what is already known:
//
//   - 1 point if the letter is known to go here.
//   - 1 point per possible word with this letter here, if the letter is
//     known present but this position is still open.
//   - If nothing is known about the letter: 1 point per possible word
//     with this letter here, plus (for its first occurrence in the word)
//     1 point per possible word containing the letter anywhere.
type LocatedLettersScorer struct {
	counter      *words.WordCounter
	restrictions *restrictions.Restrictions
}

// NewLocatedLettersScorer constructs a LocatedLettersScorer over the
// given bank.
func NewLocatedLettersScorer(bank *words.WordBank) *LocatedLettersScorer {
	return &LocatedLettersScorer{
		counter:      words.NewCounter(bank.Words()),
		restrictions: restrictions.New(bank.WordLength()),
	}
}

func (s *LocatedLettersScorer) Update(_ string, r *restrictions.Restrictions, possibleWords []string) error {
	s.restrictions = r.Clone()
	s.counter = words.NewCounter(possibleWords)
	return nil
}

func (s *LocatedLettersScorer) ScoreWord(word string) int64 {
	var sum int64
	for i := 0; i < len(word); i++ {
		ll := words.LocatedLetter{Letter: word[i], Location: i}
		switch s.restrictions.State(ll) {
		case restrictions.Here:
			sum++
			continue
		case restrictions.PresentMaybeHere:
			sum += int64(s.counter.NumWordsWithLetterAt(ll))
			continue
		case restrictions.PresentNotHere, restrictions.NotPresent:
			continue
		}
		// Nothing is known about this letter.
		if !seenBefore(word, i) {
			sum += int64(s.counter.NumWordsWithLetter(ll.Letter))
		}
		sum += int64(s.counter.NumWordsWithLetterAt(ll))
	}
	return sum
}

func (s *LocatedLettersScorer) Clone() Scorer {
	return &LocatedLettersScorer{
		counter:      s.counter,
		restrictions: s.restrictions.Clone(),
	}
}

// --- approximate eliminations ---

// ApproxEliminationsScorer estimates, per letter, the number of words a
// guess is expected to eliminate:
//
//	{eliminated words if in state} x {fraction of words matching state}
//
// summed over the correct, present-elsewhere and (for the letter's first
// occurrence) not-present states, then summed over letters. Cheaper than
// the exact EliminationsScorer, slightly less effective.
type ApproxEliminationsScorer struct {
	counter *words.WordCounter
}

// NewApproxEliminationsScorer constructs an ApproxEliminationsScorer
// over the given bank.
func NewApproxEliminationsScorer(bank *words.WordBank) *ApproxEliminationsScorer {
	return &ApproxEliminationsScorer{counter: words.NewCounter(bank.Words())}
}

func (s *ApproxEliminationsScorer) Update(_ string, _ *restrictions.Restrictions, possibleWords []string) error {
	s.counter = words.NewCounter(possibleWords)
	return nil
}

func (s *ApproxEliminationsScorer) ScoreWord(word string) int64 {
	return int64(s.expectedEliminations(word) * 1000)
}

func (s *ApproxEliminationsScorer) Clone() Scorer {
	return &ApproxEliminationsScorer{counter: s.counter}
}

func (s *ApproxEliminationsScorer) expectedEliminations(word string) float64 {
	var sum float64
	for i := 0; i < len(word); i++ {
		ll := words.LocatedLetter{Letter: word[i], Location: i}
		sum += s.expectedEliminationsForLetter(ll, !seenBefore(word, i))
	}
	return sum
}

func (s *ApproxEliminationsScorer) expectedEliminationsForLetter(ll words.LocatedLetter, isNewLetter bool) float64 {
	numIfCorrect := float64(s.counter.NumWordsWithLetterAt(ll))
	numIfPresent := float64(s.counter.NumWordsWithLetter(ll.Letter))
	numIfPresentNotHere := numIfPresent - numIfCorrect
	total := float64(s.counter.NumWords())
	if total == 0 {
		return 0
	}
	eliminationsIfCorrect := total - numIfCorrect
	eliminationsIfPresentNotHere := total - numIfPresentNotHere
	expected := eliminationsIfCorrect*numIfCorrect/total +
		eliminationsIfPresentNotHere*numIfPresentNotHere/total
	if !isNewLetter {
		// Only the location-specific part counts; the not-present branch
		// was already included at the letter's first occurrence.
		return expected
	}
	numIfNotPresent := total - numIfPresent
	eliminationsIfNotPresent := numIfPresent
	return expected + eliminationsIfNotPresent*numIfNotPresent/total
}

// seenBefore reports whether word[i] also occurs at an earlier index.
func seenBefore(word string, i int) bool {
	for j := 0; j < i; j++ {
		if word[j] == word[i] {
			return true
		}
	}
	return false
}
