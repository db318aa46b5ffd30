// apps/go-solver/internal/scorers/eliminations.go
//
// Exact expected-eliminations scoring.
// Responsibilities:
//   - EliminationsScorer: partitions the possible words by the exact
//     feedback pattern each guess would produce and scores the guess by
//     the expected number of eliminated words. The expensive
//     first-round pass over the whole bank is precomputed in parallel
//     at construction and shared read-only between clones.
//   - Table export/import so the precomputation can be persisted and
//     reloaded instead of redone.
//   - ComboEliminationsScorer: same idea over the next two guesses.
//     Very expensive; falls back to single-guess behavior once the
//     candidate set is small.

package scorers

import (
	"runtime"
	"sync"

	"github.com/robalobadob/wordle/apps/go-solver/internal/restrictions"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// defaultComboThreshold is the candidate-set size below which the combo
// scorer stops looking two guesses ahead.
const defaultComboThreshold = 1000

// expectedEliminations partitions possibleWords by the feedback pattern
// each would produce for word, then sums num_eliminated x num_matched
// over the patterns and divides by the total.
func expectedEliminations(word string, possibleWords []string) float64 {
	if len(possibleWords) == 0 {
		return 0
	}
	matching := make(map[results.Compressed]int)
	for _, possible := range possibleWords {
		gr, err := results.Compute(possible, word)
		if err != nil {
			continue
		}
		pattern, err := results.Compress(gr.Results)
		if err != nil {
			continue
		}
		matching[pattern]++
	}
	total := len(possibleWords)
	sum := 0
	for _, numMatched := range matching {
		sum += (total - numMatched) * numMatched
	}
	return float64(sum) / float64(total)
}

// EliminationsScorer scores a guess by the exact number of possible
// words it is expected to eliminate. The strongest single-guess
// strategy, at O(n^2) per round in the number of candidates.
type EliminationsScorer struct {
	possibleWords []string
	// firstGuess holds the precomputed full-bank expected eliminations.
	// Built once, never mutated afterwards, shared between clones.
	firstGuess map[string]float64
	firstRound bool
}

// NewEliminationsScorer constructs an EliminationsScorer over the given
// bank, precomputing the first-guess eliminations for every word in
// parallel.
func NewEliminationsScorer(bank *words.WordBank) *EliminationsScorer {
	all := bank.Words()
	table := make(map[string]float64, len(all))
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > len(all) {
		numWorkers = 1
	}
	type entry struct {
		word  string
		score float64
	}
	var wg sync.WaitGroup
	parts := make([][]entry, numWorkers)
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			part := make([]entry, 0, len(all)/numWorkers+1)
			for i := w; i < len(all); i += numWorkers {
				part = append(part, entry{all[i], expectedEliminations(all[i], all)})
			}
			parts[w] = part
		}(w)
	}
	wg.Wait()
	for _, part := range parts {
		for _, e := range part {
			table[e.word] = e.score
		}
	}
	return &EliminationsScorer{
		possibleWords: all,
		firstGuess:    table,
		firstRound:    true,
	}
}

// NewEliminationsScorerFromTable constructs an EliminationsScorer from a
// previously exported first-guess table, skipping the precomputation.
func NewEliminationsScorerFromTable(bank *words.WordBank, table map[string]float64) *EliminationsScorer {
	return &EliminationsScorer{
		possibleWords: bank.Words(),
		firstGuess:    table,
		firstRound:    true,
	}
}

// FirstGuessEliminations exposes the precomputed table for export.
// Callers must not modify the returned map.
func (s *EliminationsScorer) FirstGuessEliminations() map[string]float64 {
	return s.firstGuess
}

func (s *EliminationsScorer) Update(_ string, _ *restrictions.Restrictions, possibleWords []string) error {
	s.possibleWords = append([]string(nil), possibleWords...)
	s.firstRound = false
	return nil
}

func (s *EliminationsScorer) ScoreWord(word string) int64 {
	if s.firstRound {
		if score, ok := s.firstGuess[word]; ok {
			return int64(score * 1000)
		}
	}
	return int64(expectedEliminations(word, s.possibleWords) * 1000)
}

// Clone shares the precomputed table and copies the per-game state.
func (s *EliminationsScorer) Clone() Scorer {
	return &EliminationsScorer{
		possibleWords: append([]string(nil), s.possibleWords...),
		firstGuess:    s.firstGuess,
		firstRound:    s.firstRound,
	}
}

// ComboEliminationsScorer scores a guess by the exact number of possible
// words expected to be eliminated by it and the best following guess.
// Roughly O(n^3) in the number of candidates, so above the threshold it
// is only worth it early in the game; below, it degrades to the
// single-guess EliminationsScorer behavior.
type ComboEliminationsScorer struct {
	wordsToGuess  []string
	possibleWords []string
	guessFrom     GuessFrom
	// minForCombo is the candidate count above which two-guess lookahead
	// is used.
	minForCombo int
}

// NewComboEliminationsScorer constructs a ComboEliminationsScorer over
// the given bank. minForCombo sets the candidate-set size above which
// the scorer pays for the two-guess lookahead.
func NewComboEliminationsScorer(bank *words.WordBank, guessFrom GuessFrom, minForCombo int) *ComboEliminationsScorer {
	all := bank.Words()
	return &ComboEliminationsScorer{
		wordsToGuess:  append([]string(nil), all...),
		possibleWords: all,
		guessFrom:     guessFrom,
		minForCombo:   minForCombo,
	}
}

func (s *ComboEliminationsScorer) Update(latestGuess string, _ *restrictions.Restrictions, possibleWords []string) error {
	s.possibleWords = append([]string(nil), possibleWords...)
	switch s.guessFrom {
	case AllUnguessedWords:
		for i, w := range s.wordsToGuess {
			if w == latestGuess {
				s.wordsToGuess[i] = s.wordsToGuess[len(s.wordsToGuess)-1]
				s.wordsToGuess = s.wordsToGuess[:len(s.wordsToGuess)-1]
				break
			}
		}
	case PossibleWords:
		s.wordsToGuess = append([]string(nil), possibleWords...)
	}
	return nil
}

func (s *ComboEliminationsScorer) ScoreWord(word string) int64 {
	return int64(s.expectedEliminations(word) * 1000)
}

func (s *ComboEliminationsScorer) Clone() Scorer {
	return &ComboEliminationsScorer{
		wordsToGuess:  append([]string(nil), s.wordsToGuess...),
		possibleWords: append([]string(nil), s.possibleWords...),
		guessFrom:     s.guessFrom,
		minForCombo:   s.minForCombo,
	}
}

func (s *ComboEliminationsScorer) expectedEliminations(word string) float64 {
	if len(s.possibleWords) > s.minForCombo {
		return s.expectedComboEliminations(word)
	}
	return expectedEliminations(word, s.possibleWords)
}

func (s *ComboEliminationsScorer) expectedComboEliminations(word string) float64 {
	numPossible := len(s.possibleWords)
	if numPossible == 0 {
		return 0
	}
	secondGuessPool := make([]string, 0, len(s.wordsToGuess))
	for _, w := range s.wordsToGuess {
		if w != word {
			secondGuessPool = append(secondGuessPool, w)
		}
	}

	// Possible objectives that produce the same first-round pattern lead
	// to identical follow-up analysis, so memoize per pattern.
	byFirstResult := make(map[results.Compressed]float64, numPossible)

	var total float64
	// Each possible objective is equally likely.
	for _, possibleObjective := range s.possibleWords {
		firstResult, err := results.Compute(possibleObjective, word)
		if err != nil {
			continue
		}
		pattern, err := results.Compress(firstResult.Results)
		if err != nil {
			continue
		}
		if known, ok := byFirstResult[pattern]; ok {
			total += known
			continue
		}

		updated, err := restrictions.FromResult(firstResult)
		if err != nil {
			continue
		}
		stillPossible := make([]string, 0, numPossible)
		for _, pw := range s.possibleWords {
			if updated.SatisfiedBy(pw) {
				stillPossible = append(stillPossible, pw)
			}
		}
		firstEliminated := float64(numPossible - len(stillPossible))

		// Finding the solution outright beats any second guess; nudge it
		// ahead of merely narrowing to one.
		if len(stillPossible) == 1 {
			firstEliminated += 0.1
			byFirstResult[pattern] = firstEliminated
			total += firstEliminated
			continue
		}

		secondPool := secondGuessPool
		if s.guessFrom == PossibleWords {
			secondPool = stillPossible
		}
		// Only the best second guess matters, since the guesser will
		// pick it rather than guess at random.
		var bestSecond float64
		for _, secondGuess := range secondPool {
			if expected := expectedEliminations(secondGuess, stillPossible); expected > bestSecond {
				bestSecond = expected
			}
		}
		expected := firstEliminated + bestSecond
		byFirstResult[pattern] = expected
		total += expected
	}
	return total / float64(numPossible)
}
