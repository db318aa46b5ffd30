// apps/go-solver/internal/game/engine.go
//
// Guess selection and the game loop.
// Responsibilities:
//   - Guesser interface plus the two implementations: RandomGuesser and
//     MaxScoreGuesser (scorer-driven, with the PossibleWords /
//     AllUnguessedWords policy).
//   - Play: drive a guesser against a known objective word.
//   - PlayWithFeedback: drive a guesser against an external feedback
//     source, e.g. a human relaying results from a real game.

package game

import (
	"math/rand"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/restrictions"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/scorers"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Guesser selects words to solve a single game.
type Guesser interface {
	// Update folds one round of feedback into the guesser's state.
	Update(result *results.GuessResult) error
	// SelectNextGuess returns the next guess, or ok=false if no word is
	// possible under the accumulated restrictions.
	SelectNextGuess() (guess string, ok bool)
	// NumPossibleWords reports how many words could still be the answer.
	NumPossibleWords() int
}

// Outcome says how a game ended.
type Outcome uint8

const (
	// Success means the objective word was guessed within the limit.
	Success Outcome = iota
	// Failure means the guess limit ran out.
	Failure
	// UnknownWord means the objective was not in the word bank, so no
	// guesses were attempted.
	UnknownWord
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case UnknownWord:
		return "unknown word"
	default:
		return "invalid"
	}
}

// TurnData records one round of a game.
type TurnData struct {
	Guess string
	// NumPossibleWordsBefore is the size of the candidate set when the
	// guess was chosen.
	NumPossibleWordsBefore int
}

// GameResult is the outcome of one game plus the turns played.
type GameResult struct {
	Outcome Outcome
	Turns   []TurnData
}

// Play drives the guesser against the given objective word, computing
// feedback locally each round. If the objective is not in the bank the
// game ends immediately with UnknownWord.
func Play(bank *words.WordBank, objective string, maxRounds int, guesser Guesser) GameResult {
	// The bank stores lowercase words and Contains lowercases its
	// argument, so the objective must be normalized the same way before
	// feedback is computed against it.
	objective = strings.ToLower(objective)
	if !bank.Contains(objective) {
		return GameResult{Outcome: UnknownWord}
	}
	feedback := func(guess string) (*results.GuessResult, error) {
		return results.Compute(objective, guess)
	}
	result, err := PlayWithFeedback(maxRounds, guesser, feedback)
	if err != nil {
		// Locally computed feedback is always consistent, so an error
		// means the guesser saw a word outside the bank.
		return GameResult{Outcome: UnknownWord, Turns: result.Turns}
	}
	return result
}

// FeedbackFunc produces the feedback for one guess. External sources
// may return an error when feedback cannot be obtained.
type FeedbackFunc func(guess string) (*results.GuessResult, error)

// PlayWithFeedback drives the guesser for up to maxRounds rounds,
// asking the feedback source after each guess. The guesser running out
// of possible words ends the game with UnknownWord, which with an
// external source means the objective was never in the bank or some
// feedback was wrong.
func PlayWithFeedback(maxRounds int, guesser Guesser, feedback FeedbackFunc) (GameResult, error) {
	var turns []TurnData
	for round := 0; round < maxRounds; round++ {
		guess, ok := guesser.SelectNextGuess()
		if !ok {
			return GameResult{Outcome: UnknownWord, Turns: turns}, nil
		}
		turns = append(turns, TurnData{
			Guess:                  guess,
			NumPossibleWordsBefore: guesser.NumPossibleWords(),
		})
		result, err := feedback(guess)
		if err != nil {
			return GameResult{Outcome: Failure, Turns: turns}, err
		}
		if result.AllCorrect() {
			return GameResult{Outcome: Success, Turns: turns}, nil
		}
		if err := guesser.Update(result); err != nil {
			return GameResult{Outcome: Failure, Turns: turns}, err
		}
	}
	return GameResult{Outcome: Failure, Turns: turns}, nil
}

// RandomGuesser guesses uniformly at random from the words that still
// meet the restrictions. A baseline, not a good strategy.
type RandomGuesser struct {
	possibleWords []string
	restrictions  *restrictions.Restrictions
	rng           *rand.Rand
}

// NewRandomGuesser constructs a RandomGuesser over the given bank.
func NewRandomGuesser(bank *words.WordBank, seed int64) *RandomGuesser {
	return &RandomGuesser{
		possibleWords: bank.Words(),
		restrictions:  restrictions.New(bank.WordLength()),
		rng:           rand.New(rand.NewSource(seed)),
	}
}

func (g *RandomGuesser) Update(result *results.GuessResult) error {
	if err := g.restrictions.Update(result); err != nil {
		return err
	}
	kept := make([]string, 0, len(g.possibleWords))
	for _, word := range g.possibleWords {
		if g.restrictions.SatisfiedBy(word) {
			kept = append(kept, word)
		}
	}
	g.possibleWords = kept
	return nil
}

func (g *RandomGuesser) SelectNextGuess() (string, bool) {
	if len(g.possibleWords) == 0 {
		return "", false
	}
	return g.possibleWords[g.rng.Intn(len(g.possibleWords))], true
}

func (g *RandomGuesser) NumPossibleWords() int {
	return len(g.possibleWords)
}

// MaxScoreGuesser selects the guess that maximizes the scorer's score.
type MaxScoreGuesser struct {
	guessFrom         scorers.GuessFrom
	allUnguessedWords []string
	possibleWords     []string
	restrictions      *restrictions.Restrictions
	scorer            scorers.Scorer
}

// NewMaxScoreGuesser constructs a MaxScoreGuesser over the given bank.
// guessFrom selects whether guesses may come from the whole bank or
// only from words that could still be the answer.
func NewMaxScoreGuesser(guessFrom scorers.GuessFrom, bank *words.WordBank, scorer scorers.Scorer) *MaxScoreGuesser {
	return &MaxScoreGuesser{
		guessFrom:         guessFrom,
		allUnguessedWords: bank.Words(),
		possibleWords:     bank.Words(),
		restrictions:      restrictions.New(bank.WordLength()),
		scorer:            scorer,
	}
}

// Clone returns an independent copy, sharing the scorer's immutable
// precomputed data, so many games can run from the same starting state.
func (g *MaxScoreGuesser) Clone() *MaxScoreGuesser {
	return &MaxScoreGuesser{
		guessFrom:         g.guessFrom,
		allUnguessedWords: append([]string(nil), g.allUnguessedWords...),
		possibleWords:     append([]string(nil), g.possibleWords...),
		restrictions:      g.restrictions.Clone(),
		scorer:            g.scorer.Clone(),
	}
}

func (g *MaxScoreGuesser) Update(result *results.GuessResult) error {
	for i, word := range g.allUnguessedWords {
		if word == result.Guess {
			g.allUnguessedWords[i] = g.allUnguessedWords[len(g.allUnguessedWords)-1]
			g.allUnguessedWords = g.allUnguessedWords[:len(g.allUnguessedWords)-1]
			break
		}
	}
	if err := g.restrictions.Update(result); err != nil {
		return err
	}
	// Unless this was the winning guess, this also drops the guess
	// itself from the possible words.
	kept := make([]string, 0, len(g.possibleWords))
	for _, word := range g.possibleWords {
		if g.restrictions.SatisfiedBy(word) {
			kept = append(kept, word)
		}
	}
	g.possibleWords = kept
	return g.scorer.Update(result.Guess, g.restrictions, g.possibleWords)
}

func (g *MaxScoreGuesser) NumPossibleWords() int {
	return len(g.possibleWords)
}

// SelectNextGuess returns the highest-scoring guess. With ties, the
// word that reached the top score first wins, so selection is
// deterministic for a given bank order.
func (g *MaxScoreGuesser) SelectNextGuess() (string, bool) {
	if g.guessFrom == scorers.AllUnguessedWords && len(g.possibleWords) > 2 {
		if len(g.allUnguessedWords) == 0 {
			return "", false
		}
		bestWord := g.allUnguessedWords[0]
		bestScore := g.scorer.ScoreWord(bestWord)
		scoresAllSame := true
		for _, word := range g.allUnguessedWords[1:] {
			score := g.scorer.ScoreWord(word)
			if score != bestScore {
				scoresAllSame = false
				if score > bestScore {
					bestScore = score
					bestWord = word
				}
			}
		}
		if !scoresAllSame {
			return bestWord, true
		}
		// Every word looks the same to the scorer, so an impossible
		// guess buys nothing. Fall through to the possible words.
	}
	if len(g.possibleWords) == 0 {
		return "", false
	}
	bestWord := g.possibleWords[0]
	bestScore := g.scorer.ScoreWord(bestWord)
	for _, word := range g.possibleWords[1:] {
		if score := g.scorer.ScoreWord(word); score > bestScore {
			bestScore = score
			bestWord = word
		}
	}
	return bestWord, true
}

// ScoredGuess pairs a candidate guess with its score.
type ScoredGuess struct {
	Word  string
	Score int64
}

// SelectTopNGuesses returns the n best guesses in descending score
// order, e.g. to show a player several strong options.
func (g *MaxScoreGuesser) SelectTopNGuesses(n int) []ScoredGuess {
	pool := g.possibleWords
	if g.guessFrom == scorers.AllUnguessedWords && len(g.possibleWords) > 2 {
		pool = g.allUnguessedWords
	}
	scored := make([]ScoredGuess, 0, len(pool))
	for _, word := range pool {
		scored = append(scored, ScoredGuess{Word: word, Score: g.scorer.ScoreWord(word)})
	}
	// Insertion-style selection keeps the first-seen word ahead on ties.
	top := make([]ScoredGuess, 0, n)
	for _, candidate := range scored {
		pos := len(top)
		for pos > 0 && top[pos-1].Score < candidate.Score {
			pos--
		}
		if pos >= n {
			continue
		}
		if len(top) < n {
			top = append(top, ScoredGuess{})
		}
		copy(top[pos+1:], top[pos:len(top)-1])
		top[pos] = candidate
	}
	return top
}
