package game

import (
	"testing"

	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/scorers"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func mustBank(t *testing.T, list ...string) *words.WordBank {
	t.Helper()
	bank, err := words.NewBank(list)
	if err != nil {
		t.Fatal(err)
	}
	return bank
}

func solverBank(t *testing.T) *words.WordBank {
	return mustBank(t, "alpha", "allot", "begot", "below", "endow", "ingot")
}

// Every scoring strategy must solve a word that is in the bank within
// the bank's size in rounds.
func TestPlaySolvesKnownWord(t *testing.T) {
	for _, name := range scorers.Names() {
		for _, from := range []scorers.GuessFrom{scorers.PossibleWords, scorers.AllUnguessedWords} {
			bank := solverBank(t)
			scorer, err := scorers.New(name, bank)
			if err != nil {
				t.Fatal(err)
			}
			guesser := NewMaxScoreGuesser(from, bank, scorer)

			result := Play(bank, "alpha", bank.Len(), guesser)
			if result.Outcome != Success {
				t.Errorf("scorer %q mode %d: outcome = %v, want Success", name, from, result.Outcome)
				continue
			}
			if len(result.Turns) == 0 || len(result.Turns) > bank.Len() {
				t.Errorf("scorer %q mode %d: %d turns", name, from, len(result.Turns))
			}
			if last := result.Turns[len(result.Turns)-1].Guess; last != "alpha" {
				t.Errorf("scorer %q mode %d: last guess = %q, want %q", name, from, last, "alpha")
			}
		}
	}
}

func TestPlayUnknownWord(t *testing.T) {
	for _, name := range scorers.Names() {
		bank := solverBank(t)
		scorer, err := scorers.New(name, bank)
		if err != nil {
			t.Fatal(err)
		}
		guesser := NewMaxScoreGuesser(scorers.AllUnguessedWords, bank, scorer)

		result := Play(bank, "other", bank.Len(), guesser)
		if result.Outcome != UnknownWord {
			t.Errorf("scorer %q: outcome = %v, want UnknownWord", name, result.Outcome)
		}
		if len(result.Turns) != 0 {
			t.Errorf("scorer %q: %d guesses attempted for an unknown word, want 0", name, len(result.Turns))
		}
	}
}

// Contains is case-insensitive, so an uppercase objective must play the
// same game as its lowercase form rather than blowing up in feedback
// computation.
func TestPlayMixedCaseObjective(t *testing.T) {
	bank := solverBank(t)
	scorer := scorers.NewLetterFrequencyScorer(bank.Words())
	guesser := NewMaxScoreGuesser(scorers.PossibleWords, bank, scorer)

	result := Play(bank, "ALPHA", bank.Len(), guesser)
	if result.Outcome != Success {
		t.Fatalf("outcome = %v, want Success", result.Outcome)
	}
	if last := result.Turns[len(result.Turns)-1].Guess; last != "alpha" {
		t.Errorf("last guess = %q, want %q", last, "alpha")
	}
}

func TestPlayRoundLimit(t *testing.T) {
	bank := mustBank(t, "abcz", "weyz", "defy", "ghix")
	scorer := scorers.NewLetterFrequencyScorer(bank.Words())
	guesser := NewMaxScoreGuesser(scorers.PossibleWords, bank, scorer)

	// The frequency scorer opens with "weyz", so one round cannot solve
	// "abcz".
	result := Play(bank, "abcz", 1, guesser)
	if result.Outcome != Failure {
		t.Fatalf("outcome = %v, want Failure", result.Outcome)
	}
	if len(result.Turns) != 1 {
		t.Errorf("turns = %d, want 1", len(result.Turns))
	}
	if result.Turns[0].NumPossibleWordsBefore != bank.Len() {
		t.Errorf("NumPossibleWordsBefore = %d, want %d", result.Turns[0].NumPossibleWordsBefore, bank.Len())
	}
}

func TestRandomGuesserSolves(t *testing.T) {
	bank := solverBank(t)
	guesser := NewRandomGuesser(bank, 1)

	// Each wrong guess eliminates at least itself, so the bank size
	// bounds the rounds needed.
	result := Play(bank, "alpha", bank.Len(), guesser)
	if result.Outcome != Success {
		t.Fatalf("outcome = %v, want Success", result.Outcome)
	}
}

func TestPlayWithFeedbackExternalSource(t *testing.T) {
	bank := solverBank(t)
	scorer := scorers.NewLocatedLettersScorer(bank)
	guesser := NewMaxScoreGuesser(scorers.AllUnguessedWords, bank, scorer)

	// Simulates an external game hiding "ingot".
	rounds := 0
	feedback := func(guess string) (*results.GuessResult, error) {
		rounds++
		return results.Compute("ingot", guess)
	}
	result, err := PlayWithFeedback(bank.Len(), guesser, feedback)
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != Success {
		t.Fatalf("outcome = %v, want Success", result.Outcome)
	}
	if rounds != len(result.Turns) {
		t.Errorf("feedback calls = %d, turns = %d", rounds, len(result.Turns))
	}
}

func TestSelectNextGuessPrefersFirstOnTies(t *testing.T) {
	bank := mustBank(t, "abc", "def", "ghi")
	scorer := scorers.NewLetterFrequencyScorer(bank.Words())
	guesser := NewMaxScoreGuesser(scorers.PossibleWords, bank, scorer)

	// Disjoint letters: every word scores the same, so list order decides.
	guess, ok := guesser.SelectNextGuess()
	if !ok || guess != "abc" {
		t.Errorf("SelectNextGuess() = %q, %v; want %q, true", guess, ok, "abc")
	}
}

func TestSelectTopNGuesses(t *testing.T) {
	bank := solverBank(t)
	scorer := scorers.NewLocatedLettersScorer(bank)
	guesser := NewMaxScoreGuesser(scorers.PossibleWords, bank, scorer)

	top := guesser.SelectTopNGuesses(3)
	if len(top) != 3 {
		t.Fatalf("len = %d, want 3", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].Score > top[i-1].Score {
			t.Errorf("top guesses not in descending order: %v", top)
		}
	}
	best, ok := guesser.SelectNextGuess()
	if !ok || best != top[0].Word {
		t.Errorf("SelectNextGuess() = %q, top[0] = %q", best, top[0].Word)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	bank := solverBank(t)
	scorer := scorers.NewLocatedLettersScorer(bank)
	base := NewMaxScoreGuesser(scorers.AllUnguessedWords, bank, scorer)
	clone := base.Clone()

	feedback, err := results.Compute("below", "alpha")
	if err != nil {
		t.Fatal(err)
	}
	if err := clone.Update(feedback); err != nil {
		t.Fatal(err)
	}

	if base.NumPossibleWords() != bank.Len() {
		t.Errorf("base candidates = %d after clone update, want %d", base.NumPossibleWords(), bank.Len())
	}
	if clone.NumPossibleWords() == bank.Len() {
		t.Error("clone candidates unchanged by update")
	}
}

func TestBenchmark(t *testing.T) {
	bank := solverBank(t)
	scorer := scorers.NewLocatedLettersScorer(bank)
	// PossibleWords mode guesses candidates only, so every game must
	// finish within the bank's size in rounds.
	base := NewMaxScoreGuesser(scorers.PossibleWords, bank, scorer)

	result := Benchmark(bank, base, bank.Len(), false)
	if result.NumGames != bank.Len() {
		t.Errorf("NumGames = %d, want %d", result.NumGames, bank.Len())
	}
	if result.NumFailures != 0 {
		t.Errorf("NumFailures = %d, want 0", result.NumFailures)
	}
	solved := 0
	for _, n := range result.Histogram {
		solved += n
	}
	if solved != result.NumGames {
		t.Errorf("histogram sums to %d, want %d", solved, result.NumGames)
	}
	if result.MeanGuesses <= 0 {
		t.Errorf("MeanGuesses = %f, want > 0", result.MeanGuesses)
	}
	if table := result.FormatTable(); table == "" {
		t.Error("FormatTable() returned empty string")
	}
}
