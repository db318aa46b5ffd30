package scorers

import (
	"testing"

	"github.com/robalobadob/wordle/apps/go-solver/internal/restrictions"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
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

func mustRestrictions(t *testing.T, guess, line string) *restrictions.Restrictions {
	t.Helper()
	result, err := results.Parse(guess, line)
	if err != nil {
		t.Fatal(err)
	}
	r, err := restrictions.FromResult(result)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestNewKnowsEveryName(t *testing.T) {
	bank := mustBank(t, "abc", "def", "ghi")
	for _, name := range Names() {
		scorer, err := New(name, bank)
		if err != nil {
			t.Errorf("New(%q): %v", name, err)
		}
		if scorer == nil {
			t.Errorf("New(%q) = nil scorer", name)
		}
	}
	if _, err := New("bogus", bank); err == nil {
		t.Error(`New("bogus"): want error`)
	}
}

// With no shared letters, every word scores positively and ties resolve
// by list order at the guesser level.
func TestLetterFrequencyDisjointWords(t *testing.T) {
	bank := mustBank(t, "abc", "def", "ghi")
	scorer := NewLetterFrequencyScorer(bank.Words())
	for _, word := range bank.Words() {
		if score := scorer.ScoreWord(word); score <= 0 {
			t.Errorf("ScoreWord(%q) = %d, want > 0", word, score)
		}
	}
}

func TestLetterFrequencySkipsGuessedAndRepeatedLetters(t *testing.T) {
	bank := mustBank(t, "aabc", "dcba", "deff")
	scorer := NewLetterFrequencyScorer(bank.Words())

	// aa counts once: a(2) + b(2) + c(2) = 6.
	if score := scorer.ScoreWord("aabc"); score != 6 {
		t.Errorf(`ScoreWord("aabc") = %d, want 6`, score)
	}

	r := mustRestrictions(t, "aabc", "....")
	if err := scorer.Update("aabc", r, []string{"deff"}); err != nil {
		t.Fatal(err)
	}
	// a, b, c were guessed; only d, e, f count, over {deff}: 1+1+1.
	if score := scorer.ScoreWord("deff"); score != 3 {
		t.Errorf(`ScoreWord("deff") after update = %d, want 3`, score)
	}
}

func TestLocatedLettersScores(t *testing.T) {
	bank := mustBank(t, "alpha", "allot", "begot", "below", "endow", "ingot")
	scorer := NewLocatedLettersScorer(bank)

	tests := []struct {
		word string
		want int64
	}{
		{"alpha", 4 + 5 + 2 + 2 + 1},
		{"allot", 4 + 5 + 2 + 10 + 6},
		{"begot", 4 + 5 + 4 + 10 + 6},
		{"below", 4 + 5 + 5 + 10 + 4},
		{"endow", 4 + 4 + 2 + 10 + 4},
		{"ingot", 2 + 4 + 4 + 10 + 6},
		{"other", 5 + 3 + 1 + 3 + 0},
	}
	for _, tt := range tests {
		if got := scorer.ScoreWord(tt.word); got != tt.want {
			t.Errorf("ScoreWord(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestLocatedLettersScoresAfterUpdate(t *testing.T) {
	bank := mustBank(t, "alpha", "allot", "begot", "below", "endow", "ingot")
	scorer := NewLocatedLettersScorer(bank)

	r := mustRestrictions(t, "begot", ".y.g.")
	if err := scorer.Update("begot", r, []string{"endow"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		word string
		want int64
	}{
		{"alpha", 0},
		{"below", 0 + 0 + 0 + 1 + 2},
		{"endow", 1 + 2 + 2 + 1 + 2},
		{"other", 0},
	}
	for _, tt := range tests {
		if got := scorer.ScoreWord(tt.word); got != tt.want {
			t.Errorf("ScoreWord(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestApproxEliminationsUselessWordScoresZero(t *testing.T) {
	bank := mustBank(t, "abc", "def", "ghi")
	scorer := NewApproxEliminationsScorer(bank)
	if score := scorer.ScoreWord("zzz"); score != 0 {
		t.Errorf(`ScoreWord("zzz") = %d, want 0`, score)
	}
	for _, word := range bank.Words() {
		if score := scorer.ScoreWord(word); score <= 0 {
			t.Errorf("ScoreWord(%q) = %d, want > 0", word, score)
		}
	}
}

func TestEliminationsScores(t *testing.T) {
	bank := mustBank(t, "cod", "wod", "mod")
	scorer := NewEliminationsScorer(bank)

	// "cod" splits the candidates into {cod} and {wod, mod}:
	// (2*1 + 1*2) / 3 = 1.333.
	if got := scorer.ScoreWord("cod"); got != 1333 {
		t.Errorf(`ScoreWord("cod") = %d, want 1333`, got)
	}
	// "mwc" gives every candidate a distinct pattern: 6/3 = 2.
	if got := scorer.ScoreWord("mwc"); got != 2000 {
		t.Errorf(`ScoreWord("mwc") = %d, want 2000`, got)
	}
	if got := scorer.ScoreWord("zzz"); got != 0 {
		t.Errorf(`ScoreWord("zzz") = %d, want 0`, got)
	}
}

func TestEliminationsScoresAfterUpdate(t *testing.T) {
	bank := mustBank(t, "abb", "abc", "bad", "zza", "zzz")
	scorer := NewEliminationsScorer(bank)

	r := mustRestrictions(t, "zza", "..y")
	if err := scorer.Update("zza", r, []string{"abb", "abc", "bad"}); err != nil {
		t.Fatal(err)
	}

	// abb and abc each split {abb, abc, bad} three ways.
	if got := scorer.ScoreWord("abb"); got != 2000 {
		t.Errorf(`ScoreWord("abb") = %d, want 2000`, got)
	}
	if got := scorer.ScoreWord("abc"); got != 2000 {
		t.Errorf(`ScoreWord("abc") = %d, want 2000`, got)
	}
	// bad matches itself exactly and leaves {abb, abc} together.
	if got := scorer.ScoreWord("bad"); got != 1333 {
		t.Errorf(`ScoreWord("bad") = %d, want 1333`, got)
	}
	if got := scorer.ScoreWord("zzz"); got != 0 {
		t.Errorf(`ScoreWord("zzz") = %d, want 0`, got)
	}
}

func TestEliminationsTableRoundTrip(t *testing.T) {
	bank := mustBank(t, "cod", "wod", "mod")
	computed := NewEliminationsScorer(bank)
	table := computed.FirstGuessEliminations()
	if len(table) != bank.Len() {
		t.Fatalf("table has %d entries, want %d", len(table), bank.Len())
	}

	imported := NewEliminationsScorerFromTable(bank, table)
	for _, word := range bank.Words() {
		if a, b := computed.ScoreWord(word), imported.ScoreWord(word); a != b {
			t.Errorf("ScoreWord(%q): computed %d, imported %d", word, a, b)
		}
	}
}

func TestEliminationsCloneSharesTableNotState(t *testing.T) {
	bank := mustBank(t, "abb", "abc", "bad", "zza", "zzz")
	base := NewEliminationsScorer(bank)
	clone := base.Clone()

	r := mustRestrictions(t, "zza", "..y")
	if err := clone.Update("zza", r, []string{"abb", "abc", "bad"}); err != nil {
		t.Fatal(err)
	}

	// The clone scores against its narrowed candidates; the base still
	// scores the full bank from the precomputed table.
	if got := clone.ScoreWord("abb"); got != 2000 {
		t.Errorf(`clone ScoreWord("abb") = %d, want 2000`, got)
	}
	if a, b := base.ScoreWord("abb"), NewEliminationsScorer(bank).ScoreWord("abb"); a != b {
		t.Errorf("base ScoreWord changed after clone update: %d != %d", a, b)
	}
}

func TestComboEliminationsLooksAhead(t *testing.T) {
	bank := mustBank(t, "abc", "def", "ghi")
	scorer := NewComboEliminationsScorer(bank, AllUnguessedWords, 0)

	// For "abc": if it is the answer, 2 eliminated plus the solved bonus;
	// otherwise 1 eliminated and the best second guess eliminates 1 on
	// average. (2.1 + 2 + 2) / 3 = 2.033.
	if got := scorer.ScoreWord("abc"); got != 2033 {
		t.Errorf(`ScoreWord("abc") = %d, want 2033`, got)
	}
}

func TestComboEliminationsFallsBackBelowThreshold(t *testing.T) {
	bank := mustBank(t, "cod", "wod", "mod")
	combo := NewComboEliminationsScorer(bank, AllUnguessedWords, 10)
	exact := NewEliminationsScorer(bank)

	// Three candidates is under the threshold, so both agree.
	for _, word := range []string{"cod", "mwc", "zzz"} {
		if a, b := combo.ScoreWord(word), exact.ScoreWord(word); a != b {
			t.Errorf("ScoreWord(%q): combo %d, exact %d", word, a, b)
		}
	}
}
