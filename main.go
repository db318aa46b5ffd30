// apps/go-solver/main.go
//
// CLI entry point for the solver.
// Modes:
//   - default: interactive; prints a guess, reads a '.'/'y'/'g' feedback
//     line from stdin, repeats until solved.
//   - -objective WORD: self-play one game against a known word.
//   - -benchmark: play every word in the bank and print the histogram.
//   - -serve: run the HTTP solver API.
//
// The eliminations scorer's dictionary-wide precompute can be cached in
// SQLite with -db so later runs skip it.

package main

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/scorers"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	var (
		wordsPath  = flag.String("words", "", "path to a word list file (default: embedded list)")
		scorerName = flag.String("scorer", "eliminations", "scoring strategy: "+strings.Join(scorers.Names(), ", "))
		guessFrom  = flag.String("guess-from", "all", "guess pool: all | possible")
		objective  = flag.String("objective", "", "self-play against this word")
		benchmark  = flag.Bool("benchmark", false, "play every word in the bank and report the distribution")
		serve      = flag.Bool("serve", false, "run the HTTP solver API")
		dbPath     = flag.String("db", "", "SQLite file for caching the eliminations precompute")
		maxRounds  = flag.Int("max-rounds", 6, "guess limit per game")
	)
	flag.Parse()

	bank, err := loadBank(*wordsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word bank")
	}
	log.Info().Int("words", bank.Len()).Int("length", bank.WordLength()).Msg("word bank loaded")

	from := scorers.AllUnguessedWords
	if *guessFrom == "possible" {
		from = scorers.PossibleWords
	}

	scorer, err := buildScorer(*scorerName, bank, *dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("scorer", *scorerName).Msg("failed to build scorer")
	}
	guesser := game.NewMaxScoreGuesser(from, bank, scorer)

	switch {
	case *serve:
		srv := httpserver.New(guesser)
		port := getEnv("PORT", "5176")
		log.Info().Str("port", port).Msg("starting go-solver")
		if err := srv.Start(":" + port); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	case *benchmark:
		result := game.Benchmark(bank, guesser, *maxRounds, true)
		fmt.Print(result.FormatTable())
	case *objective != "":
		runSelfPlay(bank, *objective, *maxRounds, guesser)
	default:
		runInteractive(*maxRounds, guesser)
	}
}

// loadBank reads the word bank from the given file, or the embedded
// list when path is empty.
func loadBank(path string) (*words.WordBank, error) {
	if path == "" {
		list, err := assets.DefaultWords()
		if err != nil {
			return nil, err
		}
		return words.NewBank(list)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return words.ReadBank(f)
}

// buildScorer constructs the named scorer. For the eliminations scorer
// with a -db path, the precomputed table is loaded from SQLite when
// present and saved after being computed otherwise.
func buildScorer(name string, bank *words.WordBank, dbPath string) (scorers.Scorer, error) {
	if name != "eliminations" || dbPath == "" {
		return scorers.New(name, bank)
	}

	db, err := store.OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx := context.Background()
	tableName := "eliminations-" + bankFingerprint(bank)
	if table, err := db.LoadScores(ctx, tableName); err == nil {
		log.Info().Str("table", tableName).Msg("loaded precomputed scores")
		return scorers.NewEliminationsScorerFromTable(bank, table), nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	log.Info().Str("table", tableName).Msg("precomputing scores")
	scorer := scorers.NewEliminationsScorer(bank)
	if err := db.SaveScores(ctx, tableName, scorer.FirstGuessEliminations()); err != nil {
		log.Warn().Err(err).Msg("failed to cache precomputed scores")
	}
	return scorer, nil
}

// bankFingerprint hashes the bank's contents, so cached tables computed
// from different word lists never collide even when the lists happen to
// be the same size.
func bankFingerprint(bank *words.WordBank) string {
	h := sha256.New()
	for _, w := range bank.Words() {
		h.Write([]byte(w))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// runSelfPlay plays one game against a known objective and prints each
// turn.
func runSelfPlay(bank *words.WordBank, objective string, maxRounds int, guesser *game.MaxScoreGuesser) {
	result := game.Play(bank, strings.ToLower(objective), maxRounds, guesser)
	for i, turn := range result.Turns {
		fmt.Printf("%d. %s (%d possible)\n", i+1, turn.Guess, turn.NumPossibleWordsBefore)
	}
	switch result.Outcome {
	case game.Success:
		fmt.Printf("solved in %d guesses\n", len(result.Turns))
	case game.Failure:
		fmt.Printf("not solved in %d guesses\n", maxRounds)
	case game.UnknownWord:
		fmt.Printf("%q is not in the word bank\n", objective)
		os.Exit(1)
	}
}

// runInteractive drives the guesser against feedback typed on stdin.
// Bad feedback lines are re-prompted, not fatal.
func runInteractive(maxRounds int, guesser *game.MaxScoreGuesser) {
	in := bufio.NewScanner(os.Stdin)
	fmt.Println("Feedback per letter: . = not present, y = wrong spot, g = correct.")

	feedback := func(guess string) (*results.GuessResult, error) {
		for {
			fmt.Printf("guess: %s (%d possible)\nfeedback> ", guess, guesser.NumPossibleWords())
			if !in.Scan() {
				return nil, errors.New("stdin closed")
			}
			result, err := results.Parse(guess, strings.TrimSpace(in.Text()))
			if err != nil {
				fmt.Printf("bad feedback: %v, try again\n", err)
				continue
			}
			return result, nil
		}
	}

	result, err := game.PlayWithFeedback(maxRounds, guesser, feedback)
	if err != nil {
		if errors.Is(err, results.ErrInconsistentFeedback) {
			fmt.Println("that feedback contradicts an earlier round")
		}
		log.Fatal().Err(err).Msg("game aborted")
	}
	switch result.Outcome {
	case game.Success:
		fmt.Printf("solved in %d guesses\n", len(result.Turns))
	case game.Failure:
		fmt.Println("out of guesses")
	case game.UnknownWord:
		fmt.Println("no words left: the answer is not in the word bank, or some feedback was wrong")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
