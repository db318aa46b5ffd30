// apps/go-solver/internal/game/benchmark.go
//
// Benchmark driver: plays every word in the bank against a guesser and
// aggregates the guess-count distribution. Games run in parallel from
// clones of one base guesser, so an expensive scorer precomputation is
// paid once.

package game

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/exp/constraints"

	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// BenchmarkResult aggregates the outcome of one benchmark run.
type BenchmarkResult struct {
	// Histogram maps number of guesses to number of games won in that
	// many guesses.
	Histogram map[int]int
	NumGames    int
	NumFailures int
	MeanGuesses float64
	StdDev      float64
}

// Benchmark plays one game per word in the bank using clones of the
// base guesser, fanning the games out across GOMAXPROCS workers.
// Progress is reported on stderr when showProgress is set.
func Benchmark(bank *words.WordBank, base *MaxScoreGuesser, maxRounds int, showProgress bool) BenchmarkResult {
	objectives := bank.Words()

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(int64(len(objectives)), "playing")
	}

	numWorkers := runtime.GOMAXPROCS(0)
	type outcome struct {
		numGuesses int
		failed     bool
	}
	outcomes := make([]outcome, len(objectives))
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(objectives); i += numWorkers {
				result := Play(bank, objectives[i], maxRounds, base.Clone())
				outcomes[i] = outcome{
					numGuesses: len(result.Turns),
					failed:     result.Outcome != Success,
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}(w)
	}
	wg.Wait()
	if bar != nil {
		_ = bar.Finish()
	}

	res := BenchmarkResult{Histogram: make(map[int]int), NumGames: len(objectives)}
	guessCounts := make([]int, 0, len(objectives))
	for _, o := range outcomes {
		if o.failed {
			res.NumFailures++
			continue
		}
		res.Histogram[o.numGuesses]++
		guessCounts = append(guessCounts, o.numGuesses)
	}
	if len(guessCounts) > 0 {
		res.MeanGuesses = float64(sum(guessCounts)) / float64(len(guessCounts))
		var varSum float64
		for _, n := range guessCounts {
			d := float64(n) - res.MeanGuesses
			varSum += d * d
		}
		res.StdDev = math.Sqrt(varSum / float64(len(guessCounts)))
	}
	return res
}

// FormatTable renders the histogram as a markdown table plus the
// summary line.
func (r BenchmarkResult) FormatTable() string {
	counts := make([]int, 0, len(r.Histogram))
	for n := range r.Histogram {
		counts = append(counts, n)
	}
	sort.Ints(counts)

	var b strings.Builder
	b.WriteString("|Num guesses|Num games|\n")
	b.WriteString("|-----------|---------|\n")
	for _, n := range counts {
		fmt.Fprintf(&b, "|%d|%d|\n", n, r.Histogram[n])
	}
	if r.NumFailures > 0 {
		fmt.Fprintf(&b, "|failed|%d|\n", r.NumFailures)
	}
	fmt.Fprintf(&b, "\nAverage guesses: %.2f +/- %.2f (%d games)\n",
		r.MeanGuesses, r.StdDev, r.NumGames)
	return b.String()
}

func sum[T constraints.Integer | constraints.Float](values []T) T {
	var total T
	for _, v := range values {
		total += v
	}
	return total
}
