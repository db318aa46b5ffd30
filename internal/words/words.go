// apps/go-solver/internal/words/words.go
//
// Word bank management for the solver engine.
// Responsibilities:
//   - Load a dictionary from a reader or a slice (one word per line,
//     lowercased, blank lines skipped).
//   - Enforce a single word length across the bank; a mismatched entry
//     is a WordLengthError, never silently truncated or padded.
//   - Fast membership lookup.
//   - WordCounter: letter and letter-at-position frequencies over an
//     arbitrary subset of words, used by the scoring strategies.
//
// Constraints:
//   • Words must be lowercase ASCII letters a–z.
//   • Duplicates are kept; they are simply redundant candidates.
//   • An empty input yields an empty bank, not an error.

package words

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
)

// LocatedLetter is a letter together with its zero-based position in a
// word.
type LocatedLetter struct {
	Letter   byte
	Location int
}

// WordBank holds every possible word for a game session. All words share
// one length. The bank is immutable once built and safe to share between
// concurrently running games.
type WordBank struct {
	words      []string
	wordLength int
	members    map[string]struct{}
}

// NewBank builds a WordBank from a slice. Entries are trimmed and
// lowercased; empty entries are skipped.
func NewBank(list []string) (*WordBank, error) {
	b := &WordBank{members: make(map[string]struct{}, len(list))}
	for _, w := range list {
		if err := b.add(w); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// ReadBank builds a WordBank from a line-oriented reader, one word per
// line. I/O errors are propagated unchanged.
func ReadBank(r io.Reader) (*WordBank, error) {
	b := &WordBank{members: make(map[string]struct{})}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := b.add(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return b, nil
}

func (b *WordBank) add(w string) error {
	w = strings.TrimSpace(strings.ToLower(w))
	if w == "" {
		return nil
	}
	if !isAlpha(w) {
		return fmt.Errorf("invalid word %q: must be lowercase a-z", w)
	}
	if b.wordLength == 0 {
		b.wordLength = len(w)
	} else if len(w) != b.wordLength {
		return &results.WordLengthError{Expected: b.wordLength, Actual: len(w)}
	}
	b.words = append(b.words, w)
	b.members[w] = struct{}{}
	return nil
}

// Words returns the full word list in load order. Callers must not
// mutate the returned slice.
func (b *WordBank) Words() []string { return b.words }

// Len returns the number of words in the bank.
func (b *WordBank) Len() int { return len(b.words) }

// WordLength returns the shared length of every word, or 0 for an empty
// bank.
func (b *WordBank) WordLength() int { return b.wordLength }

// Contains reports whether w is in the bank.
func (b *WordBank) Contains(w string) bool {
	_, ok := b.members[strings.ToLower(w)]
	return ok
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

// WordCounter counts, for a fixed word subset, how many words contain
// each letter and how many have each letter at each position. Rebuilt
// from the live candidate list each round; cheap relative to scoring.
type WordCounter struct {
	numWords  int
	byLetter  [26]int
	byLocated map[LocatedLetter]int
}

// NewCounter builds a WordCounter over the given words.
func NewCounter(wordList []string) *WordCounter {
	c := &WordCounter{byLocated: make(map[LocatedLetter]int)}
	for _, w := range wordList {
		c.numWords++
		for i := 0; i < len(w); i++ {
			c.byLocated[LocatedLetter{w[i], i}]++
			if !seenBefore(w, i) {
				c.byLetter[w[i]-'a']++
			}
		}
	}
	return c
}

// NumWords returns the number of words counted.
func (c *WordCounter) NumWords() int { return c.numWords }

// NumWordsWithLetter returns how many words contain letter at least once.
func (c *WordCounter) NumWordsWithLetter(letter byte) int {
	if letter < 'a' || letter > 'z' {
		return 0
	}
	return c.byLetter[letter-'a']
}

// NumWordsWithLetterAt returns how many words have ll.Letter at
// ll.Location.
func (c *WordCounter) NumWordsWithLetterAt(ll LocatedLetter) int {
	return c.byLocated[ll]
}

// seenBefore reports whether w[i] also occurs at an earlier position.
func seenBefore(w string, i int) bool {
	for j := 0; j < i; j++ {
		if w[j] == w[i] {
			return true
		}
	}
	return false
}
