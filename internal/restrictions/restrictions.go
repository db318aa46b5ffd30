// apps/go-solver/internal/restrictions/restrictions.go
//
// Accumulated letter restrictions for one game.
// Responsibilities:
//   - presentLetter: per-letter state machine over positions
//     (Unknown / Here / NotHere) with required- and minimum-count
//     inference.
//   - Restrictions: folds GuessResults round by round into a minimal,
//     consistent restriction set, rejects impossible feedback with
//     results.ErrInconsistentFeedback, and answers "does this word
//     satisfy everything known so far".
//
// Invariants:
//   • A position never reverts from Here/NotHere back to Unknown.
//   • Flipping Here↔NotHere is a hard error, never silently resolved.
//   • An Update either fully applies or leaves the receiver untouched.
//   • Restrictions only narrow: once a word is rejected it stays
//     rejected under any further consistent update.

package restrictions

import (
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// locatedState is what we know about one letter at one position.
type locatedState uint8

const (
	positionUnknown locatedState = iota
	mustBeHere
	mustNotBeHere
)

// presentLetter tracks a letter that is known to appear in the word.
type presentLetter struct {
	// requiredCount is the exact number of occurrences, or -1 if not yet
	// known.
	requiredCount int
	// minCount is the minimum number of occurrences (at least 1).
	minCount   int
	numHere    int
	numNotHere int
	state      []locatedState
}

func newPresentLetter(wordLength int) *presentLetter {
	return &presentLetter{
		requiredCount: -1,
		minCount:      1,
		state:         make([]locatedState, wordLength),
	}
}

func (p *presentLetter) clone() *presentLetter {
	c := *p
	c.state = make([]locatedState, len(p.state))
	copy(c.state, p.state)
	return &c
}

// setMustBeAt marks the letter as required at index. If the required
// count is known, this may resolve the remaining Unknown positions in
// either direction.
func (p *presentLetter) setMustBeAt(index int) error {
	switch p.state[index] {
	case mustBeHere:
		return nil
	case mustNotBeHere:
		return results.ErrInconsistentFeedback
	}
	p.state[index] = mustBeHere
	p.numHere++
	if p.numHere > p.minCount {
		p.minCount = p.numHere
	}
	if p.requiredCount >= 0 {
		if p.numHere == p.requiredCount {
			// Count met: the letter appears nowhere else.
			p.setUnknownsTo(mustNotBeHere)
		} else if len(p.state)-p.numNotHere == p.requiredCount {
			// The letter must fill every position still possible.
			p.setUnknownsTo(mustBeHere)
		}
	} else {
		p.setRequiredCountIfFull()
	}
	return nil
}

// setMustNotBeAt marks the letter as excluded from index. If that leaves
// only as many open positions as minCount, those positions must all hold
// the letter.
func (p *presentLetter) setMustNotBeAt(index int) error {
	switch p.state[index] {
	case mustNotBeHere:
		return nil
	case mustBeHere:
		return results.ErrInconsistentFeedback
	}
	p.state[index] = mustNotBeHere
	p.numNotHere++
	if maxPossibleHere := len(p.state) - p.numNotHere; maxPossibleHere == p.minCount {
		p.requiredCount = p.minCount
		if p.numHere < p.minCount {
			p.setUnknownsTo(mustBeHere)
		}
	}
	return nil
}

// setRequiredCount fixes the exact occurrence count. It is an error if a
// different count is already known, if fewer occurrences than minCount
// are requested, or if not enough open positions remain.
func (p *presentLetter) setRequiredCount(count int) error {
	if p.requiredCount >= 0 {
		if p.requiredCount != count {
			return results.ErrInconsistentFeedback
		}
		return nil
	}
	if p.minCount > count {
		return results.ErrInconsistentFeedback
	}
	p.minCount = count
	maxPossibleHere := len(p.state) - p.numNotHere
	if maxPossibleHere < count {
		return results.ErrInconsistentFeedback
	}
	p.requiredCount = count
	if p.numHere == count {
		p.setUnknownsTo(mustNotBeHere)
	} else if maxPossibleHere == count {
		p.setUnknownsTo(mustBeHere)
	}
	return nil
}

// possiblyBumpMinCount raises minCount to count if it is lower, resolving
// positions when the bound becomes tight.
func (p *presentLetter) possiblyBumpMinCount(count int) error {
	if p.minCount >= count {
		return nil
	}
	p.minCount = count
	maxPossibleHere := len(p.state) - p.numNotHere
	if maxPossibleHere < count {
		return results.ErrInconsistentFeedback
	}
	if maxPossibleHere == count && p.numHere < count {
		p.setUnknownsTo(mustBeHere)
		p.requiredCount = count
	}
	return nil
}

// merge folds the other letter's knowledge into this one.
func (p *presentLetter) merge(other *presentLetter) error {
	if other.requiredCount >= 0 {
		if err := p.setRequiredCount(other.requiredCount); err != nil {
			return err
		}
	} else if other.minCount > p.minCount {
		if err := p.possiblyBumpMinCount(other.minCount); err != nil {
			return err
		}
	}
	for index, state := range other.state {
		if p.state[index] == state {
			continue
		}
		switch state {
		case mustBeHere:
			if err := p.setMustBeAt(index); err != nil {
				return err
			}
		case mustNotBeHere:
			if err := p.setMustNotBeAt(index); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *presentLetter) setUnknownsTo(state locatedState) {
	counter := &p.numHere
	if state == mustNotBeHere {
		counter = &p.numNotHere
	}
	for i := range p.state {
		if p.state[i] == positionUnknown {
			p.state[i] = state
			*counter++
		}
	}
}

// setRequiredCountIfFull derives the exact count once every position is
// resolved.
func (p *presentLetter) setRequiredCountIfFull() {
	if p.numHere+p.numNotHere == len(p.state) {
		p.requiredCount = p.numHere
	}
}

// LetterState is the externally visible restriction on a letter at a
// position.
type LetterState uint8

const (
	// Unknown means nothing is known about the letter yet.
	Unknown LetterState = iota
	// Here means the letter goes at this position.
	Here
	// PresentMaybeHere means the letter is in the word and this position
	// is still open.
	PresentMaybeHere
	// PresentNotHere means the letter is in the word but not at this
	// position.
	PresentNotHere
	// NotPresent means the letter is not in the word at all.
	NotPresent
)

// Restrictions is the full restriction set for one game: the word length
// plus per-letter knowledge. Created empty at game start and narrowed by
// each Update.
type Restrictions struct {
	wordLength int
	present    map[byte]*presentLetter
	notPresent map[byte]struct{}
}

// New creates an empty restriction set for words of the given length.
func New(wordLength int) *Restrictions {
	return &Restrictions{
		wordLength: wordLength,
		present:    make(map[byte]*presentLetter),
		notPresent: make(map[byte]struct{}),
	}
}

// FromResult creates a restriction set seeded with a single result.
func FromResult(gr *results.GuessResult) (*Restrictions, error) {
	r := New(len(gr.Guess))
	if err := r.Update(gr); err != nil {
		return nil, err
	}
	return r, nil
}

// Clone returns an independent deep copy.
func (r *Restrictions) Clone() *Restrictions {
	c := New(r.wordLength)
	for letter, p := range r.present {
		c.present[letter] = p.clone()
	}
	for letter := range r.notPresent {
		c.notPresent[letter] = struct{}{}
	}
	return c
}

// Update folds one guess result into the restriction set. On error the
// receiver is left exactly as it was: letters are applied left to right
// (later letters of the same guess may depend on earlier ones, e.g. a
// repeated letter marked Correct then NotPresent), and the whole batch
// commits only if every step is consistent.
func (r *Restrictions) Update(gr *results.GuessResult) error {
	staged := r.Clone()
	if err := staged.apply(gr); err != nil {
		return err
	}
	*r = *staged
	return nil
}

func (r *Restrictions) apply(gr *results.GuessResult) error {
	for index := 0; index < len(gr.Guess); index++ {
		letter := gr.Guess[index]
		var err error
		switch gr.Results[index] {
		case results.Correct:
			err = r.setLetterHere(letter, index, gr)
		case results.PresentNotHere:
			err = r.setLetterPresentNotHere(letter, index, gr)
		case results.NotPresent:
			err = r.setLetterNotPresent(letter, index, gr)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Merge adds every restriction from other into this set. On error the
// receiver may be partially modified; merge into a Clone if atomicity
// matters.
func (r *Restrictions) Merge(other *Restrictions) error {
	if r.wordLength != other.wordLength {
		return results.ErrInconsistentFeedback
	}
	for letter := range other.notPresent {
		if _, ok := r.present[letter]; ok {
			return results.ErrInconsistentFeedback
		}
		r.notPresent[letter] = struct{}{}
	}
	for letter, p := range other.present {
		if _, ok := r.notPresent[letter]; ok {
			return results.ErrInconsistentFeedback
		}
		if mine, ok := r.present[letter]; ok {
			if err := mine.merge(p); err != nil {
				return err
			}
		} else {
			r.present[letter] = p.clone()
		}
	}
	return nil
}

// SatisfiedBy reports whether word is consistent with every accumulated
// restriction.
func (r *Restrictions) SatisfiedBy(word string) bool {
	if len(word) != r.wordLength {
		return false
	}
	for letter, p := range r.present {
		found := 0
		for i := 0; i < len(word); i++ {
			if word[i] == letter {
				found++
				if p.state[i] == mustNotBeHere {
					return false
				}
			} else if p.state[i] == mustBeHere {
				return false
			}
		}
		if p.requiredCount >= 0 {
			if found != p.requiredCount {
				return false
			}
		} else if found < p.minCount {
			return false
		}
	}
	for i := 0; i < len(word); i++ {
		if _, ok := r.notPresent[word[i]]; ok {
			return false
		}
	}
	return true
}

// State returns what is known about the letter at the given position.
func (r *Restrictions) State(ll words.LocatedLetter) LetterState {
	if p, ok := r.present[ll.Letter]; ok {
		switch p.state[ll.Location] {
		case mustBeHere:
			return Here
		case mustNotBeHere:
			return PresentNotHere
		default:
			return PresentMaybeHere
		}
	}
	if _, ok := r.notPresent[ll.Letter]; ok {
		return NotPresent
	}
	return Unknown
}

// StateKnown reports whether the letter's exact state at the position is
// already resolved.
func (r *Restrictions) StateKnown(ll words.LocatedLetter) bool {
	s := r.State(ll)
	return s == Here || s == PresentNotHere || s == NotPresent
}

func (r *Restrictions) setLetterHere(letter byte, location int, gr *results.GuessResult) error {
	if _, ok := r.notPresent[letter]; ok {
		return results.ErrInconsistentFeedback
	}
	p, ok := r.present[letter]
	if !ok {
		p = newPresentLetter(r.wordLength)
		r.present[letter] = p
	}
	if err := p.setMustBeAt(location); err != nil {
		return err
	}
	if err := r.applyGuessCounts(p, letter, gr); err != nil {
		return err
	}
	// No other present letter can occupy this position.
	for other, otherP := range r.present {
		if other == letter {
			continue
		}
		if err := otherP.setMustNotBeAt(location); err != nil {
			return err
		}
	}
	return nil
}

func (r *Restrictions) setLetterPresentNotHere(letter byte, location int, gr *results.GuessResult) error {
	if _, ok := r.notPresent[letter]; ok {
		return results.ErrInconsistentFeedback
	}
	p, ok := r.present[letter]
	if !ok {
		p = newPresentLetter(r.wordLength)
		r.present[letter] = p
	}
	if err := p.setMustNotBeAt(location); err != nil {
		return err
	}
	return r.applyGuessCounts(p, letter, gr)
}

func (r *Restrictions) setLetterNotPresent(letter byte, location int, gr *results.GuessResult) error {
	numPresent, _ := gr.CountInGuess(letter)
	if p, ok := r.present[letter]; ok {
		if p.state[location] == mustBeHere {
			return results.ErrInconsistentFeedback
		}
		// The letter is in the word, but a NotPresent mark means it occurs
		// exactly as many times as this same guess marked it present.
		return p.setRequiredCount(numPresent)
	}
	if numPresent == 0 {
		r.notPresent[letter] = struct{}{}
	}
	return nil
}

// applyGuessCounts folds the duplicate-letter information of one guess
// into a present letter: with a NotPresent mark in the same guess the
// present count is exact, otherwise it is a lower bound.
func (r *Restrictions) applyGuessCounts(p *presentLetter, letter byte, gr *results.GuessResult) error {
	numPresent, numNotPresent := gr.CountInGuess(letter)
	if numNotPresent > 0 {
		return p.setRequiredCount(numPresent)
	}
	return p.possiblyBumpMinCount(numPresent)
}
