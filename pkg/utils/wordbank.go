package utils

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyVocabulary      = errors.New("vocabulary has no words")
	ErrDegenerateVocabulary = errors.New("vocabulary needs at least two distinct words")
	ErrBlankWord            = errors.New("vocabulary contains a blank word")
)

// ClassicParagraph is the traditional opening paragraph, used verbatim.
const ClassicParagraph = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum."

// loremWords keeps its repeated entries; they weight the draw toward
// "ut", "in", "dolor" and "dolore".
var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
	"elit", "sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore",
	"et", "dolore", "magna", "aliqua", "ut", "enim", "ad", "minim", "veniam",
	"quis", "nostrud", "exercitation", "ullamco", "laboris", "nisi", "ut",
	"aliquip", "ex", "ea", "commodo", "consequat", "duis", "aute", "irure",
	"dolor", "in", "reprehenderit", "in", "voluptate", "velit", "esse",
	"cillum", "dolore", "eu", "fugiat", "nulla", "pariatur", "excepteur",
	"sint", "occaecat", "cupidatat", "non", "proident", "sunt", "in", "culpa",
	"qui", "officia", "deserunt", "mollit", "anim", "id", "est", "laborum",
}

// WordBank is the sampling universe for generated text. It is treated as a
// flat list of slots, so a word listed twice is drawn twice as often.
type WordBank struct {
	words []string
}

// NewWordBank returns the default lorem ipsum vocabulary.
func NewWordBank() *WordBank {
	return &WordBank{words: append([]string(nil), loremWords...)}
}

// NewWordBankFromWords validates and copies a custom vocabulary. Words are
// trimmed and lower-cased.
func NewWordBankFromWords(words []string) (*WordBank, error) {
	if len(words) == 0 {
		return nil, ErrEmptyVocabulary
	}

	out := make([]string, 0, len(words))
	distinct := make(map[string]struct{}, len(words))
	for i, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			return nil, fmt.Errorf("%w: index %d", ErrBlankWord, i)
		}
		out = append(out, w)
		distinct[w] = struct{}{}
	}

	if len(distinct) < 2 {
		return nil, ErrDegenerateVocabulary
	}

	return &WordBank{words: out}, nil
}

// Len returns the number of slots, duplicates included.
func (wb *WordBank) Len() int {
	return len(wb.words)
}

// At returns the word in slot i.
func (wb *WordBank) At(i int) string {
	return wb.words[i]
}

// Words returns a copy of the vocabulary.
func (wb *WordBank) Words() []string {
	return append([]string(nil), wb.words...)
}

// Contains reports whether w is one of the vocabulary words.
func (wb *WordBank) Contains(w string) bool {
	for _, v := range wb.words {
		if v == w {
			return true
		}
	}
	return false
}

// Occurrences counts how many slots hold w.
func (wb *WordBank) Occurrences(w string) int {
	n := 0
	for _, v := range wb.words {
		if v == w {
			n++
		}
	}
	return n
}
