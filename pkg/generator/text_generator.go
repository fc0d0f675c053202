package generator

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/quantalogic/lorem-ipsum-generator/pkg/utils"
)

const (
	avgWordsPerSentence      = 12
	avgSentencesPerParagraph = 5

	commaProbability  = 0.45
	periodProbability = 0.8
)

// TextGenerator defines the interface for generating placeholder text
type TextGenerator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// RandomSource is the only source of randomness a generator draws from.
// *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// LoremGenerator builds lorem ipsum words, sentences and paragraphs from a
// WordBank. It is not safe for concurrent use; create one per caller.
type LoremGenerator struct {
	wordBank *utils.WordBank
	rand     RandomSource
}

// NewLoremGenerator creates a generator over the default vocabulary seeded from the clock
func NewLoremGenerator() *LoremGenerator {
	return NewLoremGeneratorWithSeed(time.Now().UnixNano())
}

// NewLoremGeneratorWithSeed creates a generator with a specific seed
func NewLoremGeneratorWithSeed(seed int64) *LoremGenerator {
	return &LoremGenerator{
		wordBank: utils.NewWordBank(),
		rand:     rand.New(rand.NewSource(seed)),
	}
}

// NewLoremGeneratorWithSource creates a generator over a custom vocabulary
// and random source. A nil wordBank selects the default vocabulary.
func NewLoremGeneratorWithSource(wordBank *utils.WordBank, source RandomSource) (*LoremGenerator, error) {
	if wordBank == nil {
		wordBank = utils.NewWordBank()
	}
	if wordBank.Len() == 0 {
		return nil, utils.ErrEmptyVocabulary
	}
	if source == nil {
		source = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &LoremGenerator{wordBank: wordBank, rand: source}, nil
}

// Generate produces the requested number of units. The count is clamped to
// [MinCount, MaxCount] before generating.
func (g *LoremGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	if !req.Unit.Valid() {
		return nil, ErrInvalidUnit
	}

	count := ClampCount(req.Count)
	items := make([]string, count)

	switch req.Unit {
	case UnitParagraphs:
		for i := range items {
			if i == 0 && req.UseClassicOpening {
				items[i] = utils.ClassicParagraph
				continue
			}
			items[i] = g.GenerateParagraph()
		}
	case UnitSentences:
		for i := range items {
			items[i] = g.GenerateSentence()
		}
	case UnitWords:
		for i := range items {
			items[i] = g.randomWord()
		}
		items[0] = utils.Capitalize(items[0])
	}

	return &Result{Unit: req.Unit, Items: items}, nil
}

// GenerateSentence returns one capitalized sentence of 10 to 14 words with
// no word repeated back to back, ending in ".", "?" or "!".
func (g *LoremGenerator) GenerateSentence() string {
	length := avgWordsPerSentence + g.rand.Intn(5) - 2

	words := make([]string, length)
	last := ""
	for i := range words {
		words[i] = g.pickWord(last)
		last = words[i]
	}

	// Occasional comma somewhere in the middle
	if length > 8 && g.rand.Float64() < commaProbability {
		pos := 3 + g.rand.Intn(max(1, length-6))
		words[pos] += ","
	}

	return utils.Capitalize(strings.Join(words, " ")) + g.terminator()
}

// GenerateParagraph returns 4 to 6 independent sentences joined by spaces.
func (g *LoremGenerator) GenerateParagraph() string {
	n := avgSentencesPerParagraph + g.rand.Intn(3) - 1

	sentences := make([]string, n)
	for i := range sentences {
		sentences[i] = g.GenerateSentence()
	}
	return strings.Join(sentences, " ")
}

func (g *LoremGenerator) randomWord() string {
	return g.wordBank.At(g.rand.Intn(g.wordBank.Len()))
}

// pickWord draws until the word differs from exclude; an empty exclude
// accepts the first draw.
func (g *LoremGenerator) pickWord(exclude string) string {
	for {
		w := g.randomWord()
		if exclude == "" || w != exclude {
			return w
		}
	}
}

// Mostly periods
func (g *LoremGenerator) terminator() string {
	if g.rand.Float64() < periodProbability {
		return "."
	}
	if g.rand.Float64() < 0.5 {
		return "?"
	}
	return "!"
}
