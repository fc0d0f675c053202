package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultWordBank(t *testing.T) {
	wb := NewWordBank()

	require.Equal(t, 69, wb.Len())
	require.Equal(t, "lorem", wb.At(0))
	require.Equal(t, "laborum", wb.At(wb.Len()-1))

	// Repeated entries are kept as separate slots
	require.Equal(t, 3, wb.Occurrences("ut"))
	require.Equal(t, 3, wb.Occurrences("in"))
	require.Equal(t, 2, wb.Occurrences("dolor"))
	require.Equal(t, 2, wb.Occurrences("dolore"))
	require.Equal(t, 1, wb.Occurrences("lorem"))
	require.Zero(t, wb.Occurrences("missing"))
}

func TestWordBankWordsIsACopy(t *testing.T) {
	wb := NewWordBank()
	words := wb.Words()
	words[0] = "changed"
	require.Equal(t, "lorem", wb.At(0))
	require.False(t, wb.Contains("changed"))
}

func TestNewWordBankFromWords(t *testing.T) {
	wb, err := NewWordBankFromWords([]string{" Alpha", "beta ", "alpha"})
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta", "alpha"}, wb.Words())
	require.Equal(t, 2, wb.Occurrences("alpha"))
}

func TestNewWordBankFromWordsRejectsBadInput(t *testing.T) {
	_, err := NewWordBankFromWords(nil)
	require.ErrorIs(t, err, ErrEmptyVocabulary)

	_, err = NewWordBankFromWords([]string{})
	require.ErrorIs(t, err, ErrEmptyVocabulary)

	_, err = NewWordBankFromWords([]string{"solo"})
	require.ErrorIs(t, err, ErrDegenerateVocabulary)

	_, err = NewWordBankFromWords([]string{"same", "Same", " same "})
	require.ErrorIs(t, err, ErrDegenerateVocabulary)

	_, err = NewWordBankFromWords([]string{"one", "  ", "two"})
	require.ErrorIs(t, err, ErrBlankWord)
	require.Contains(t, err.Error(), "index 1")
}

func TestClassicParagraph(t *testing.T) {
	require.True(t, len(ClassicParagraph) > 0)
	require.Equal(t, "Lorem ipsum dolor sit amet,", ClassicParagraph[:27])
	require.Equal(t, "id est laborum.", ClassicParagraph[len(ClassicParagraph)-15:])
}
