package generator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidUnit is returned for a unit other than words, sentences or paragraphs.
var ErrInvalidUnit = errors.New("invalid unit")

// Unit is the granularity of generated output.
type Unit string

const (
	UnitWords      Unit = "words"
	UnitSentences  Unit = "sentences"
	UnitParagraphs Unit = "paragraphs"
)

// Units lists the supported units in display order.
var Units = []Unit{UnitWords, UnitSentences, UnitParagraphs}

const (
	MinCount = 1
	MaxCount = 500
)

// Request describes one generation call.
type Request struct {
	Unit  Unit
	Count int
	// UseClassicOpening only applies to paragraphs.
	UseClassicOpening bool
}

// Result holds generated items in order: words, sentences or paragraphs.
type Result struct {
	Unit  Unit
	Items []string
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	switch u {
	case UnitWords, UnitSentences, UnitParagraphs:
		return true
	}
	return false
}

// ParseUnit matches s against the known units, ignoring case and surrounding space.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if !u.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
	return u, nil
}

// ClampCount forces n into [MinCount, MaxCount]. Non-positive values become MinCount.
func ClampCount(n int) int {
	if n < MinCount {
		return MinCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

// ParseCount reads a count the way a form field is read: leading spaces,
// an optional sign and the leading run of digits. Trailing junk is ignored
// ("12abc" is 12). Input without digits counts as 1. The result is clamped.
func ParseCount(s string) int {
	s = strings.TrimLeft(s, " \t\r\n")

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	n := 0
	digits := 0
	for ; digits < len(s); digits++ {
		c := s[digits]
		if c < '0' || c > '9' {
			break
		}
		// Anything past MaxCount clamps anyway; stop growing to avoid overflow.
		if n <= MaxCount {
			n = n*10 + int(c-'0')
		}
	}

	if digits == 0 || negative {
		return MinCount
	}
	return ClampCount(n)
}
