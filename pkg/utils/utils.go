package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// IDGenerator generates unique IDs
type IDGenerator struct{}

// NewIDGenerator creates a new ID generator
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// GenerateID generates a unique generation ID
func (g *IDGenerator) GenerateID() string {
	return "lorem-" + uuid.New().String()[:12]
}

// Capitalize upper-cases the first character of s and leaves the rest alone.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// CountWords returns the number of whitespace separated tokens in text
func CountWords(text string) int {
	return len(strings.Fields(text))
}
