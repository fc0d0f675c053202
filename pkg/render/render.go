// Package render turns generation results into the text a caller displays
// or copies.
package render

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/quantalogic/lorem-ipsum-generator/pkg/generator"
)

// ErrInvalidFormat is returned for an unknown output format.
var ErrInvalidFormat = errors.New("invalid format")

// Format selects how a result is serialized.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// ParseFormat maps s to a Format. An empty string selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatHTML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
}

// ContentType returns the HTTP content type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Text is the copy-friendly form: paragraphs separated by a blank line,
// sentences and words by single spaces.
func Text(res *generator.Result) string {
	if res.Unit == generator.UnitParagraphs {
		return strings.Join(res.Items, "\n\n")
	}
	return strings.Join(res.Items, " ")
}

// HTML wraps each paragraph in a <p> element. Sentences and words come out
// as one escaped run of text.
func HTML(res *generator.Result) string {
	if res.Unit != generator.UnitParagraphs {
		return html.EscapeString(strings.Join(res.Items, " "))
	}

	var b strings.Builder
	for i, p := range res.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(p))
		b.WriteString("</p>")
	}
	return b.String()
}

// Render serializes res as text or HTML. JSON is left to the caller, which
// owns the envelope.
func Render(res *generator.Result, f Format) (string, error) {
	switch f {
	case FormatText, "":
		return Text(res), nil
	case FormatHTML:
		return HTML(res), nil
	default:
		return "", fmt.Errorf("%w: %q cannot be rendered as a string", ErrInvalidFormat, f)
	}
}
