package models

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/quantalogic/lorem-ipsum-generator/pkg/utils"
)

// GenerateRequest represents the body of a generation request
type GenerateRequest struct {
	Unit         string     `json:"unit"`
	Count        CountParam `json:"count"`
	ClassicFirst bool       `json:"classic_first,omitempty"`
	Seed         *int64     `json:"seed,omitempty"`
	Format       string     `json:"format,omitempty"`
}

// CountParam is the raw count as sent by the client. Forms often send it as
// a string, so both JSON numbers and strings are accepted and kept as text;
// the generator decides how to read it.
type CountParam string

// UnmarshalJSON accepts a number, a string or null.
func (c *CountParam) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CountParam(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = CountParam(numberText(n))
	return nil
}

// numberText spells n in plain decimal so exponent forms like 1e3 read as 1000.
func numberText(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return n.String()
}

// MarshalJSON writes numeric counts as numbers and everything else as a string.
func (c CountParam) MarshalJSON() ([]byte, error) {
	if _, err := strconv.Atoi(string(c)); err == nil {
		return []byte(c), nil
	}
	return json.Marshal(string(c))
}

// Generation represents the response to a generation request
type Generation struct {
	ID      string          `json:"id"`
	Object  string          `json:"object"`
	Created int64           `json:"created"`
	Unit    string          `json:"unit"`
	Count   int             `json:"count"`
	Items   []string        `json:"items"`
	Text    string          `json:"text"`
	Usage   GenerationUsage `json:"usage"`
}

// NewGeneration builds a generation response; text is the rendered plain
// text of items and drives the usage numbers.
func NewGeneration(id string, created int64, unit string, items []string, text string) Generation {
	return Generation{
		ID:      id,
		Object:  "lorem.generation",
		Created: created,
		Unit:    unit,
		Count:   len(items),
		Items:   items,
		Text:    text,
		Usage: GenerationUsage{
			Words:      utils.CountWords(text),
			Characters: len(text),
		},
	}
}

// GenerationUsage summarizes the size of the generated text
type GenerationUsage struct {
	Words      int `json:"words"`
	Characters int `json:"characters"`
}

// UnitInfo describes a supported unit
type UnitInfo struct {
	ID       string `json:"id"`
	Object   string `json:"object"`
	MaxCount int    `json:"max_count"`
}

// UnitList is returned by the units endpoint
type UnitList struct {
	Object string     `json:"object"`
	Data   []UnitInfo `json:"data"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes an API error
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
