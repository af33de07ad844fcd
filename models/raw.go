package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// VariationEnvelope is the JSON object both providers are asked to return.
type VariationEnvelope struct {
	Variations []RawVariation `json:"variations"`
}

// RawVariation is a provider record before normalization. Providers are not
// trusted to honor the requested shape, so every field is optional and
// decoding never fails on a well-formed JSON value.
type RawVariation struct {
	VariationIndex *int
	Title          *string
	Description    *string
	Keywords       *string
	ImagePrompt    *string
}

// UnmarshalJSON accepts any JSON value. Non-objects decode to an empty record.
func (r *RawVariation) UnmarshalJSON(data []byte) error {
	*r = RawVariation{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	r.VariationIndex = decodeIndex(fields["variationIndex"])
	r.Title = decodeText(fields["title"])
	r.Description = decodeText(fields["description"])
	r.Keywords = decodeText(fields["keywords"])
	r.ImagePrompt = decodeText(fields["imagePrompt"])
	return nil
}

// decodeIndex accepts numbers and numeric strings. Fractions are truncated.
func decodeIndex(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}

	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	i := int(f)
	return &i
}

// decodeText keeps strings as-is and any other non-null value as its JSON text.
func decodeText(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return &s
	}
	s := string(bytes.TrimSpace(raw))
	return &s
}
