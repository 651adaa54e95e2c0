package intent

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeProductSearch       Type = "product_search"
	TypeGeneralQuestion     Type = "general_question"
	TypeGreeting            Type = "greeting"
	TypeClarificationNeeded Type = "clarification_needed"
	TypeOffTopic            Type = "off_topic"
)

// Attributes are the constraints extracted from a message. Price
// bounds are numeric once parsed; free-text ranges never survive
// decoding.
type Attributes struct {
	Color     string   `json:"color,omitempty"`
	Fabric    string   `json:"fabric,omitempty"`
	Technique string   `json:"technique,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	PriceMin  *float64 `json:"price_min,omitempty"`
	PriceMax  *float64 `json:"price_max,omitempty"`
}

// UnmarshalJSON tolerates the shapes classifiers actually emit: price
// bounds as numbers or numeric strings, and the legacy price_range
// object with min/max keys. Anything non-numeric is dropped.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	var aux struct {
		Color      string          `json:"color"`
		Fabric     string          `json:"fabric"`
		Technique  string          `json:"technique"`
		Pattern    string          `json:"pattern"`
		PriceMin   json.RawMessage `json:"price_min"`
		PriceMax   json.RawMessage `json:"price_max"`
		PriceRange json.RawMessage `json:"price_range"`
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	a.Color = aux.Color
	a.Fabric = aux.Fabric
	a.Technique = aux.Technique
	a.Pattern = aux.Pattern
	a.PriceMin = parsePrice(aux.PriceMin)
	a.PriceMax = parsePrice(aux.PriceMax)

	if len(aux.PriceRange) > 0 {
		var pr struct {
			Min json.RawMessage `json:"min"`
			Max json.RawMessage `json:"max"`
		}
		if err := json.Unmarshal(aux.PriceRange, &pr); err == nil {
			if a.PriceMin == nil {
				a.PriceMin = parsePrice(pr.Min)
			}
			if a.PriceMax == nil {
				a.PriceMax = parsePrice(pr.Max)
			}
		}
	}

	return nil
}

func parsePrice(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return &n
		}
	}

	return nil
}

// Intent is the structured interpretation of one user message.
type Intent struct {
	IntentType            Type       `json:"intent_type"`
	Category              string     `json:"category,omitempty"`
	Subcategory           string     `json:"subcategory,omitempty"`
	Attributes            Attributes `json:"attributes"`
	SearchQuery           string     `json:"search_query"`
	Confidence            float64    `json:"confidence"`
	NeedsClarification    bool       `json:"needs_clarification"`
	ClarificationQuestion string     `json:"clarification_question,omitempty"`
}

// Parse decodes classifier output and validates it before anyone
// trusts it. Unknown intent types and malformed JSON are errors;
// callers substitute Default.
func Parse(raw string) (Intent, error) {
	var it Intent

	if err := json.Unmarshal([]byte(raw), &it); err != nil {
		return Intent{}, fmt.Errorf("malformed intent: %w", err)
	}

	switch it.IntentType {
	case TypeProductSearch, TypeGeneralQuestion, TypeGreeting, TypeClarificationNeeded, TypeOffTopic:
	default:
		return Intent{}, fmt.Errorf("unknown intent type: %q", it.IntentType)
	}

	if it.Confidence < 0 {
		it.Confidence = 0
	}
	if it.Confidence > 1 {
		it.Confidence = 1
	}

	return it, nil
}

// Default is the fail-soft intent: the conversation never hard-fails
// because classification did.
func Default(query string) Intent {
	return Intent{
		IntentType:         TypeGeneralQuestion,
		SearchQuery:        query,
		Confidence:         0.5,
		NeedsClarification: false,
	}
}
