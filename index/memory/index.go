package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/w-h-a/stockist/index"
)

// Record is one seeded catalogue entry.
type Record struct {
	Id     string
	Fields map[string]any
}

// memoryIndex is an in-process stand-in for a hosted vector index.
// Similarity is case-folded token overlap between the query and the
// record's text fields. Suitable for tests and local demos.
type memoryIndex struct {
	options index.Options
	records []Record
	mtx     sync.RWMutex
}

func (m *memoryIndex) Query(ctx context.Context, text string, opts ...index.QueryOption) ([]index.Hit, error) {
	options := index.NewQueryOptions(opts...)

	if options.TopK < 1 {
		return nil, nil
	}

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	m.mtx.RLock()
	defer m.mtx.RUnlock()

	candidates := make([]index.Hit, 0, len(m.records))

	for _, rec := range m.records {
		if !matches(rec.Fields, options.Filter) {
			continue
		}

		score := overlap(tokens, rec.Fields)
		if score == 0 {
			continue
		}

		candidates = append(candidates, index.Hit{
			Id:     rec.Id,
			Score:  score,
			Fields: rec.Fields,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > options.TopK {
		candidates = candidates[:options.TopK]
	}

	return candidates, nil
}

func (m *memoryIndex) Add(records ...Record) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.records = append(m.records, records...)
}

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

func overlap(tokens []string, fields map[string]any) float64 {
	var sb strings.Builder
	for _, v := range fields {
		if s, ok := v.(string); ok {
			sb.WriteString(strings.ToLower(s))
			sb.WriteString(" ")
		}
	}

	haystack := sb.String()

	matched := 0
	for _, token := range tokens {
		if strings.Contains(haystack, token) {
			matched++
		}
	}

	return float64(matched) / float64(len(tokens))
}

func matches(fields map[string]any, filter index.Filter) bool {
	for field, cond := range filter {
		value, exists := fields[field]

		if len(cond.Equals) > 0 {
			s, ok := value.(string)
			if !exists || !ok || !strings.EqualFold(s, cond.Equals) {
				return false
			}
		}

		if cond.Flag != nil {
			b, ok := asBool(value)
			if !exists || !ok || b != *cond.Flag {
				return false
			}
		}

		if cond.Min != nil || cond.Max != nil {
			n, ok := asNumber(value)
			if !exists || !ok {
				return false
			}
			if cond.Min != nil && n < *cond.Min {
				return false
			}
			if cond.Max != nil && n > *cond.Max {
				return false
			}
		}
	}

	return true
}

func asBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(v) {
		case "true", "yes":
			return true, true
		case "false", "no":
			return false, true
		}
	}
	return false, false
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func NewIndex(opts ...index.Option) *memoryIndex {
	options := index.NewOptions(opts...)

	m := &memoryIndex{
		options: options,
		records: []Record{},
	}

	return m
}
