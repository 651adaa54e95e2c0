package search

import (
	"context"
	"log/slog"
	"maps"
	"sort"
	"strings"

	"github.com/w-h-a/stockist/index"
)

// Adapter issues the hybrid query and normalizes whatever shape the
// index returns into canonical matches. Retrieval failure degrades to
// "no matches"; it never crashes a turn.
type Adapter struct {
	options Options
	idx     index.Index
}

func (a *Adapter) Search(ctx context.Context, query string, filter index.Filter, topK int) []Match {
	if len(strings.TrimSpace(query)) == 0 {
		slog.WarnContext(ctx, "query text is empty or contains only whitespace")
		return nil
	}

	queryOpts := []index.QueryOption{
		index.WithTopK(topK),
	}

	if a.options.MetadataFilters {
		effective := filter
		if a.options.InStockOnly {
			effective = maps.Clone(filter)
			if effective == nil {
				effective = index.Filter{}
			}
			inStock := true
			effective["in_stock"] = index.Condition{Flag: &inStock}
		}
		if len(effective) > 0 {
			queryOpts = append(queryOpts, index.WithFilter(effective))
		}
	}

	hits, err := a.idx.Query(ctx, query, queryOpts...)
	if err != nil {
		slog.ErrorContext(ctx, "index query failed", "error", err)
		return nil
	}

	matches := make([]Match, 0, len(hits))
	for _, hit := range hits {
		matches = append(matches, newMatch(hit))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}

func NewAdapter(idx index.Index, opts ...Option) *Adapter {
	if idx == nil {
		panic("index is required")
	}

	return &Adapter{
		options: NewOptions(opts...),
		idx:     idx,
	}
}
