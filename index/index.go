package index

import "context"

// Condition constrains one metadata field: a string equality match, a
// boolean match, or a numeric range with independently optional bounds.
type Condition struct {
	Equals string
	Flag   *bool
	Min    *float64
	Max    *float64
}

// Filter is the canonical constraint set applied alongside semantic
// search. Providers translate it into their own syntax. An empty
// filter means unconstrained search.
type Filter map[string]Condition

// Hit is one raw ranked result from the underlying index. Fields is a
// heterogeneous metadata bag; normalization belongs to the caller.
type Hit struct {
	Id     string
	Score  float64
	Fields map[string]any
}

// Index is the retrieval collaborator: text in, ranked hits out.
type Index interface {
	Query(ctx context.Context, text string, opts ...QueryOption) ([]Hit, error)
}
