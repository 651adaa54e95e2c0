package generator

import "context"

// Generator produces natural-language text. Temperature and length are
// per-call configuration: grounded formatting runs low and bounded,
// chat runs warmer and short.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts ...GenerateOption) (string, error)
}
