package embedder

import "context"

// Embedder turns query text into the vector a self-hosted index ranks
// against. Hosted indexes with server-side embedding never need one.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
