package search

import "context"

type Option func(*Options)

type Options struct {
	// MetadataFilters sends the structured filter alongside the
	// semantic query. Off by default: retrieval stays purely
	// similarity-driven unless explicitly enabled.
	MetadataFilters bool
	// InStockOnly adds an in_stock constraint when filtering is on.
	InStockOnly bool
	Context     context.Context
}

func WithMetadataFilters(enabled bool) Option {
	return func(o *Options) {
		o.MetadataFilters = enabled
	}
}

func WithInStockOnly(enabled bool) Option {
	return func(o *Options) {
		o.InStockOnly = enabled
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
