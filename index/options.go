package index

import (
	"context"

	"github.com/w-h-a/stockist/embedder"
)

type Option func(*Options)

type Options struct {
	Location  string
	ApiKey    string
	Namespace string
	Embedder  embedder.Embedder
	Context   context.Context
}

func WithLocation(loc string) Option {
	return func(o *Options) {
		o.Location = loc
	}
}

func WithApiKey(apiKey string) Option {
	return func(o *Options) {
		o.ApiKey = apiKey
	}
}

func WithNamespace(ns string) Option {
	return func(o *Options) {
		o.Namespace = ns
	}
}

func WithEmbedder(e embedder.Embedder) Option {
	return func(o *Options) {
		o.Embedder = e
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Namespace: "__default__",
		Context:   context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

type QueryOption func(*QueryOptions)

type QueryOptions struct {
	TopK   int
	Filter Filter
}

func WithTopK(k int) QueryOption {
	return func(o *QueryOptions) {
		o.TopK = k
	}
}

func WithFilter(f Filter) QueryOption {
	return func(o *QueryOptions) {
		o.Filter = f
	}
}

func NewQueryOptions(opts ...QueryOption) QueryOptions {
	options := QueryOptions{
		TopK: 10,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
