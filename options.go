package stockist

import (
	"context"
	"time"
)

type Option func(*Options)

type Options struct {
	TopK            int
	MaxSessions     int
	SessionTTL      time.Duration
	MetadataFilters bool
	InStockOnly     bool
	Context         context.Context
}

func WithTopK(k int) Option {
	return func(o *Options) {
		o.TopK = k
	}
}

func WithMaxSessions(n int) Option {
	return func(o *Options) {
		o.MaxSessions = n
	}
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(o *Options) {
		o.SessionTTL = ttl
	}
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
		TopK:        10,
		MaxSessions: 1024,
		SessionTTL:  time.Hour,
		Context:     context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
