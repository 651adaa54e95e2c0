package session

import (
	"context"
	"time"
)

type Option func(*Options)

type Options struct {
	MaxSessions int
	TTL         time.Duration
	Context     context.Context
}

func WithMaxSessions(n int) Option {
	return func(o *Options) {
		o.MaxSessions = n
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(o *Options) {
		o.TTL = ttl
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		MaxSessions: 1024,
		TTL:         time.Hour,
		Context:     context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
