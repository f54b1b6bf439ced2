package config

import (
	"sync/atomic"
)

// Provider gives concurrent readers access to the current Config. Update
// swaps the whole pointer, so a reader never observes a partially written
// config.
type Provider struct {
	current atomic.Pointer[Config]
}

func NewProvider(cfg *Config) *Provider {
	p := &Provider{}
	p.current.Store(cfg)
	return p
}

// Get returns the current config. Callers must not mutate it.
func (p *Provider) Get() *Config {
	return p.current.Load()
}

// Update publishes a new config. The caller validates before publishing.
func (p *Provider) Update(cfg *Config) {
	p.current.Store(cfg)
}
