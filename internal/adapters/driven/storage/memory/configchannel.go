package memory

import (
	"context"
	"sync"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driven"
)

// Ensure ConfigChannel implements the interface.
var _ driven.ConfigChannel = (*ConfigChannel)(nil)

// ConfigChannel is an in-memory implementation of driven.ConfigChannel.
// Useful for tests and for running the wizard against a scratch config.
type ConfigChannel struct {
	mu  sync.RWMutex
	cfg *domain.Config

	// SetCalls counts SetConfig invocations, for tests asserting that a
	// failed operation wrote nothing.
	SetCalls int
}

// NewConfigChannel creates an empty in-memory config channel.
func NewConfigChannel() *ConfigChannel {
	return &ConfigChannel{}
}

// NewConfigChannelWith creates a channel seeded with a configuration.
func NewConfigChannelWith(cfg *domain.Config) *ConfigChannel {
	return &ConfigChannel{cfg: cfg.Clone()}
}

// GetConfig returns a copy of the stored configuration.
func (c *ConfigChannel) GetConfig(_ context.Context) (*domain.Config, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cfg == nil {
		return nil, domain.ErrNotFound
	}
	return c.cfg.Clone(), nil
}

// SetConfig replaces the stored configuration.
func (c *ConfigChannel) SetConfig(_ context.Context, cfg *domain.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg.Clone()
	c.SetCalls++
	return nil
}

// Current returns the stored configuration without copying, for test
// assertions only.
func (c *ConfigChannel) Current() *domain.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}
