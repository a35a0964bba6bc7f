package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driven"
)

// Ensure ConfigChannel implements the interface.
var _ driven.ConfigChannel = (*ConfigChannel)(nil)

// ConfigChannel is a file-based implementation of driven.ConfigChannel
// using TOML. The configuration is stored as one document and replaced
// atomically on every write.
type ConfigChannel struct {
	mu       sync.RWMutex
	filePath string
}

// NewConfigChannel creates a TOML-backed config channel.
// If configDir is empty, defaults to ~/.bitbucket-integration/config.toml.
func NewConfigChannel(configDir string) (*ConfigChannel, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".bitbucket-integration")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &ConfigChannel{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// GetConfig reads the configuration file. Returns domain.ErrNotFound when
// no file exists yet.
func (c *ConfigChannel) GetConfig(_ context.Context) (*domain.Config, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var cfg domain.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetConfig replaces the configuration file. The credential lives in this
// file, so permissions stay restricted. A temp-file rename keeps a reader
// from ever observing a half-written document.
func (c *ConfigChannel) SetConfig(_ context.Context, cfg *domain.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp := c.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, c.filePath)
}

// Path returns the configuration file path.
func (c *ConfigChannel) Path() string {
	return c.filePath
}
