package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// defaultStoreDir is the store root used when no configuration overrides it.
const defaultStoreDir = ".vault_storage"

// Config holds the tool configuration resolved from flags, environment and
// the optional config file.
type Config struct {
	// Store is the snapshot store root directory
	Store string `json:"store" yaml:"store"`

	// LogLevel sets logging verbosity: debug, info, warn, error or none
	LogLevel string `json:"loglevel" yaml:"loglevel"`
}

func newConfig() (*Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.LogLevel == "" {
		c.LogLevel = viper.GetString("loglevel")
	}
	if c.Store == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory for default store: %w", err)
		}
		c.Store = filepath.Join(home, defaultStoreDir)
	}
	return &c, nil
}
