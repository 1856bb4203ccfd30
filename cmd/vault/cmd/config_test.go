package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("loglevel", "debug")

	c, err := newConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, defaultStoreDir, filepath.Base(c.Store))
}

func TestNewConfigExplicitStore(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("store", "/data/snapshots")
	viper.Set("loglevel", "none")

	c, err := newConfig()
	require.NoError(t, err)
	assert.Equal(t, "/data/snapshots", c.Store)
	assert.Equal(t, "none", c.LogLevel)
}
