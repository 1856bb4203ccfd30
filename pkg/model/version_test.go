package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompression(t *testing.T) {
	for _, ok := range []string{"", "zip", "tar.gz"} {
		c, err := ParseCompression(ok)
		require.NoError(t, err)
		assert.Equal(t, ok, string(c))
	}
	_, err := ParseCompression("rar")
	require.Error(t, err)
}

func TestVersionRefValidate(t *testing.T) {
	require.NoError(t, VersionRef{Vault: "demo-1", Version: "v1.0_rc"}.Validate())

	assert.Error(t, VersionRef{Vault: "", Version: "v1"}.Validate())
	assert.Error(t, VersionRef{Vault: "demo", Version: ""}.Validate())
	assert.Error(t, VersionRef{Vault: ".staging", Version: "v1"}.Validate())
	assert.Error(t, VersionRef{Vault: "demo", Version: "v/1"}.Validate())
	assert.Error(t, VersionRef{Vault: "de mo", Version: "v1"}.Validate())
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "demo/v1", VersionPath("demo", "v1"))
	assert.Equal(t, "demo/v1/meta.yaml", VersionDescriptorPath("demo", "v1"))
	assert.Equal(t, "demo/v1/demo.zip", ArchivePath("demo", "v1", CompressionZip))
	assert.Equal(t, "demo/v1/demo.tar.gz", ArchivePath("demo", "v1", CompressionTarGz))
	assert.Equal(t, ".staging/demo/v1", StagingPath("demo", "v1"))
}

func TestIsDescriptorPath(t *testing.T) {
	ref, ok := IsDescriptorPath("demo/v1/meta.yaml")
	require.True(t, ok)
	assert.Equal(t, VersionRef{Vault: "demo", Version: "v1"}, ref)

	_, ok = IsDescriptorPath("demo/v1/data.txt")
	assert.False(t, ok)
	_, ok = IsDescriptorPath(".staging/demo/v1/meta.yaml")
	assert.False(t, ok)
	_, ok = IsDescriptorPath("meta.yaml")
	assert.False(t, ok)
}

func TestIsControlEntry(t *testing.T) {
	assert.True(t, IsControlEntry(".staging"))
	assert.True(t, IsControlEntry(".git"))
	assert.True(t, IsControlEntry("access.log"))
	assert.False(t, IsControlEntry("demo"))
}
