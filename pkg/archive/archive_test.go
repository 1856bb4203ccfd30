package archive

import (
	"testing"

	"github.com/adnanxsalim/tool-vault/pkg/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTree(t *testing.T, fs afero.Fs) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, "src/a.txt", []byte("alpha"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "src/sub/b.txt", []byte("beta"), 0o600))
	require.NoError(t, fs.MkdirAll("src/empty", 0o755))
}

func TestFor(t *testing.T) {
	z, ok := For(model.CompressionZip)
	require.True(t, ok)
	assert.Equal(t, model.CompressionZip, z.Kind())

	tgz, ok := For(model.CompressionTarGz)
	require.True(t, ok)
	assert.Equal(t, model.CompressionTarGz, tgz.Kind())

	_, ok = For(model.CompressionNone)
	assert.False(t, ok)
}

func TestRoundtrip(t *testing.T) {
	for _, kind := range []model.Compression{model.CompressionZip, model.CompressionTarGz} {
		kind := kind
		t.Run(string(kind), func(t *testing.T) {
			fs := afero.NewMemMapFs()
			seedTree(t, fs)

			codec, ok := For(kind)
			require.True(t, ok)
			require.NoError(t, codec.Pack(fs, "src", "demo."+string(kind), "demo"))

			require.NoError(t, codec.Unpack(fs, "demo."+string(kind), "out"))

			a, err := afero.ReadFile(fs, "out/a.txt")
			require.NoError(t, err)
			assert.Equal(t, "alpha", string(a))

			b, err := afero.ReadFile(fs, "out/sub/b.txt")
			require.NoError(t, err)
			assert.Equal(t, "beta", string(b))

			empty, err := afero.IsDir(fs, "out/empty")
			require.NoError(t, err)
			assert.True(t, empty)
		})
	}
}

func TestManifest(t *testing.T) {
	for _, kind := range []model.Compression{model.CompressionZip, model.CompressionTarGz} {
		kind := kind
		t.Run(string(kind), func(t *testing.T) {
			fs := afero.NewMemMapFs()
			seedTree(t, fs)

			codec, _ := For(kind)
			require.NoError(t, codec.Pack(fs, "src", "arch", "demo"))

			entries, err := codec.Manifest(fs, "arch")
			require.NoError(t, err)
			assert.Equal(t, []string{"a.txt", "sub/b.txt"}, entries)
		})
	}
}

func TestStripRoot(t *testing.T) {
	rel, err := stripRoot("demo/sub/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "sub/file.txt", rel)

	rel, err = stripRoot("demo/")
	require.NoError(t, err)
	assert.Empty(t, rel)

	_, err = stripRoot("../../etc/passwd")
	require.Error(t, err)
}
