package core

import (
	"testing"

	"github.com/adnanxsalim/tool-vault/pkg/core/status"
	"github.com/adnanxsalim/tool-vault/pkg/errors"
	"github.com/adnanxsalim/tool-vault/pkg/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptedSaveLoadRoundtrip(t *testing.T) {
	s, fs := newTestStore(t)
	seedSource(t, fs)

	_, err := s.Save("/src", "demo", "v1", SaveWithEncryption())
	require.NoError(t, err)

	// stored bytes are ciphertext
	stored, err := afero.ReadFile(fs, testRoot+"/demo/v1/readme.md")
	require.NoError(t, err)
	assert.NotEqual(t, "hello", string(stored))

	// the sidecar stays introspectable without the passphrase
	desc, err := s.GetDescriptor("demo", "v1")
	require.NoError(t, err)
	assert.True(t, desc.Encrypted)

	require.NoError(t, s.Load("/out", "demo", "v1", LoadWithDecryption()))
	readme, err := afero.ReadFile(fs, "/out/readme.md")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(readme))
}

func TestWrongPassphraseLeavesStoreUntouched(t *testing.T) {
	s, fs := newTestStore(t)
	seedSource(t, fs)

	_, err := s.Save("/src", "demo", "v1", SaveWithEncryption())
	require.NoError(t, err)

	before, err := afero.ReadFile(fs, testRoot+"/demo/v1/readme.md")
	require.NoError(t, err)

	bad := New(testRoot, WithFs(fs),
		WithPassphrase(func(bool) (string, error) { return "not-sesame", nil }))
	err = bad.Load("/out", "demo", "v1", LoadWithDecryption())
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrDecryption))

	// never silently-wrong output
	ok, _ := afero.Exists(fs, "/out/readme.md")
	assert.False(t, ok)

	// stored ciphertext untouched
	after, err := afero.ReadFile(fs, testRoot+"/demo/v1/readme.md")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDecryptUnencryptedVersion(t *testing.T) {
	s, fs := newTestStore(t)
	seedSource(t, fs)

	_, err := s.Save("/src", "demo", "v1")
	require.NoError(t, err)

	err = s.Load("/out", "demo", "v1", LoadWithDecryption())
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrDecryption))
}

func TestEmptyPassphraseRejected(t *testing.T) {
	s, fs := newTestStore(t, WithPassphrase(func(bool) (string, error) { return "", nil }))
	seedSource(t, fs)

	_, err := s.Save("/src", "demo", "v1", SaveWithEncryption())
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrEmptyPassphrase))

	// nothing landed at the final path
	ok, _ := afero.DirExists(fs, testRoot+"/demo/v1")
	assert.False(t, ok)
}

func TestCompressedSaveLoad(t *testing.T) {
	for _, kind := range []model.Compression{model.CompressionZip, model.CompressionTarGz} {
		kind := kind
		t.Run(string(kind), func(t *testing.T) {
			s, fs := newTestStore(t)
			seedSource(t, fs)

			_, err := s.Save("/src", "demo", "v1", SaveWithCompression(kind))
			require.NoError(t, err)

			// the version directory holds exactly the archive and the sidecar
			entries, err := afero.ReadDir(fs, testRoot+"/demo/v1")
			require.NoError(t, err)
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				names = append(names, e.Name())
			}
			assert.ElementsMatch(t, []string{"demo." + string(kind), model.DescriptorFile}, names)

			require.NoError(t, s.Load("/out", "demo", "v1"))
			readme, err := afero.ReadFile(fs, "/out/readme.md")
			require.NoError(t, err)
			assert.Equal(t, "hello", string(readme))
			nums, err := afero.ReadFile(fs, "/out/data/nums.csv")
			require.NoError(t, err)
			assert.Equal(t, "1,2,3\n", string(nums))
		})
	}
}

func TestCompressedEncryptedSaveLoad(t *testing.T) {
	s, fs := newTestStore(t)
	seedSource(t, fs)

	_, err := s.Save("/src", "demo", "v1",
		SaveWithCompression(model.CompressionTarGz), SaveWithEncryption())
	require.NoError(t, err)

	require.NoError(t, s.Load("/out", "demo", "v1", LoadWithDecryption()))
	readme, err := afero.ReadFile(fs, "/out/readme.md")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(readme))
}

func TestDiffAgainstSelfIsEmpty(t *testing.T) {
	s, fs := newTestStore(t)
	seedSource(t, fs)

	_, err := s.Save("/src", "demo", "v1")
	require.NoError(t, err)

	lines, err := s.Diff("demo", "v1", "v1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestDiffReportsMembershipChanges(t *testing.T) {
	s, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, "/src/x", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/src/y", []byte("y"), 0o644))

	_, err := s.Save("/src", "demo", "v1")
	require.NoError(t, err)

	require.NoError(t, fs.Remove("/src/y"))
	require.NoError(t, afero.WriteFile(fs, "/src/z", []byte("z"), 0o644))

	_, err = s.Save("/src", "demo", "v2")
	require.NoError(t, err)

	lines, err := s.Diff("demo", "v1", "v2")
	require.NoError(t, err)
	assert.Contains(t, lines, "-y")
	assert.Contains(t, lines, "+z")
	assert.NotContains(t, lines, "-x")
	assert.NotContains(t, lines, "+x")
}

func TestDiffCompressedVersion(t *testing.T) {
	s, fs := newTestStore(t)
	seedSource(t, fs)

	_, err := s.Save("/src", "demo", "v1")
	require.NoError(t, err)
	_, err = s.Save("/src", "demo", "v2", SaveWithCompression(model.CompressionZip))
	require.NoError(t, err)

	// same membership on both sides of the codec boundary
	lines, err := s.Diff("demo", "v1", "v2")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestDiffMissingVersion(t *testing.T) {
	s, fs := newTestStore(t)
	seedSource(t, fs)
	_, err := s.Save("/src", "demo", "v1")
	require.NoError(t, err)

	_, err = s.Diff("demo", "v1", "v404")
	assert.True(t, errors.Is(err, status.ErrNotFound))
}

func TestHistorySinkFailureDoesNotFailSave(t *testing.T) {
	s, fs := newTestStore(t, WithHistory(failingSink{}))
	seedSource(t, fs)

	_, err := s.Save("/src", "demo", "v1")
	require.NoError(t, err)
}

type failingSink struct{}

func (failingSink) Record(string) error { return errors.New("side channel down") }
