// Package archive packs a snapshot tree into a single zip or tar.gz
// archive and back. Entries are rooted under the vault name so an archive
// extracted by hand lands in a sensibly named directory.
package archive

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/adnanxsalim/tool-vault/pkg/model"
	"github.com/spf13/afero"
)

// Compressor packs and unpacks one archive format.
type Compressor interface {
	// Kind reports the compression kind this codec implements.
	Kind() model.Compression

	// Pack walks srcDir on fs in lexical order and writes an archive at
	// archivePath with every entry rooted under rootName.
	Pack(fs afero.Fs, srcDir, archivePath, rootName string) error

	// Unpack restores the archived tree into dstDir, stripping the root
	// entry name.
	Unpack(fs afero.Fs, archivePath, dstDir string) error

	// Manifest lists the archived regular file paths, root stripped,
	// lexicographically sorted.
	Manifest(fs afero.Fs, archivePath string) ([]string, error)
}

// For resolves the codec for a compression kind.
func For(kind model.Compression) (Compressor, bool) {
	switch kind {
	case model.CompressionZip:
		return zipCodec{}, true
	case model.CompressionTarGz:
		return tarGzCodec{}, true
	}
	return nil, false
}

// stripRoot drops the rootName prefix from an archive entry and rejects
// entries that would escape the extraction directory.
func stripRoot(entry string) (string, error) {
	clean := path.Clean(strings.TrimPrefix(entry, "/"))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("archive entry %q escapes extraction root", entry)
	}
	parts := strings.SplitN(clean, "/", 2)
	if len(parts) < 2 {
		return "", nil // the root entry itself
	}
	return parts[1], nil
}

func sorted(entries []string) []string {
	sort.Strings(entries)
	return entries
}
