package core

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/adnanxsalim/tool-vault/pkg/archive"
	"github.com/adnanxsalim/tool-vault/pkg/core/status"
	"github.com/adnanxsalim/tool-vault/pkg/model"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
)

// Diff compares the file manifests of two versions of a vault and returns
// unified-diff lines over the sorted path lists. Only membership is
// compared, never file content.
func (s *Store) Diff(vault, versionA, versionB string) ([]string, error) {
	a, err := s.VersionManifest(vault, versionA)
	if err != nil {
		return nil, err
	}
	b, err := s.VersionManifest(vault, versionB)
	if err != nil {
		return nil, err
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        terminated(a),
		B:        terminated(b),
		FromFile: versionA,
		ToFile:   versionB,
		Context:  3,
	})
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n"), nil
}

// VersionManifest lists the regular file paths of one stored version,
// lexicographically sorted. Compressed versions are listed from their
// archive without unpacking.
func (s *Store) VersionManifest(vault, version string) ([]string, error) {
	ref := model.VersionRef{Vault: vault, Version: version}
	stored := model.VersionPath(vault, version)
	if ok, err := afero.DirExists(s.fs, stored); err != nil {
		return nil, err
	} else if !ok {
		return nil, status.ErrNotFound.Wrap(fmt.Errorf("version %s does not exist", ref.Subject()))
	}

	desc, _ := s.GetDescriptor(vault, version)
	if codec, ok := archive.For(desc.Compression); ok {
		return codec.Manifest(s.fs, path.Join(stored, vault+"."+string(desc.Compression)))
	}

	entries, err := walkManifest(s.fs, stored, nil, model.DescriptorFile)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir {
			files = append(files, e.Path)
		}
	}
	sort.Strings(files)
	return files, nil
}

func terminated(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p + "\n"
	}
	return out
}
