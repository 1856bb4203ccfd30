package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adnanxsalim/tool-vault/pkg/core/status"
	"github.com/adnanxsalim/tool-vault/pkg/model"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v2"
)

// writeDescriptor persists a version's metadata sidecar. The sidecar stays
// plain even when the snapshot itself is compressed or encrypted, so a
// version remains introspectable without its passphrase.
func writeDescriptor(fs afero.Fs, path string, desc model.VersionDescriptor) error {
	buf, err := yaml.Marshal(desc)
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, buf, 0o600)
}

// GetDescriptor returns the metadata record of one version.
func (s *Store) GetDescriptor(vault, version string) (model.VersionDescriptor, error) {
	var desc model.VersionDescriptor
	buf, err := afero.ReadFile(s.fs, model.VersionDescriptorPath(vault, version))
	if err != nil {
		if os.IsNotExist(err) {
			return desc, status.ErrNotFound.Wrap(fmt.Errorf("no metadata for %s@%s", vault, version))
		}
		return desc, err
	}
	if err = yaml.Unmarshal(buf, &desc); err != nil {
		return desc, fmt.Errorf("unmarshaling metadata for %s@%s: %w", vault, version, err)
	}
	return desc, nil
}

// ApplyVersionFunc is invoked for each version matched by Search.
type ApplyVersionFunc func(ref model.VersionRef) error

// Search scans every persisted metadata record under the store and applies
// apply to each version whose name or serialized form contains term as a
// case-sensitive substring. Each call re-scans the store, so the sequence
// is restartable.
func (s *Store) Search(term string, apply ApplyVersionFunc) error {
	return afero.Walk(s.fs, ".", func(p string, info os.FileInfo, werr error) error {
		if werr != nil {
			if os.IsNotExist(werr) {
				return nil
			}
			return werr
		}
		rel := strings.TrimPrefix(filepath.ToSlash(p), "./")
		if info.IsDir() {
			if rel != "." && model.IsControlEntry(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		ref, ok := model.IsDescriptorPath(rel)
		if !ok {
			return nil
		}
		buf, rerr := afero.ReadFile(s.fs, p)
		if rerr != nil {
			return rerr
		}
		var desc model.VersionDescriptor
		if uerr := yaml.Unmarshal(buf, &desc); uerr != nil {
			s.l.Debug("skipping unreadable metadata", zap.String("path", p), zap.Error(uerr))
			return nil
		}
		if strings.Contains(desc.Name, term) || strings.Contains(string(buf), term) {
			return apply(ref)
		}
		return nil
	})
}

// SearchRefs collects Search results into a slice.
func (s *Store) SearchRefs(term string) ([]model.VersionRef, error) {
	var refs []model.VersionRef
	err := s.Search(term, func(ref model.VersionRef) error {
		refs = append(refs, ref)
		return nil
	})
	return refs, err
}

// Info returns the metadata of every version under a vault, in directory
// enumeration order. Versions without a readable sidecar are reported with
// name and version only.
func (s *Store) Info(vault string) ([]model.VersionDescriptor, error) {
	entries, err := afero.ReadDir(s.fs, vault)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, status.ErrNotFound.Wrap(fmt.Errorf("no vault named %q", vault))
		}
		return nil, err
	}
	var out []model.VersionDescriptor
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		desc, derr := s.GetDescriptor(vault, e.Name())
		if derr != nil {
			desc = model.VersionDescriptor{Name: vault, Version: e.Name()}
		}
		out = append(out, desc)
	}
	return out, nil
}

// VersionSize totals the stored bytes of one version, sidecar included.
func (s *Store) VersionSize(vault, version string) (int64, error) {
	var total int64
	err := afero.Walk(s.fs, model.VersionPath(vault, version), func(p string, info os.FileInfo, werr error) error {
		if werr != nil {
			return werr
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	return total, err
}

func sortedRefs(refs []model.VersionRef) []model.VersionRef {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Vault != refs[j].Vault {
			return refs[i].Vault < refs[j].Vault
		}
		return refs[i].Version < refs[j].Version
	})
	return refs
}
