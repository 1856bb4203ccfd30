package core

import (
	"fmt"

	"github.com/adnanxsalim/tool-vault/pkg/audit"
	"github.com/adnanxsalim/tool-vault/pkg/core/status"
	"github.com/adnanxsalim/tool-vault/pkg/model"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// List enumerates every (vault, version) pair in the store, skipping
// reserved control entries, sorted by vault then version.
func (s *Store) List() ([]model.VersionRef, error) {
	vaults, err := afero.ReadDir(s.fs, ".")
	if err != nil {
		if ok, _ := afero.DirExists(s.ext, s.root); !ok {
			return nil, nil
		}
		return nil, err
	}
	var refs []model.VersionRef
	for _, v := range vaults {
		if !v.IsDir() || model.IsControlEntry(v.Name()) {
			continue
		}
		versions, verr := afero.ReadDir(s.fs, v.Name())
		if verr != nil {
			return nil, verr
		}
		for _, ver := range versions {
			if ver.IsDir() {
				refs = append(refs, model.VersionRef{Vault: v.Name(), Version: ver.Name()})
			}
		}
	}
	return sortedRefs(refs), nil
}

// Delete removes a whole vault with every version in it. The operation is
// gated by the confirmation provider; a declined confirmation is reported
// as ErrConfirmationDeclined and mutates nothing.
func (s *Store) Delete(vault string) error {
	if ok, err := afero.DirExists(s.fs, vault); err != nil {
		return err
	} else if !ok {
		return status.ErrNotFound.Wrap(fmt.Errorf("no vault named %q", vault))
	}
	if !s.confirm(fmt.Sprintf("Are you sure you want to delete vault %q?", vault)) {
		s.l.Info("delete declined", zap.String("vault", vault))
		return status.ErrConfirmationDeclined
	}
	if err := s.fs.RemoveAll(vault); err != nil {
		return err
	}
	if err := s.appendAudit(audit.ActionDeleted, vault); err != nil {
		return err
	}
	s.recordHistory("vault delete " + vault)
	s.l.Info("vault deleted", zap.String("vault", vault))
	return nil
}

// DeleteVersion removes one version of a vault, confirmation-gated like
// Delete. An emptied vault directory is kept; it simply lists no versions.
func (s *Store) DeleteVersion(vault, version string) error {
	ref := model.VersionRef{Vault: vault, Version: version}
	if ok, err := afero.DirExists(s.fs, model.VersionPath(vault, version)); err != nil {
		return err
	} else if !ok {
		return status.ErrNotFound.Wrap(fmt.Errorf("version %s does not exist", ref.Subject()))
	}
	if !s.confirm(fmt.Sprintf("Are you sure you want to delete version %s?", ref.Subject())) {
		s.l.Info("delete declined", zap.String("vault", vault), zap.String("version", version))
		return status.ErrConfirmationDeclined
	}
	if err := s.fs.RemoveAll(model.VersionPath(vault, version)); err != nil {
		return err
	}
	if err := s.appendAudit(audit.ActionDeleted, ref.Subject()); err != nil {
		return err
	}
	s.recordHistory("vault delete " + ref.Subject())
	s.l.Info("version deleted", zap.String("vault", vault), zap.String("version", version))
	return nil
}
