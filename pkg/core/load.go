package core

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/adnanxsalim/tool-vault/pkg/archive"
	"github.com/adnanxsalim/tool-vault/pkg/audit"
	"github.com/adnanxsalim/tool-vault/pkg/core/status"
	"github.com/adnanxsalim/tool-vault/pkg/crypt"
	"github.com/adnanxsalim/tool-vault/pkg/model"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// LoadOption configures a single load operation.
type LoadOption func(*loadParams)

type loadParams struct {
	decrypt bool
}

// LoadWithDecryption decrypts a working copy of the stored snapshot before
// restoring it. The stored ciphertext is never touched.
func LoadWithDecryption() LoadOption {
	return func(p *loadParams) { p.decrypt = true }
}

// Load merge-copies the stored version tree into destination: the
// destination is created if absent, same-named entries are overwritten and
// unrelated existing files are left alone.
func (s *Store) Load(destination, vault, version string, opts ...LoadOption) error {
	var p loadParams
	for _, apply := range opts {
		apply(&p)
	}
	ref := model.VersionRef{Vault: vault, Version: version}
	if err := ref.Validate(); err != nil {
		return err
	}

	stored := model.VersionPath(vault, version)
	if ok, err := afero.DirExists(s.fs, stored); err != nil {
		return err
	} else if !ok {
		return status.ErrNotFound.Wrap(fmt.Errorf("version %s does not exist", ref.Subject()))
	}

	absDest, err := filepath.Abs(destination)
	if err != nil {
		return err
	}

	// the whole read side works on desc defaults when the sidecar is gone
	desc, _ := s.GetDescriptor(vault, version)

	work := path.Join(model.StagingPrefix, "load", vault, version)
	defer func() {
		_ = s.fs.RemoveAll(path.Join(model.StagingPrefix, "load", vault))
	}()

	contentDir := stored
	if p.decrypt {
		if err = s.fs.RemoveAll(work); err != nil {
			return err
		}
		if err = mergeTree(s.fs, stored, s.fs, work, model.DescriptorFile); err != nil {
			return err
		}
		key, kerr := s.obtainKey(false)
		if kerr != nil {
			return kerr
		}
		if err = s.decryptTree(work, key); err != nil {
			_ = s.fs.RemoveAll(work)
			return err
		}
		contentDir = work
	}

	if codec, ok := archive.For(desc.Compression); ok {
		unpacked := path.Join(model.StagingPrefix, "load", vault, version+".tree")
		archivePath := path.Join(contentDir, vault+"."+string(desc.Compression))
		if err = codec.Unpack(s.fs, archivePath, unpacked); err != nil {
			return fmt.Errorf("unpacking snapshot %s: %w", ref.Subject(), err)
		}
		contentDir = unpacked
	}

	skip := []string{}
	if contentDir == stored {
		skip = append(skip, model.DescriptorFile)
	}
	if err = mergeTree(s.fs, contentDir, s.ext, absDest, skip...); err != nil {
		return err
	}

	if err = s.appendAudit(audit.ActionLoaded, ref.Subject()); err != nil {
		return err
	}
	s.l.Info("version loaded",
		zap.String("vault", vault),
		zap.String("version", version),
		zap.String("destination", absDest))
	return nil
}

// decryptTree opens every regular file under dir in place. dir is always a
// discardable working copy, never the stored version.
func (s *Store) decryptTree(dir string, key crypt.Key) error {
	return afero.Walk(s.fs, dir, func(p string, info os.FileInfo, werr error) error {
		if werr != nil {
			return werr
		}
		if info.IsDir() {
			return nil
		}
		buf, rerr := afero.ReadFile(s.fs, p)
		if rerr != nil {
			return rerr
		}
		plain, derr := s.cipher.Decrypt(buf, key)
		if derr != nil {
			return derr
		}
		return afero.WriteFile(s.fs, p, plain, info.Mode().Perm())
	})
}
