package core

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/adnanxsalim/tool-vault/pkg/archive"
	"github.com/adnanxsalim/tool-vault/pkg/audit"
	"github.com/adnanxsalim/tool-vault/pkg/core/status"
	"github.com/adnanxsalim/tool-vault/pkg/crypt"
	"github.com/adnanxsalim/tool-vault/pkg/errors"
	"github.com/adnanxsalim/tool-vault/pkg/ignore"
	"github.com/adnanxsalim/tool-vault/pkg/model"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// SaveOption configures a single save operation.
type SaveOption func(*saveParams)

type saveParams struct {
	compression model.Compression
	encrypt     bool
	tags        []string
	readonly    bool
	dryRun      bool
}

// SaveWithCompression packs the snapshot with the given codec.
func SaveWithCompression(kind model.Compression) SaveOption {
	return func(p *saveParams) { p.compression = kind }
}

// SaveWithEncryption encrypts every stored file with a passphrase-derived key.
func SaveWithEncryption() SaveOption {
	return func(p *saveParams) { p.encrypt = true }
}

// SaveWithTags attaches tags to the version metadata.
func SaveWithTags(tags ...string) SaveOption {
	return func(p *saveParams) { p.tags = tags }
}

// SaveReadOnly flags the version against future overwrites.
func SaveReadOnly() SaveOption {
	return func(p *saveParams) { p.readonly = true }
}

// SaveDryRun computes the filtered manifest without any side effect.
func SaveDryRun() SaveOption {
	return func(p *saveParams) { p.dryRun = true }
}

// Save captures the source tree under vault@version and returns the
// filtered manifest that was (or, for a dry run, would be) stored.
//
// A save over an existing version replaces it wholesale. The replacement
// is built in a staging area and only renamed into place once the whole
// transformation pipeline has succeeded, so a crash mid-save never leaves
// a half-written version at its final path.
func (s *Store) Save(source, vault, version string, opts ...SaveOption) ([]model.ManifestEntry, error) {
	var p saveParams
	for _, apply := range opts {
		apply(&p)
	}
	ref := model.VersionRef{Vault: vault, Version: version}
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	absSource, err := resolveSource(s.ext, source)
	if err != nil {
		return nil, err
	}
	matcher, err := ignore.Load(s.ext, absSource)
	if err != nil {
		return nil, fmt.Errorf("loading ignore patterns: %w", err)
	}

	if p.dryRun {
		return walkManifest(s.ext, absSource, matcher)
	}

	prior, derr := s.GetDescriptor(vault, version)
	if derr == nil && prior.ReadOnly {
		return nil, status.ErrReadOnly.Wrap(fmt.Errorf("%s is readonly, refusing to overwrite", ref.Subject()))
	}

	if err = s.EnsureRoot(); err != nil {
		return nil, err
	}

	stage := model.StagingPath(vault, version)
	if err = s.fs.RemoveAll(stage); err != nil {
		return nil, err
	}
	defer func() {
		_ = s.fs.RemoveAll(path.Dir(stage))
	}()

	final := path.Join(stage, "final")
	manifest, err := s.stageSnapshot(absSource, vault, matcher, p, final)
	if err != nil {
		return nil, err
	}

	desc := model.VersionDescriptor{
		Name:        vault,
		Version:     version,
		Source:      absSource,
		Timestamp:   time.Now(),
		Tags:        p.tags,
		ReadOnly:    p.readonly,
		Compression: p.compression,
		Encrypted:   p.encrypt,
	}
	if err = writeDescriptor(s.fs, path.Join(final, model.DescriptorFile), desc); err != nil {
		return nil, err
	}

	if err = s.swapIntoPlace(final, vault, version); err != nil {
		return nil, err
	}

	if err = s.appendAudit(audit.ActionSaved, ref.Subject()); err != nil {
		return nil, err
	}
	s.recordHistory("vault save " + ref.Subject())
	s.l.Info("version saved",
		zap.String("vault", vault),
		zap.String("version", version),
		zap.Int("entries", len(manifest)),
		zap.String("compression", string(p.compression)),
		zap.Bool("encrypted", p.encrypt))
	return manifest, nil
}

// stageSnapshot runs the copy → pack → encrypt pipeline under the staging
// area and leaves the finished version content in finalDir.
func (s *Store) stageSnapshot(absSource, vault string, matcher *ignore.Matcher, p saveParams, finalDir string) ([]model.ManifestEntry, error) {
	var (
		manifest []model.ManifestEntry
		err      error
	)
	if p.compression == model.CompressionNone {
		manifest, err = copyTree(s.ext, absSource, s.fs, finalDir, matcher)
		if err != nil {
			return nil, err
		}
	} else {
		codec, ok := archive.For(p.compression)
		if !ok {
			return nil, fmt.Errorf("unsupported compression kind %q", p.compression)
		}
		treeDir := path.Join(path.Dir(finalDir), "tree")
		manifest, err = copyTree(s.ext, absSource, s.fs, treeDir, matcher)
		if err != nil {
			return nil, err
		}
		if err = s.fs.MkdirAll(finalDir, 0o700); err != nil {
			return nil, err
		}
		archiveName := vault + "." + string(p.compression)
		if err = codec.Pack(s.fs, treeDir, path.Join(finalDir, archiveName), vault); err != nil {
			return nil, fmt.Errorf("packing snapshot: %w", err)
		}
		if err = s.fs.RemoveAll(treeDir); err != nil {
			return nil, err
		}
	}

	if p.encrypt {
		key, kerr := s.obtainKey(true)
		if kerr != nil {
			return nil, kerr
		}
		if err = s.encryptTree(finalDir, key); err != nil {
			return nil, err
		}
	}
	return manifest, nil
}

// swapIntoPlace replaces the stored version with the staged content. The
// window between removal and rename is the only non-atomic step left.
func (s *Store) swapIntoPlace(stagedDir, vault, version string) error {
	target := model.VersionPath(vault, version)
	if err := s.fs.RemoveAll(target); err != nil {
		return err
	}
	if err := s.fs.MkdirAll(vault, 0o700); err != nil {
		return err
	}
	return s.fs.Rename(stagedDir, target)
}

// encryptTree seals every regular file under dir in place. Directories are
// untouched containers and files are sealed independently.
func (s *Store) encryptTree(dir string, key crypt.Key) error {
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
		sealed, eerr := s.cipher.Encrypt(buf, key)
		if eerr != nil {
			return eerr
		}
		return afero.WriteFile(s.fs, p, sealed, info.Mode().Perm())
	})
}

func (s *Store) obtainKey(confirm bool) (crypt.Key, error) {
	if s.passphrase == nil {
		return crypt.Key{}, errors.New("no passphrase provider configured")
	}
	pass, err := s.passphrase(confirm)
	if err != nil {
		return crypt.Key{}, err
	}
	return crypt.DeriveKey(pass)
}

func (s *Store) appendAudit(action, subject string) error {
	err := s.audit.Append(audit.Record{Timestamp: time.Now(), Action: action, Subject: subject})
	if err != nil {
		err = fmt.Errorf("appending audit record %s %s: %w", action, subject, err)
	}
	return err
}

// recordHistory feeds the side channel. Failures are logged, never surfaced.
func (s *Store) recordHistory(event string) {
	if err := s.history.Record(event); err != nil {
		s.l.Debug("history sink failed", zap.String("event", event), zap.Error(err))
	}
}

// resolveSource resolves the source to an absolute path and fails before
// any mutation when it does not exist.
func resolveSource(fs afero.Fs, source string) (string, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", err
	}
	if _, err = fs.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", status.ErrNotFound.Wrap(fmt.Errorf("source %q does not exist", source))
		}
		return "", err
	}
	return abs, nil
}
