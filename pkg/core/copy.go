package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adnanxsalim/tool-vault/pkg/ignore"
	"github.com/adnanxsalim/tool-vault/pkg/model"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// walkManifest collects the filtered manifest of a tree in lexical walk
// order. skip entries are matched by exact relative path.
func walkManifest(fs afero.Fs, root string, m *ignore.Matcher, skip ...string) ([]model.ManifestEntry, error) {
	if m == nil {
		m = ignore.New()
	}
	skipped := make(map[string]struct{}, len(skip))
	for _, s := range skip {
		skipped[s] = struct{}{}
	}
	var out []model.ManifestEntry
	err := afero.Walk(fs, root, func(p string, info os.FileInfo, werr error) error {
		if werr != nil {
			return werr
		}
		rel, rerr := filepath.Rel(root, p)
		if rerr != nil {
			return rerr
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if _, ok := skipped[rel]; ok {
			return nil
		}
		if m.Match(rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		out = append(out, model.ManifestEntry{Path: rel, IsDir: info.IsDir()})
		return nil
	})
	return out, err
}

// copyTree mirrors the filtered source tree into dstRoot, preserving file
// modes and modification times.
func copyTree(src afero.Fs, srcRoot string, dst afero.Fs, dstRoot string, m *ignore.Matcher) ([]model.ManifestEntry, error) {
	entries, err := walkManifest(src, srcRoot, m)
	if err != nil {
		return nil, err
	}
	if err = dst.MkdirAll(dstRoot, 0o700); err != nil {
		return nil, err
	}
	for _, e := range entries {
		from := filepath.Join(srcRoot, filepath.FromSlash(e.Path))
		to := filepath.Join(dstRoot, filepath.FromSlash(e.Path))
		info, serr := src.Stat(from)
		if serr != nil {
			return nil, serr
		}
		if e.IsDir {
			if merr := dst.MkdirAll(to, info.Mode().Perm()|0o700); merr != nil {
				return nil, merr
			}
			continue
		}
		if cerr := copyFile(src, from, dst, to, info); cerr != nil {
			return nil, fmt.Errorf("copying %q: %w", e.Path, cerr)
		}
	}
	// directory times last, so file writes do not bump them again
	for i := len(entries) - 1; i >= 0; i-- {
		if !entries[i].IsDir {
			continue
		}
		from := filepath.Join(srcRoot, filepath.FromSlash(entries[i].Path))
		info, serr := src.Stat(from)
		if serr != nil {
			return nil, serr
		}
		to := filepath.Join(dstRoot, filepath.FromSlash(entries[i].Path))
		_ = dst.Chtimes(to, info.ModTime(), info.ModTime())
	}
	return entries, nil
}

func copyFile(src afero.Fs, from string, dst afero.Fs, to string, info os.FileInfo) (err error) {
	in, err := src.Open(from)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, in.Close()) }()

	out, err := dst.OpenFile(to, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}
	if err = dst.Chmod(to, info.Mode().Perm()); err != nil {
		return err
	}
	return dst.Chtimes(to, info.ModTime(), info.ModTime())
}

// mergeTree copies every file under srcRoot into dstRoot, overwriting
// same-named entries and leaving unrelated destination files untouched.
func mergeTree(src afero.Fs, srcRoot string, dst afero.Fs, dstRoot string, skip ...string) error {
	entries, err := walkManifest(src, srcRoot, nil, skip...)
	if err != nil {
		return err
	}
	if err = dst.MkdirAll(dstRoot, 0o755); err != nil {
		return err
	}
	for _, e := range entries {
		from := filepath.Join(srcRoot, filepath.FromSlash(e.Path))
		to := filepath.Join(dstRoot, filepath.FromSlash(e.Path))
		info, serr := src.Stat(from)
		if serr != nil {
			return serr
		}
		if e.IsDir {
			if merr := dst.MkdirAll(to, info.Mode().Perm()|0o700); merr != nil {
				return merr
			}
			continue
		}
		if cerr := copyFile(src, from, dst, to, info); cerr != nil {
			return fmt.Errorf("restoring %q: %w", e.Path, cerr)
		}
	}
	return nil
}
