package archive

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/adnanxsalim/tool-vault/pkg/model"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

type tarGzCodec struct{}

func (tarGzCodec) Kind() model.Compression { return model.CompressionTarGz }

func (tarGzCodec) Pack(fs afero.Fs, srcDir, archivePath, rootName string) (err error) {
	out, err := fs.Create(archivePath)
	if err != nil {
		return err
	}
	gzw := gzip.NewWriter(out)
	tw := tar.NewWriter(gzw)
	defer func() {
		err = multierr.Combine(err, tw.Close(), gzw.Close(), out.Close())
	}()

	return afero.Walk(fs, srcDir, func(p string, info os.FileInfo, werr error) error {
		if werr != nil {
			return werr
		}
		rel, rerr := filepath.Rel(srcDir, p)
		if rerr != nil {
			return rerr
		}
		if rel == "." {
			return nil
		}
		hdr, herr := tar.FileInfoHeader(info, "")
		if herr != nil {
			return herr
		}
		hdr.Name = path.Join(rootName, filepath.ToSlash(rel))
		if info.IsDir() {
			hdr.Name += "/"
		}
		if terr := tw.WriteHeader(hdr); terr != nil {
			return terr
		}
		if info.IsDir() {
			return nil
		}
		in, oerr := fs.Open(p)
		if oerr != nil {
			return oerr
		}
		defer in.Close()
		_, cpErr := io.Copy(tw, in)
		return cpErr
	})
}

func (tarGzCodec) Unpack(fs afero.Fs, archivePath, dstDir string) (err error) {
	tr, closer, err := openTarGz(fs, archivePath)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, closer.Close()) }()

	for {
		hdr, nerr := tr.Next()
		if nerr == io.EOF {
			return nil
		}
		if nerr != nil {
			return nerr
		}
		rel, serr := stripRoot(hdr.Name)
		if serr != nil {
			return serr
		}
		if rel == "" {
			continue
		}
		target := filepath.Join(dstDir, filepath.FromSlash(rel))
		switch hdr.Typeflag {
		case tar.TypeDir:
			if merr := fs.MkdirAll(target, os.FileMode(hdr.Mode)|0o700); merr != nil {
				return merr
			}
		case tar.TypeReg:
			if merr := fs.MkdirAll(filepath.Dir(target), 0o700); merr != nil {
				return merr
			}
			if werr := writeTarEntry(fs, target, tr, os.FileMode(hdr.Mode)); werr != nil {
				return werr
			}
		}
	}
}

func writeTarEntry(fs afero.Fs, target string, r io.Reader, mode os.FileMode) (err error) {
	out, err := fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, out.Close()) }()
	_, err = io.Copy(out, r)
	return err
}

func (tarGzCodec) Manifest(fs afero.Fs, archivePath string) (out []string, err error) {
	tr, closer, err := openTarGz(fs, archivePath)
	if err != nil {
		return nil, err
	}
	defer func() { err = multierr.Append(err, closer.Close()) }()

	for {
		hdr, nerr := tr.Next()
		if nerr == io.EOF {
			return sorted(out), nil
		}
		if nerr != nil {
			return nil, nerr
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		rel, serr := stripRoot(hdr.Name)
		if serr != nil {
			return nil, serr
		}
		if rel != "" {
			out = append(out, rel)
		}
	}
}

type tarGzCloser struct {
	gzr *gzip.Reader
	f   afero.File
}

func (c tarGzCloser) Close() error {
	return multierr.Append(c.gzr.Close(), c.f.Close())
}

func openTarGz(fs afero.Fs, archivePath string) (*tar.Reader, io.Closer, error) {
	f, err := fs.Open(archivePath)
	if err != nil {
		return nil, nil, err
	}
	gzr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return tar.NewReader(gzr), tarGzCloser{gzr: gzr, f: f}, nil
}
