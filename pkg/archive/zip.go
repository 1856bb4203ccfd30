package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/adnanxsalim/tool-vault/pkg/model"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

type zipCodec struct{}

func (zipCodec) Kind() model.Compression { return model.CompressionZip }

func (zipCodec) Pack(fs afero.Fs, srcDir, archivePath, rootName string) (err error) {
	out, err := fs.Create(archivePath)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(out)
	defer func() {
		err = multierr.Append(err, multierr.Append(zw.Close(), out.Close()))
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
		hdr, herr := zip.FileInfoHeader(info)
		if herr != nil {
			return herr
		}
		hdr.Name = path.Join(rootName, filepath.ToSlash(rel))
		if info.IsDir() {
			hdr.Name += "/"
			_, cerr := zw.CreateHeader(hdr)
			return cerr
		}
		hdr.Method = zip.Deflate
		w, cerr := zw.CreateHeader(hdr)
		if cerr != nil {
			return cerr
		}
		in, oerr := fs.Open(p)
		if oerr != nil {
			return oerr
		}
		defer in.Close()
		_, cpErr := io.Copy(w, in)
		return cpErr
	})
}

func (zipCodec) Unpack(fs afero.Fs, archivePath, dstDir string) error {
	zr, closer, err := openZip(fs, archivePath)
	if err != nil {
		return err
	}
	defer closer.Close()

	for _, f := range zr.File {
		rel, serr := stripRoot(f.Name)
		if serr != nil {
			return serr
		}
		if rel == "" {
			continue
		}
		target := filepath.Join(dstDir, filepath.FromSlash(rel))
		if f.FileInfo().IsDir() {
			if merr := fs.MkdirAll(target, f.Mode()|0o700); merr != nil {
				return merr
			}
			continue
		}
		if merr := fs.MkdirAll(filepath.Dir(target), 0o700); merr != nil {
			return merr
		}
		if werr := writeZipEntry(fs, target, f); werr != nil {
			return werr
		}
	}
	return nil
}

func writeZipEntry(fs afero.Fs, target string, f *zip.File) (err error) {
	in, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, in.Close()) }()

	out, err := fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, out.Close()) }()

	_, err = io.Copy(out, in)
	return err
}

func (zipCodec) Manifest(fs afero.Fs, archivePath string) ([]string, error) {
	zr, closer, err := openZip(fs, archivePath)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	var out []string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rel, serr := stripRoot(f.Name)
		if serr != nil {
			return nil, serr
		}
		if rel != "" {
			out = append(out, rel)
		}
	}
	return sorted(out), nil
}

func openZip(fs afero.Fs, archivePath string) (*zip.Reader, io.Closer, error) {
	f, err := fs.Open(archivePath)
	if err != nil {
		return nil, nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	zr, err := zip.NewReader(f, fi.Size())
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("reading zip %q: %w", archivePath, err)
	}
	return zr, f, nil
}
