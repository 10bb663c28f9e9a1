package archive

// Archive plumbing shared by the sdist builders. Both formats store paths
// relative to a base directory so that an extracted distribution unpacks as
// <name>-<version>/... regardless of where it was staged.

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// CopyFile copies a regular file from src to dst, preserving its mode. The
// mode matters here: installable scripts keep their execute bit this way.
func CopyFile(src, dst string) error {
	srcStat, err := os.Stat(src)
	if err != nil {
		return err
	}

	if !srcStat.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	from, err := os.Open(src)
	if err != nil {
		return err
	}
	defer from.Close()

	to, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, srcStat.Mode().Perm())
	if err != nil {
		return err
	}
	defer to.Close()

	if _, err = io.Copy(to, from); err != nil {
		return err
	}

	return nil
}

// TarDir creates a tar.gz archive of srcPath at dstPath. Paths in the archive
// are relative to basePath, so TarDir(filepath.Dir(d), d, out) includes the
// top-level directory d itself while TarDir(d, d, out) does not.
func TarDir(basePath, srcPath, dstPath string) error {
	destFile, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer destFile.Close()

	gzw := gzip.NewWriter(destFile)
	defer gzw.Close()

	tarWriter := tar.NewWriter(gzw)
	defer tarWriter.Close()

	return filepath.Walk(srcPath, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(basePath, filePath)
		if err != nil {
			return errors.Wrap(err, "Couldn't make relative path while archiving")
		}

		header, err := tar.FileInfoHeader(info, filePath)
		if err != nil {
			return err
		}
		header.Name = relPath

		if err := tarWriter.WriteHeader(header); err != nil {
			return err
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		sourceFile, err := os.Open(filePath)
		if err != nil {
			return err
		}
		if _, err = io.Copy(tarWriter, sourceFile); err != nil {
			sourceFile.Close()
			return err
		}
		return sourceFile.Close()
	})
}

// Untar extracts a tar.gz archive at src into the directory dst and returns
// the extracted paths.
func Untar(src, dst string) ([]string, error) {
	srcReader, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer srcReader.Close()

	return UntarStream(srcReader, dst)
}

// UntarStream extracts a tar.gz stream into dstPath.
func UntarStream(src io.Reader, dstPath string) ([]string, error) {
	var filenames []string

	gzr, err := gzip.NewReader(src)
	if err != nil {
		return filenames, err
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)

	for {
		header, err := tr.Next()

		switch {
		case err == io.EOF:
			return filenames, nil
		case err != nil:
			return filenames, err
		case header == nil:
			continue
		}

		target := filepath.Join(dstPath, header.Name)
		if !strings.HasPrefix(target, filepath.Clean(dstPath)+string(os.PathSeparator)) {
			return filenames, fmt.Errorf("%s: illegal file path", target)
		}
		filenames = append(filenames, target)

		switch header.Typeflag {

		case tar.TypeDir:
			if _, err := os.Stat(target); err != nil {
				if err := os.MkdirAll(target, os.FileMode(header.Mode)); err != nil {
					return filenames, err
				}
			}

		case tar.TypeReg:
			// Some tars don't include entries for directories, so make sure
			// the parent exists before creating the file.
			if _, err := os.Stat(filepath.Dir(target)); err != nil {
				if err := os.MkdirAll(filepath.Dir(target), 0775); err != nil {
					return filenames, err
				}
			}

			f, err := os.OpenFile(target, os.O_CREATE|os.O_RDWR|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return filenames, err
			}

			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return filenames, err
			}

			// Close here rather than defer so we don't hold every file in the
			// archive open until the end.
			f.Close()
		}
	}
}

// ZipDir creates a zip archive of srcPath at dstPath. Relative-path handling
// matches TarDir.
func ZipDir(basePath, srcPath, dstPath string) error {
	destFile, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer destFile.Close()

	zipWriter := zip.NewWriter(destFile)
	defer zipWriter.Close()

	return filepath.Walk(srcPath, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(basePath, filePath)
		if err != nil {
			return errors.Wrap(err, "Couldn't make relative path while archiving")
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = relPath
		header.Method = zip.Deflate

		writer, err := zipWriter.CreateHeader(header)
		if err != nil {
			return err
		}

		sourceFile, err := os.Open(filePath)
		if err != nil {
			return err
		}
		if _, err = io.Copy(writer, sourceFile); err != nil {
			sourceFile.Close()
			return err
		}
		return sourceFile.Close()
	})
}

// Unzip extracts a zip archive at src into the directory dst and returns the
// extracted paths.
func Unzip(src, dst string) ([]string, error) {
	var filenames []string

	r, err := zip.OpenReader(src)
	if err != nil {
		return filenames, err
	}
	defer r.Close()

	for _, f := range r.File {

		fpath := filepath.Join(dst, f.Name)

		// ZipSlip guard
		if !strings.HasPrefix(fpath, filepath.Clean(dst)+string(os.PathSeparator)) {
			return filenames, fmt.Errorf("%s: illegal file path", fpath)
		}

		filenames = append(filenames, fpath)

		if f.FileInfo().IsDir() {
			os.MkdirAll(fpath, os.ModePerm)
			continue
		}

		if err = os.MkdirAll(filepath.Dir(fpath), os.ModePerm); err != nil {
			return filenames, err
		}

		outFile, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
		if err != nil {
			return filenames, err
		}

		rc, err := f.Open()
		if err != nil {
			outFile.Close()
			return filenames, err
		}

		_, err = io.Copy(outFile, rc)

		outFile.Close()
		rc.Close()

		if err != nil {
			return filenames, err
		}
	}
	return filenames, nil
}
