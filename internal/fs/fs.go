// Package fs provides file system helpers.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// IsFile returns true if path is a regular file.
// If the path does not exist an error is returned
func IsFile(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	return fi.Mode().IsRegular(), nil
}

// IsDir returns true if the path is a directory.
// If the directory does not exist, the error from os.Stat() is returned.
func IsDir(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	return fi.IsDir(), nil
}

// FindFileInParentDirs finds a file in startPath or its parent directories.
// The function starts looking for a file called filename in startPath and then
// checks recursively its parent directories.
// It returns the absolute path of the first match.
// If it reaches the root directory without finding the file it returns
// os.ErrNotExist.
func FindFileInParentDirs(startPath, filename string) (string, error) {
	// filepath.Clean() removes trailing separators, otherwise the path
	// would be mistaken for the root directory.
	searchDir := filepath.Clean(startPath)

	for {
		p := filepath.Join(searchDir, filename)

		_, err := os.Stat(p)
		if err == nil {
			abs, err := filepath.Abs(p)
			if err != nil {
				return "", fmt.Errorf("could not get absolute path of %v: %w", p, err)
			}

			return abs, nil
		}

		if !os.IsNotExist(err) {
			return "", err
		}

		parent := filepath.Dir(searchDir)
		if parent == searchDir {
			return "", os.ErrNotExist
		}

		searchDir = parent
	}
}

// Mkdir creates recursively directories
func Mkdir(path string) error {
	return os.MkdirAll(path, os.FileMode(0o755))
}

// AbsPath returns path if it is absolute, otherwise it is joined with
// rootPath.
func AbsPath(rootPath, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(rootPath, path)
}


// WriteFile writes data to path via a temporary file in the same directory
// that is renamed to path. The parent directories are created.
// If writing fails, an existing file at path is left untouched.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := Mkdir(dir); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}

	if err := f.Chmod(perm); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("closing file failed: %w", err)
	}

	if err := os.Rename(f.Name(), path); err != nil {
		os.Remove(f.Name())
		return err
	}

	return nil
}
