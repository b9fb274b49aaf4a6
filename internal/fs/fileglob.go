package fs

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// FileGlob resolves the pattern to file paths.
// If the pattern is an absolute path, absolute paths are returned, otherwise
// relative paths.
// Files are resolved in the same way then filepath.Glob() does, with the
// following exceptions:
//   - it also supports '**' to match files and directories recursively,
//   - it only returns paths to files, no directory paths,
//   - if a part of the pattern is a path and it does not exist an error that
//     can be tested with os.IsNotExist() is returned.
//
// If a globPath doesn't match any files an empty []string is returned and
// error is nil
func FileGlob(pattern string) ([]string, error) {
	globRes, err := doublestar.FilepathGlob(
		pattern,
		doublestar.WithFailOnIOErrors(),
		doublestar.WithFailOnPatternNotExist(),
	)
	if err != nil {
		if errors.Is(err, doublestar.ErrPatternNotExist) {
			return nil, os.ErrNotExist
		}
		return nil, err
	}

	res := make([]string, 0, len(globRes))
	for _, path := range globRes {
		isFile, err := IsFile(path)
		if err != nil {
			return nil, err
		}

		if !isFile {
			continue
		}

		res = append(res, path)
	}

	return res, nil
}

// MatchGlob reports whether path matches the pattern.
// Both are interpreted as slash separated paths.
func MatchGlob(pattern, path string) (bool, error) {
	return doublestar.Match(pattern, filepath.ToSlash(path))
}

// ValidGlob returns an error if pattern is malformed.
func ValidGlob(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return doublestar.ErrBadPattern
	}

	return nil
}

// MatchAny returns true and the matching pattern, if a pattern in patterns
// matches path. If none matches, false and an empty string is returned.
func MatchAny(patterns []string, path string) (bool, string, error) {
	for _, pattern := range patterns {
		match, err := MatchGlob(pattern, path)
		if err != nil {
			return false, "", err
		}

		if match {
			return true, pattern, nil
		}
	}

	return false, "", nil
}
