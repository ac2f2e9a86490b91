package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fjglira/mkoptions/internal/domain"
)

// Scanner discovers option specification files.
type Scanner interface {
	Scan(rootDir string, patterns []string, excludes []string) ([]string, error)
}

// FileScanner implements Scanner using filepath.WalkDir.
type FileScanner struct {
	Recursive bool
}

// NewScanner creates a new FileScanner.
func NewScanner(recursive bool) *FileScanner {
	return &FileScanner{Recursive: recursive}
}

// Scan walks rootDir and returns sorted file paths matching any of the given
// glob patterns while excluding paths that match any exclude pattern.
// Patterns are matched against the slash separated path relative to rootDir
// and may use "**"; patterns without a separator also match the base name.
func (s *FileScanner) Scan(rootDir string, patterns []string, excludes []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(rootDir, path)
		if relErr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if relPath == "." {
				return nil
			}
			if !s.Recursive || matchAny(relPath, excludes) {
				return filepath.SkipDir
			}
			return nil
		}

		if matchAny(relPath, excludes) {
			return nil
		}
		if matchAny(relPath, patterns) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, domain.NewError("scan", rootDir, 0, "failed to scan directory", err)
	}

	sort.Strings(files)
	return files, nil
}

func matchAny(relPath string, patterns []string) bool {
	for _, p := range patterns {
		if matchGlob(relPath, p) {
			return true
		}
	}
	return false
}

// matchGlob matches a relative path against a glob pattern. A directory
// pattern like "vendor/**" also matches the directory itself.
func matchGlob(relPath, pattern string) bool {
	if ok, _ := doublestar.Match(pattern, relPath); ok {
		return true
	}
	if ok, _ := doublestar.Match(pattern, relPath+"/"); ok {
		return true
	}
	ok, _ := doublestar.Match(pattern, filepath.Base(relPath))
	return ok
}
