package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Walker selects source files by doublestar include/exclude globs
// matched against slash-separated paths relative to the walked root.
type Walker struct {
	includes []string
	excludes []string
}

func NewWalker(includes, excludes []string) (*Walker, error) {
	if len(includes) == 0 {
		includes = []string{"**/*.java"}
	}
	for _, p := range slices.Concat(includes, excludes) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return &Walker{includes: includes, excludes: excludes}, nil
}

// Walk returns matching files under root, sorted. A root that names a
// single file is returned as is.
func (w *Walker) Walk(root string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && (w.excluded(rel) || w.excluded(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		if w.included(rel) && !w.excluded(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// Match reports whether a root-relative path would be selected.
func (w *Walker) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	return w.included(rel) && !w.excluded(rel)
}

func (w *Walker) included(path string) bool {
	for _, pattern := range w.includes {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Walker) excluded(path string) bool {
	for _, pattern := range w.excludes {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}
