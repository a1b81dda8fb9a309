package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Collect expands paths into documents. Directories are walked recursively
// and only PDFs are kept; explicitly named files are always kept so that a
// bad file shows up as a failure later instead of vanishing. Paths that cannot
// be read come back as documents with Err set. Documents are sorted by path
// within each directory, in argument order across arguments.
func Collect(paths []string, skipHidden bool) ([]Document, DirStats, error) {
	if len(paths) == 0 {
		return nil, DirStats{}, errors.New("at least one path is required")
	}

	var (
		docs  []Document
		stats DirStats
	)

	for _, root := range paths {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		info, err := os.Stat(root)
		if err != nil {
			docs = append(docs, Document{Name: filepath.Base(root), Path: root, Err: err})
			stats.Failed++
			continue
		}
		if !info.IsDir() {
			stats.Scanned++
			stats.Matched++
			docs = append(docs, Document{Name: filepath.Base(root), Path: root})
			continue
		}

		var found []Document
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				found = append(found, Document{Name: filepath.Base(path), Path: path, Err: walkErr})
				stats.Failed++
				return nil // continue walking
			}
			if skipHidden && path != root && IsHidden(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			stats.Scanned++
			if !AllowedExt(filepath.Ext(path)) {
				stats.Skipped++
				return nil
			}
			stats.Matched++
			found = append(found, Document{Name: filepath.Base(path), Path: path})
			return nil
		})
		if err != nil {
			return docs, stats, fmt.Errorf("walk %s: %w", root, err)
		}
		sort.Slice(found, func(i, j int) bool { return found[i].Path < found[j].Path })
		docs = append(docs, found...)
	}
	return docs, stats, nil
}
