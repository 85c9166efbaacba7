package materializer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Flush publishes a document map under root. The whole tree is written to
// a staging directory beside root first and swapped in with renames, so a
// mid-run write failure never leaves a truncated tree at the published
// path.
func Flush(root string, docs map[string][]byte) error {
	root = filepath.Clean(root)
	parent := filepath.Dir(root)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("materializer: create %s: %w", parent, err)
	}

	staging, err := os.MkdirTemp(parent, ".staging-")
	if err != nil {
		return fmt.Errorf("materializer: create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	paths := make([]string, 0, len(docs))
	for p := range docs {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		dst := filepath.Join(staging, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("materializer: create %s: %w", filepath.Dir(dst), err)
		}
		if err := os.WriteFile(dst, docs[p], 0o644); err != nil {
			return fmt.Errorf("materializer: write %s: %w", p, err)
		}
	}

	retired := root + ".old"
	if err := os.RemoveAll(retired); err != nil {
		return fmt.Errorf("materializer: clear %s: %w", retired, err)
	}
	if _, err := os.Stat(root); err == nil {
		if err := os.Rename(root, retired); err != nil {
			return fmt.Errorf("materializer: retire previous tree: %w", err)
		}
	}
	if err := os.Rename(staging, root); err != nil {
		return fmt.Errorf("materializer: publish %s: %w", root, err)
	}
	if err := os.RemoveAll(retired); err != nil {
		return fmt.Errorf("materializer: remove %s: %w", retired, err)
	}
	return nil
}

// WriteDoc writes a single document into an already-published tree,
// creating parent directories as needed. Used by the incremental latest
// updater, which patches the tree in place instead of rebuilding it.
func WriteDoc(root, p string, data []byte) error {
	dst := filepath.Join(filepath.Clean(root), filepath.FromSlash(p))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("materializer: create %s: %w", filepath.Dir(dst), err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("materializer: write %s: %w", p, err)
	}
	return nil
}
