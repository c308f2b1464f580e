package domain

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/mazrean/ocidigest/digest"
	"github.com/mazrean/ocidigest/internal/port"
)

// FileDiffStatus represents the change status of a file.
type FileDiffStatus string

const (
	FileDiffAdded    FileDiffStatus = "added"
	FileDiffRemoved  FileDiffStatus = "removed"
	FileDiffModified FileDiffStatus = "modified"
)

// FileDiff represents the difference of a single file between two trees.
type FileDiff struct {
	Path   string         // Slash-separated path relative to the tree root
	Status FileDiffStatus // Change status
	Patch  string         // Line-level diff for modified text files
	Old    digest.Digest  // Digest in the old tree (zero when added)
	New    digest.Digest  // Digest in the new tree (zero when removed)
}

// DiffTrees compares two directory trees file by file using their digests.
// A missing oldDir is treated as an empty tree. Results are sorted by path.
func DiffTrees(ctx context.Context, svc port.DigestService, oldDir, newDir string, alg digest.Algorithm) ([]*FileDiff, error) {
	oldFiles, err := digestFiles(ctx, svc, oldDir, alg)
	if err != nil {
		return nil, fmt.Errorf("failed to digest old tree %s: %w", oldDir, err)
	}

	newFiles, err := digestFiles(ctx, svc, newDir, alg)
	if err != nil {
		return nil, fmt.Errorf("failed to digest new tree %s: %w", newDir, err)
	}

	var diffs []*FileDiff

	// Removed and modified files
	for path, oldDigest := range oldFiles {
		newDigest, exists := newFiles[path]
		if !exists {
			diffs = append(diffs, &FileDiff{Path: path, Status: FileDiffRemoved, Old: oldDigest})
			continue
		}
		if oldDigest == newDigest {
			continue
		}

		patch, err := filePatch(filepath.Join(oldDir, filepath.FromSlash(path)), filepath.Join(newDir, filepath.FromSlash(path)))
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, &FileDiff{Path: path, Status: FileDiffModified, Old: oldDigest, New: newDigest, Patch: patch})
	}

	// Added files
	for path, newDigest := range newFiles {
		if _, exists := oldFiles[path]; !exists {
			diffs = append(diffs, &FileDiff{Path: path, Status: FileDiffAdded, New: newDigest})
		}
	}

	sort.Slice(diffs, func(i, j int) bool { return diffs[i].Path < diffs[j].Path })
	return diffs, nil
}

// digestFiles walks dir and returns the digest of every regular file keyed by its slash-separated relative path.
func digestFiles(ctx context.Context, svc port.DigestService, dir string, alg digest.Algorithm) (map[string]digest.Digest, error) {
	files := make(map[string]digest.Digest)
	if dir == "" {
		return files, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return files, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		sum, err := svc.Compute(ctx, path, alg)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = sum
		return nil
	})
	return files, err
}

// filePatch returns a line patch between two files, or "" when either is binary.
func filePatch(oldPath, newPath string) (string, error) {
	oldContent, err := os.ReadFile(oldPath)
	if err != nil {
		return "", err
	}
	newContent, err := os.ReadFile(newPath)
	if err != nil {
		return "", err
	}
	if isBinaryContent(oldContent) || isBinaryContent(newContent) {
		return "", nil
	}
	return lineDiff(string(oldContent), string(newContent)), nil
}

// isBinaryContent reports whether content contains null bytes (binary heuristic).
func isBinaryContent(content []byte) bool {
	return bytes.IndexByte(content, 0) >= 0
}

// lineDiff returns a unified-diff-style patch for two text contents using line mode.
func lineDiff(oldContent, newContent string) string {
	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(oldContent, newContent)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffEqual:
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix + line)
		}
	}
	return sb.String()
}
