package models

import (
	"path/filepath"
	"sort"
	"strings"
)

// Entry describes one child of an indexed directory.
// Entries are value types: constructed by a source, sorted and rendered,
// then discarded with the directory they belong to.
type Entry struct {
	Name         string // Base name of the file or directory
	LastModified int64  // Modification time in seconds since the Unix epoch (UTC)
	Size         int64  // Size in bytes (0 for directory placeholders)
	IsDir        bool   // Whether the entry is itself a directory
}

// DirContext carries the paths for one directory being indexed.
type DirContext struct {
	AbsPath       string // Absolute path on disk
	RelPath       string // AbsPath with the base path removed ("" at the tree root)
	ParentRelPath string // RelPath of the parent ("" for the root and its children)
}

// NewDirContext builds the context for absPath under basePath.
// RelPath keeps a leading separator ("/sub/dir") so display paths and
// parent links compose without special cases.
func NewDirContext(absPath, basePath string) DirContext {
	rel := TrimBasePath(absPath, basePath)

	parent := ""
	if i := strings.LastIndex(rel, "/"); i > 0 {
		parent = rel[:i]
	}

	return DirContext{
		AbsPath:       absPath,
		RelPath:       rel,
		ParentRelPath: parent,
	}
}

// IsRoot reports whether the context describes the top of the indexed tree.
func (c DirContext) IsRoot() bool {
	return c.RelPath == ""
}

// TrimBasePath removes base from the front of path. The removal is an exact
// leading-prefix strip on a path-segment boundary: a base path string that
// recurs deeper inside the path is never touched. Returns "" when path and
// base are the same directory, and path unchanged when path is not under base.
func TrimBasePath(path, base string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	base = filepath.ToSlash(filepath.Clean(base))

	if base == "." || base == "/" {
		return path
	}
	if path == base {
		return ""
	}
	if strings.HasPrefix(path, base+"/") {
		return path[len(base):]
	}
	return path
}

// SortEntries orders entries in place by the given key and direction.
// The sort is stable, so entries equal under the key keep their input order
// and directories and files interleave freely within the same key.
func SortEntries(entries []Entry, spec SortSpec) {
	less := func(a, b Entry) bool {
		switch spec.Key {
		case SortByLastModified:
			return a.LastModified < b.LastModified
		case SortBySize:
			return a.Size < b.Size
		default:
			return a.Name < b.Name
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if spec.Reversed {
			return less(entries[j], entries[i])
		}
		return less(entries[i], entries[j])
	})
}
