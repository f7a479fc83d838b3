// Package exclude decides which names and paths are omitted from directory
// listings and from traversal.
package exclude

import (
	"strings"

	"github.com/harrison/indexgen/internal/models"
)

// indexFileNames holds the generated file names in a map for O(1) lookup.
var indexFileNames = func() map[string]bool {
	m := make(map[string]bool)
	for _, name := range models.IndexFileNames() {
		m[name] = true
	}
	return m
}()

// IsIndexFile reports whether name is one of the generated index files.
// Generated files are always excluded so index pages never list themselves
// or each other.
func IsIndexFile(name string) bool {
	return indexFileNames[name]
}

// IsHidden reports whether name carries the hidden-file marker.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Filter evaluates the caller-supplied exclusion rules for one run.
type Filter struct {
	// BasePath is stripped from paths before pattern matching so patterns
	// are written relative to the indexed tree.
	BasePath string

	// Patterns are path fragments matched anchored at the start of the
	// stripped path. An empty list excludes nothing.
	Patterns []string

	// ManifestName, when set, is dropped from listings so the metadata
	// file never appears in its own index.
	ManifestName string
}

// IsExcludedName reports whether a child should be dropped from a listing by
// name alone: generated index files and the manifest file itself.
func (f *Filter) IsExcludedName(name string) bool {
	if IsIndexFile(name) {
		return true
	}
	return f.ManifestName != "" && name == f.ManifestName
}

// IsExcludedPath reports whether fullPath matches a configured exclude
// pattern. The base path is removed by exact prefix strip first, then each
// pattern is tested anchored at the start of the remainder. This gates both
// directory recursion and individual child inclusion.
func (f *Filter) IsExcludedPath(fullPath string) bool {
	if len(f.Patterns) == 0 {
		return false
	}

	rel := models.TrimBasePath(fullPath, f.BasePath)
	for _, pattern := range f.Patterns {
		p := "/" + strings.TrimPrefix(pattern, "/")
		if rel == p || strings.HasPrefix(rel, p) {
			return true
		}
	}
	return false
}
