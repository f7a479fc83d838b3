package models

// SortKey identifies the attribute a directory listing is ordered by.
type SortKey string

const (
	SortByName         SortKey = "name"
	SortByLastModified SortKey = "lastModified"
	SortBySize         SortKey = "size"
)

// SortKeys lists the keys in the order their header links are rendered.
var SortKeys = []SortKey{SortByName, SortByLastModified, SortBySize}

// DefaultIndexFileName is the landing page written for every directory.
// It is an alias for name-ascending order and must carry content identical
// to index_by_name.html.
const DefaultIndexFileName = "index.html"

// SortSpec pairs a sort key with a direction. The zero value is the default
// landing order (name, ascending).
type SortSpec struct {
	Key      SortKey
	Reversed bool
}

// AllSortSpecs returns the six key/direction combinations, ascending before
// descending for each key.
func AllSortSpecs() []SortSpec {
	specs := make([]SortSpec, 0, len(SortKeys)*2)
	for _, key := range SortKeys {
		specs = append(specs, SortSpec{Key: key}, SortSpec{Key: key, Reversed: true})
	}
	return specs
}

// FileName returns the generated file this spec is written to, e.g.
// index_by_size_reverse.html. The mapping is total: every spec has exactly
// one name and no name is built by string concatenation at call sites.
func (s SortSpec) FileName() string {
	name := "index_by_" + string(s.Key)
	if s.Reversed {
		name += "_reverse"
	}
	return name + ".html"
}

// LinkTarget returns the file a column header for candidate should link to
// on a page currently sorted by s. Clicking the key the page is already
// sorted by toggles the direction; clicking any other key starts it ascending.
func (s SortSpec) LinkTarget(candidate SortKey) string {
	if candidate == s.Key {
		return SortSpec{Key: s.Key, Reversed: !s.Reversed}.FileName()
	}
	return SortSpec{Key: candidate}.FileName()
}

// IndexFileNames returns every file name the generator may write for a
// directory: the six sort-order files plus the index.html alias.
func IndexFileNames() []string {
	names := []string{DefaultIndexFileName}
	for _, spec := range AllSortSpecs() {
		names = append(names, spec.FileName())
	}
	return names
}
