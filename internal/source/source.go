// Package source supplies the children of a directory being indexed, either
// from the live filesystem or from a delimited metadata manifest.
package source

import (
	"github.com/harrison/indexgen/internal/models"
)

// Source lists the immediate children of one directory. Implementations
// apply the name-level exclusions (generated index files, the manifest file
// itself) so no listing ever contains its own output.
type Source interface {
	List(ctx models.DirContext) ([]models.Entry, error)
}
