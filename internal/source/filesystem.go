package source

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/indexgen/internal/exclude"
	"github.com/harrison/indexgen/internal/logger"
	"github.com/harrison/indexgen/internal/models"
)

// FilesystemSource reads directory children from the live filesystem.
type FilesystemSource struct {
	Filter *exclude.Filter
	Log    logger.Logger
}

// List enumerates the real children of ctx.AbsPath, stats each one and
// returns the surviving entries. Hidden names and name-level exclusions are
// dropped. A child that vanishes between the listing and the stat is logged
// and skipped; only the enumeration itself failing is an error.
func (s *FilesystemSource) List(ctx models.DirContext) ([]models.Entry, error) {
	children, err := os.ReadDir(ctx.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", ctx.AbsPath, err)
	}

	entries := make([]models.Entry, 0, len(children))
	for _, child := range children {
		name := child.Name()
		if exclude.IsHidden(name) {
			continue
		}
		if s.Filter.IsExcludedName(name) {
			continue
		}

		info, err := child.Info()
		if err != nil {
			// The child disappeared between ReadDir and stat.
			s.Log.LogError(fmt.Sprintf("skipping '%s' because the file cannot be read: %v", filepath.Join(ctx.AbsPath, name), err))
			continue
		}

		entries = append(entries, models.Entry{
			Name:         name,
			LastModified: info.ModTime().Unix(),
			Size:         info.Size(),
			IsDir:        child.IsDir(),
		})
	}

	return entries, nil
}
