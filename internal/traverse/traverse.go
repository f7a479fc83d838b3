// Package traverse walks a directory tree and writes the generated index
// pages for every directory it visits.
package traverse

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/harrison/indexgen/internal/exclude"
	"github.com/harrison/indexgen/internal/filelock"
	"github.com/harrison/indexgen/internal/logger"
	"github.com/harrison/indexgen/internal/models"
	"github.com/harrison/indexgen/internal/render"
	"github.com/harrison/indexgen/internal/source"
)

// ErrNotDirectory is returned when the configured root path is missing or
// not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Stats counts the work performed by one run. Counters are updated
// atomically so parallel subtree walkers can share one value.
type Stats struct {
	DirsIndexed  int64
	FilesWritten int64
	Skipped      int64
}

// Walker drives the recursive walk: enumerate each directory through the
// source, filter children, render the sort-order pages and recurse into
// subdirectories. Each directory owns its entries and output files
// exclusively, so sibling subtrees are safe to walk in parallel.
type Walker struct {
	Source   source.Source
	Filter   *exclude.Filter
	Log      logger.Logger
	BasePath string

	// DryRun logs intended writes without touching the tree.
	DryRun bool

	// Concurrency bounds how many sibling subtrees are walked at once.
	// Values below 2 keep the walk sequential.
	Concurrency int

	// RenderReadme appends a rendered README.md below each listing.
	// Disabled in manifest mode where file contents are not real.
	RenderReadme bool
}

// Walk indexes the tree rooted at root. Enumeration failures below the root
// are logged and skipped per subtree; an invalid root and malformed manifest
// lines are fatal.
func (w *Walker) Walk(root string) (*Stats, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	stats := &Stats{}
	if err := w.walkDir(models.NewDirContext(root, w.BasePath), stats); err != nil {
		return stats, err
	}
	return stats, nil
}

// walkDir processes one directory. A directory that cannot be enumerated
// loses its own subtree only; a manifest parse error is the one enumeration
// failure that propagates and aborts the run.
func (w *Walker) walkDir(ctx models.DirContext, stats *Stats) error {
	if w.Filter.IsExcludedPath(ctx.AbsPath) {
		w.Log.LogDebug(fmt.Sprintf("excluding: %s", ctx.AbsPath))
		return nil
	}

	entries, err := w.Source.List(ctx)
	if err != nil {
		if errors.Is(err, source.ErrManifestParse) {
			return err
		}
		w.Log.LogError(fmt.Sprintf("skipping subtree %s: %v", ctx.AbsPath, err))
		atomic.AddInt64(&stats.Skipped, 1)
		return nil
	}

	kept := entries[:0]
	for _, entry := range entries {
		if w.Filter.IsExcludedPath(filepath.Join(ctx.AbsPath, entry.Name)) {
			w.Log.LogDebug(fmt.Sprintf("excluding: %s", filepath.Join(ctx.AbsPath, entry.Name)))
			continue
		}
		kept = append(kept, entry)
	}

	w.writeIndexes(ctx, kept, stats)
	atomic.AddInt64(&stats.DirsIndexed, 1)

	return w.recurse(ctx, kept, stats)
}

// writeIndexes renders and writes the seven index files for one directory:
// the six sort-order pages plus the index.html alias, which reuses the
// name-ascending render so both files are byte-identical.
func (w *Walker) writeIndexes(ctx models.DirContext, entries []models.Entry, stats *Stats) {
	readmeHTML := w.readme(ctx, entries)

	for _, spec := range models.AllSortSpecs() {
		sorted := append([]models.Entry(nil), entries...)
		models.SortEntries(sorted, spec)
		page := render.Index(ctx, spec, sorted, readmeHTML)

		w.writeFile(filepath.Join(ctx.AbsPath, spec.FileName()), page, stats)
		if spec == (models.SortSpec{Key: models.SortByName}) {
			w.writeFile(filepath.Join(ctx.AbsPath, models.DefaultIndexFileName), page, stats)
		}
	}
}

// writeFile performs one atomic page write, or logs it in dry-run mode.
// A failed write is logged and the run continues.
func (w *Walker) writeFile(path, content string, stats *Stats) {
	if w.DryRun {
		w.Log.LogInfo(fmt.Sprintf("Would create: %s", path))
		return
	}

	if err := filelock.AtomicWrite(path, []byte(content)); err != nil {
		w.Log.LogError(fmt.Sprintf("failed to write %s: %v", path, err))
		atomic.AddInt64(&stats.Skipped, 1)
		return
	}

	w.Log.LogInfo(fmt.Sprintf("Wrote: %s", path))
	atomic.AddInt64(&stats.FilesWritten, 1)
}

// readme loads and renders README.md when the listing contains one.
func (w *Walker) readme(ctx models.DirContext, entries []models.Entry) string {
	if !w.RenderReadme {
		return ""
	}

	found := false
	for _, entry := range entries {
		if entry.Name == "README.md" && !entry.IsDir {
			found = true
			break
		}
	}
	if !found {
		return ""
	}

	data, err := os.ReadFile(filepath.Join(ctx.AbsPath, "README.md"))
	if err != nil {
		w.Log.LogWarn(fmt.Sprintf("failed to read %s: %v", filepath.Join(ctx.AbsPath, "README.md"), err))
		return ""
	}

	html, err := render.Readme(data)
	if err != nil {
		w.Log.LogWarn(fmt.Sprintf("failed to render %s: %v", filepath.Join(ctx.AbsPath, "README.md"), err))
		return ""
	}
	return html
}

// recurse visits every surviving child directory, in parallel when
// Concurrency allows it. Ordinary child failures are absorbed inside
// walkDir; only fatal errors surface through the group.
func (w *Walker) recurse(ctx models.DirContext, entries []models.Entry, stats *Stats) error {
	limit := w.Concurrency
	if limit < 1 {
		limit = 1
	}

	var group errgroup.Group
	group.SetLimit(limit)

	for _, entry := range entries {
		if !entry.IsDir {
			continue
		}
		childCtx := models.NewDirContext(filepath.Join(ctx.AbsPath, entry.Name), w.BasePath)
		group.Go(func() error {
			return w.walkDir(childCtx, stats)
		})
	}

	return group.Wait()
}
