package source

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harrison/indexgen/internal/exclude"
	"github.com/harrison/indexgen/internal/logger"
	"github.com/harrison/indexgen/internal/models"
)

// manifestTimeLayout parses the date and time fields of a manifest line
// joined with ':'.
const manifestTimeLayout = "2006-01-02:15:04"

// ErrManifestParse marks a malformed manifest line. The manifest is trusted,
// generated input, so callers treat this as fatal for the whole run rather
// than skipping the subtree like an ordinary enumeration failure.
var ErrManifestParse = errors.New("malformed manifest line")

// ManifestSource reads directory children from a delimited metadata file
// located inside each directory, instead of statting the filesystem.
//
// Each manifest line is either a bare directory name, or four fields:
// name, date (YYYY-MM-DD), time (HH:MM) and size in bytes. Bare directories
// get size 0 and the current time as a placeholder. Malformed lines are
// fatal for the run: the manifest is trusted, generated input, and skipping
// lines would publish an index that claims to be complete but is not.
type ManifestSource struct {
	Filter       *exclude.Filter
	Log          logger.Logger
	ManifestName string
	Delimiter    string

	// Now stands in for time.Now in tests.
	Now func() time.Time
}

// List parses the manifest file in ctx.AbsPath and returns its entries.
func (s *ManifestSource) List(ctx models.DirContext) ([]models.Entry, error) {
	path := filepath.Join(ctx.AbsPath, s.ManifestName)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	defer file.Close()

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	var entries []models.Entry
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry, ok, err := s.parseLine(line, now)
		if err != nil {
			return nil, fmt.Errorf("manifest %s line %d: %w: %v", path, lineNo, ErrManifestParse, err)
		}
		if ok {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return entries, nil
}

// parseLine converts one manifest line into an entry. The second return
// value is false when the line names an excluded file.
func (s *ManifestSource) parseLine(line string, now func() time.Time) (models.Entry, bool, error) {
	fields := strings.Split(line, s.Delimiter)
	name := fields[0]

	if s.Filter.IsExcludedName(name) {
		return models.Entry{}, false, nil
	}

	// A bare name is a directory placeholder to be visited.
	if len(fields) == 1 {
		return models.Entry{
			Name:         name,
			LastModified: now().Unix(),
			Size:         0,
			IsDir:        true,
		}, true, nil
	}

	if len(fields) != 4 {
		return models.Entry{}, false, fmt.Errorf("expected 1 or 4 fields separated by %q, got %d", s.Delimiter, len(fields))
	}

	ts, err := time.ParseInLocation(manifestTimeLayout, fields[1]+":"+fields[2], time.UTC)
	if err != nil {
		return models.Entry{}, false, fmt.Errorf("invalid last-modified %q: %w", fields[1]+":"+fields[2], err)
	}

	size, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return models.Entry{}, false, fmt.Errorf("invalid size %q: %w", fields[3], err)
	}

	return models.Entry{
		Name:         name,
		LastModified: ts.Unix(),
		Size:         size,
		IsDir:        false,
	}, true, nil
}

var _ Source = (*FilesystemSource)(nil)
var _ Source = (*ManifestSource)(nil)
