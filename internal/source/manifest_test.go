package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/indexgen/internal/exclude"
	"github.com/harrison/indexgen/internal/models"
)

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newManifestSource(name, delimiter string) *ManifestSource {
	return &ManifestSource{
		Filter:       &exclude.Filter{ManifestName: name},
		Log:          discardLogger{},
		ManifestName: name,
		Delimiter:    delimiter,
		Now:          func() time.Time { return time.Unix(1600000000, 0) },
	}
}

func TestManifestSourceList(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "contents.txt",
		"report.txt;2021-03-04;09:15;2048\n"+
			"docs\n"+
			"\n"+
			"index.html;2021-01-01;00:00;10\n")

	src := newManifestSource("contents.txt", ";")
	entries, err := src.List(models.NewDirContext(dir, dir))
	require.NoError(t, err)
	require.Len(t, entries, 2, "blank lines and generated index names are dropped")

	report := entries[0]
	assert.Equal(t, "report.txt", report.Name)
	assert.False(t, report.IsDir)
	assert.Equal(t, int64(2048), report.Size)

	want, err := time.ParseInLocation("2006-01-02:15:04", "2021-03-04:09:15", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, want.Unix(), report.LastModified)

	docs := entries[1]
	assert.Equal(t, "docs", docs.Name)
	assert.True(t, docs.IsDir)
	assert.Equal(t, int64(0), docs.Size)
	assert.Equal(t, int64(1600000000), docs.LastModified, "directory placeholders use the current time")
}

func TestManifestSourceCustomDelimiter(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "contents.txt", "a.bin|2020-06-01|12:30|7\n")

	src := newManifestSource("contents.txt", "|")
	entries, err := src.List(models.NewDirContext(dir, dir))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(7), entries[0].Size)
}

func TestManifestSourceMalformedLineIsFatal(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong field count", "a.bin;2020-06-01;12:30\n"},
		{"bad date", "a.bin;yesterday;12:30;7\n"},
		{"bad size", "a.bin;2020-06-01;12:30;lots\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, "contents.txt", tt.content)

			src := newManifestSource("contents.txt", ";")
			_, err := src.List(models.NewDirContext(dir, dir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestManifestSourceMissingManifest(t *testing.T) {
	src := newManifestSource("contents.txt", ";")
	_, err := src.List(models.NewDirContext(t.TempDir(), "/"))
	assert.Error(t, err)
}
