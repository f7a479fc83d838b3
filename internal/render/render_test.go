package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/indexgen/internal/models"
)

func epoch(value string) int64 {
	ts, err := time.ParseInLocation("2006-01-02:15:04", value, time.UTC)
	if err != nil {
		panic(err)
	}
	return ts.Unix()
}

func TestIndexBasicLayout(t *testing.T) {
	ctx := models.DirContext{AbsPath: "/srv/data/docs", RelPath: "/docs", ParentRelPath: ""}
	entries := []models.Entry{
		{Name: "img", LastModified: epoch("2021-04-06:12:00"), IsDir: true},
		{Name: "report.txt", LastModified: epoch("2021-03-04:09:15"), Size: 2048},
	}

	out := Index(ctx, models.SortSpec{Key: models.SortByName}, entries, "")

	assert.Contains(t, out, "<title>Index of /docs/</title>")
	assert.Contains(t, out, "<h1>Index of /docs/</h1>")
	assert.Contains(t, out, `<a href="../index.html">../</a>`)

	// Directory line: link to its own index, dash for size.
	assert.Contains(t, out, `<a href="img/index.html">img/</a>`)
	dirLine := lineContaining(t, out, "img/index.html")
	assert.True(t, strings.HasSuffix(dirLine, "-"), "directory line ends with the size sentinel: %q", dirLine)
	assert.Contains(t, dirLine, "06-Apr-2021 12:00")

	// File line: direct link, formatted size and timestamp.
	fileLine := lineContaining(t, out, "report.txt")
	assert.Contains(t, fileLine, `<a href="report.txt">report.txt</a>`)
	assert.Contains(t, fileLine, "04-Mar-2021 09:15")
	assert.True(t, strings.HasSuffix(fileLine, "2.0KiB"), "file line ends with the size column: %q", fileLine)
}

func TestIndexRootHasNoParentLink(t *testing.T) {
	ctx := models.DirContext{AbsPath: "/srv/data", RelPath: ""}
	out := Index(ctx, models.SortSpec{}, nil, "")

	assert.Contains(t, out, "<title>Index of /</title>")
	assert.NotContains(t, out, "../index.html")
}

func TestIndexHeaderLinksFollowToggleRule(t *testing.T) {
	ctx := models.DirContext{AbsPath: "/srv/data", RelPath: ""}

	// On the name-ascending page, the Name header links to the reversed
	// variant and the other headers link ascending.
	out := Index(ctx, models.SortSpec{Key: models.SortByName}, nil, "")
	assert.Contains(t, out, `<a href="index_by_name_reverse.html">Name</a>`)
	assert.Contains(t, out, `<a href="index_by_lastModified.html">Last modified</a>`)
	assert.Contains(t, out, `<a href="index_by_size.html">Size</a>`)

	// On the size-descending page, the Size header links back ascending.
	out = Index(ctx, models.SortSpec{Key: models.SortBySize, Reversed: true}, nil, "")
	assert.Contains(t, out, `<a href="index_by_size.html">Size</a>`)
	assert.Contains(t, out, `<a href="index_by_name.html">Name</a>`)
}

func TestIndexTruncatesLongNames(t *testing.T) {
	long := strings.Repeat("a", 60) + ".txt"
	ctx := models.DirContext{AbsPath: "/srv/data", RelPath: ""}
	entries := []models.Entry{{Name: long, LastModified: 0, Size: 1}}

	out := Index(ctx, models.SortSpec{Key: models.SortByName}, entries, "")

	// Display text is cut to 47 characters plus the ellipsis marker.
	assert.Contains(t, out, strings.Repeat("a", 47)+"..&gt;</a>")
	assert.NotContains(t, out, ">"+long+"</a>")

	// The hyperlink target keeps the full name.
	assert.Contains(t, out, `href="`+long+`"`)
}

func TestIndexEscapesNames(t *testing.T) {
	ctx := models.DirContext{AbsPath: "/srv/data", RelPath: ""}
	entries := []models.Entry{{Name: "a b<c.txt", LastModified: 0, Size: 1}}

	out := Index(ctx, models.SortSpec{Key: models.SortByName}, entries, "")

	// Href is percent-encoded, display text is HTML-escaped.
	assert.Contains(t, out, `href="a%20b%3Cc.txt"`)
	assert.Contains(t, out, ">a b&lt;c.txt</a>")
}

func TestIndexAppendsReadme(t *testing.T) {
	ctx := models.DirContext{AbsPath: "/srv/data", RelPath: ""}
	readme, err := Readme([]byte("# Hello\n\nSome *notes*.\n"))
	require.NoError(t, err)

	out := Index(ctx, models.SortSpec{}, nil, readme)
	assert.Contains(t, out, "<h1>Hello</h1>")
	assert.Contains(t, out, "<em>notes</em>")

	idx := strings.Index(out, "</pre><hr>")
	require.GreaterOrEqual(t, idx, 0)
	assert.Greater(t, strings.Index(out, "<h1>Hello</h1>"), idx, "readme is rendered below the listing")
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.0B"},
		{512, "512.0B"},
		{2048, "2.0KiB"},
		{1536, "1.5KiB"},
		{5 * 1024 * 1024, "5.0MiB"},
		{3 * 1024 * 1024 * 1024, "3.0GiB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.bytes); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate(epoch("2021-03-04:09:15")); got != "04-Mar-2021 09:15" {
		t.Errorf("formatDate = %q, want %q", got, "04-Mar-2021 09:15")
	}
}

func lineContaining(t *testing.T, text, substr string) string {
	t.Helper()
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	t.Fatalf("no line containing %q", substr)
	return ""
}
