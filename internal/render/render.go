// Package render turns a sorted entry list into index-page HTML. Rendering
// is pure: writing the result to disk is the traversal engine's job.
package render

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/harrison/indexgen/internal/models"
)

// displayNameLimit is the widest link text rendered; longer names are cut to
// truncatedNameLen characters plus an ellipsis marker.
const (
	displayNameLimit = 50
	truncatedNameLen = 47
	truncationMarker = "..>"
)

// Index renders one index page for ctx, sorted by spec. Entries must already
// be sorted by the caller for (spec.Key, spec.Reversed). readmeHTML, when
// non-empty, is appended below the listing.
func Index(ctx models.DirContext, spec models.SortSpec, entries []models.Entry, readmeHTML string) string {
	display := displayPath(ctx)

	var b strings.Builder
	b.WriteString("<html>\n")
	fmt.Fprintf(&b, "<head><title>Index of %s</title></head>\n", html.EscapeString(display))
	b.WriteString("<body bgcolor=\"white\">\n")
	fmt.Fprintf(&b, "<h1>Index of %s</h1>\n", html.EscapeString(display))
	b.WriteString("<hr><pre>")
	b.WriteString(headerLine(spec))
	b.WriteString("\n")

	if !ctx.IsRoot() {
		b.WriteString("<a href=\"../index.html\">../</a>\n")
	}

	for _, entry := range entries {
		b.WriteString(entryLine(entry))
		b.WriteString("\n")
	}

	b.WriteString("</pre><hr>\n")
	if readmeHTML != "" {
		b.WriteString(readmeHTML)
		if !strings.HasSuffix(readmeHTML, "\n") {
			b.WriteString("\n")
		}
	}
	b.WriteString("</body></html>\n")
	return b.String()
}

// displayPath renders the directory's path for titles: "/" at the root,
// otherwise the relative path with a trailing slash.
func displayPath(ctx models.DirContext) string {
	if ctx.IsRoot() {
		return "/"
	}
	return ctx.RelPath + "/"
}

// headerLine renders the three sort-order links. Each link routes through
// the click-to-reverse rule for the page's current sort.
func headerLine(spec models.SortSpec) string {
	labels := map[models.SortKey]string{
		models.SortByName:         "Name",
		models.SortByLastModified: "Last modified",
		models.SortBySize:         "Size",
	}

	parts := make([]string, 0, len(models.SortKeys))
	for _, key := range models.SortKeys {
		parts = append(parts, fmt.Sprintf("<a href=%q>%s</a>", spec.LinkTarget(key), labels[key]))
	}
	return strings.Join(parts, "  ")
}

// entryLine renders one listing line: link, padding, timestamp, size column.
// Directories link to their own index.html and show a dash instead of a
// size; files link directly to themselves.
func entryLine(entry models.Entry) string {
	display := displayName(entry.Name)
	timestamp := formatDate(entry.LastModified)

	if entry.IsDir {
		pad := padding(displayNameLimit - 1 - len([]rune(display)))
		return fmt.Sprintf("<a href=\"%s/index.html\">%s/</a>%s %s %19s",
			url.PathEscape(entry.Name), html.EscapeString(display), pad, timestamp, "-")
	}

	pad := padding(displayNameLimit - len([]rune(display)))
	return fmt.Sprintf("<a href=%q>%s</a>%s %s %19s",
		url.PathEscape(entry.Name), html.EscapeString(display), pad, timestamp, formatSize(entry.Size))
}

// displayName truncates names wider than the listing column, keeping the
// full name in the hyperlink target.
func displayName(name string) string {
	runes := []rune(name)
	if len(runes) <= displayNameLimit {
		return name
	}
	return string(runes[:truncatedNameLen]) + truncationMarker
}

func padding(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}
