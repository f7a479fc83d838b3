package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// Readme converts README.md markdown into the HTML fragment appended below
// a directory listing.
func Readme(markdown []byte) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert(markdown, &buf); err != nil {
		return "", fmt.Errorf("failed to render readme: %w", err)
	}
	return buf.String(), nil
}
