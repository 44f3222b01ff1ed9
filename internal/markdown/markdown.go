// Package markdown renders notes as an Obsidian-compatible Markdown document.
package markdown

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-ports/notekeeper/internal/models"
)

// frontmatter is the YAML header written at the top of an export.
type frontmatter struct {
	Source   string `yaml:"source"`
	Exported string `yaml:"exported"`
	Count    int    `yaml:"count"`
}

// RenderNote produces a single ### heading block for a note.
func RenderNote(n models.Note) string {
	var sb strings.Builder
	sb.WriteString("### ")
	sb.WriteString(n.Title)
	sb.WriteString("\n*")
	sb.WriteString(n.Timestamp)
	sb.WriteString("* · id ")
	fmt.Fprintf(&sb, "%d", n.ID)
	if n.Body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(n.Body)
	}
	return sb.String()
}

// Write renders notes, in order, as one document to w. source records where
// the notes came from (normally the backing file path).
func Write(w io.Writer, notes []models.Note, source string, exportedAt time.Time) error {
	fm, err := yaml.Marshal(frontmatter{
		Source:   source,
		Exported: models.FormatTimestamp(exportedAt),
		Count:    len(notes),
	})
	if err != nil {
		return fmt.Errorf("markdown: frontmatter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(fm)
	sb.WriteString("---\n\n# Notes\n")
	if len(notes) == 0 {
		sb.WriteString("\n_No notes._\n")
	}
	for _, n := range notes {
		sb.WriteString("\n")
		sb.WriteString(RenderNote(n))
		sb.WriteString("\n")
	}

	_, err = io.WriteString(w, sb.String())
	return err
}
