// Package display formats notes for terminal output.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-ports/notekeeper/internal/models"
)

// Note writes one note as a header line followed by its indented body.
func Note(w io.Writer, n models.Note) {
	fmt.Fprintf(w, "[%d] %s (%s)\n", n.ID, n.Title, n.Timestamp)
	if n.Body == "" {
		return
	}
	for _, line := range strings.Split(n.Body, "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
}

// Notes writes every note in order, or empty when there are none.
func Notes(w io.Writer, notes []models.Note, empty string) {
	if len(notes) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	for _, n := range notes {
		Note(w, n)
	}
}
