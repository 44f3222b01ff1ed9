// Package shared holds the context passed to all CLI commands.
package shared

import (
	"strconv"

	"github.com/go-ports/notekeeper/internal/service"
)

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// NotesFile overrides the backing file.
	// When empty, resolution falls through to NOTES_FILE env → persisted config → ./notes.json.
	NotesFile string

	// LogLevel overrides log.level from the global config.
	LogLevel string
}

// OpenService opens the notes service for the resolved backing file.
func (c *Context) OpenService() (*service.Service, error) {
	return service.New(c.NotesFile)
}

// ParseID parses a note id given on the command line.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &InvalidIDError{Raw: raw}
	}
	return id, nil
}

// InvalidIDError reports a note id argument that is not an integer.
type InvalidIDError struct {
	Raw string
}

func (e *InvalidIDError) Error() string {
	return "invalid note id " + strconv.Quote(e.Raw) + ": must be a number"
}
