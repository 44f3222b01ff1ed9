// Package e2e_test contains end-to-end tests that exercise the full notes CLI
// by importing the root command and running it in-process against a temporary
// notes file. Output is captured via cobra's SetOut so tests never touch
// os.Stdout.
package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	rootcmd "github.com/go-ports/notekeeper/cmd/notes/root"
	"github.com/go-ports/notekeeper/internal/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// isolate points the global config and NOTES_FILE away from the real user
// environment and returns a notes file path inside a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("NOTES_CONFIG", filepath.Join(dir, "config.yaml"))
	t.Setenv("NOTES_FILE", "")
	return filepath.Join(dir, "notes.json")
}

// runCmd executes the root command with the provided args and stdin and
// returns the captured stdout along with any execution error.
func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := rootcmd.New()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	execErr := root.ExecuteContext(context.Background())

	return out.String(), execErr
}

// readNotes decodes the backing file.
func readNotes(c *qt.C, path string) []models.Note {
	data, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	var notes []models.Note
	c.Assert(json.Unmarshal(data, &notes), qt.IsNil)
	return notes
}

// ---------------------------------------------------------------------------
// Help / version
// ---------------------------------------------------------------------------

func TestHelp_HappyPath(t *testing.T) {
	c := qt.New(t)
	isolate(t)

	out, err := runCmd(t, "", "--help")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "notes")
	c.Assert(out, qt.Contains, "filter")
	c.Assert(out, qt.Contains, "--file")
}

func TestVersion_HappyPath(t *testing.T) {
	c := qt.New(t)
	isolate(t)

	out, err := runCmd(t, "", "version")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Matches, `notes \S+ \(commit \S+, built \S+\)\n`)
}

// ---------------------------------------------------------------------------
// Init
// ---------------------------------------------------------------------------

func TestInit_HappyPath(t *testing.T) {
	c := qt.New(t)
	file := isolate(t)

	out, err := runCmd(t, "", "--file", file, "init")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Notes file initialized at "+file)
	c.Assert(readNotes(c, file), qt.HasLen, 0)

	out, err = runCmd(t, "", "--file", file, "init")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "already exists")
}

// ---------------------------------------------------------------------------
// Add / list / show
// ---------------------------------------------------------------------------

func TestAdd_HappyPath(t *testing.T) {
	c := qt.New(t)
	file := isolate(t)

	out, err := runCmd(t, "", "--file", file, "add", "--title", "Groceries", "--body", "Milk, eggs")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Note added successfully:")
	c.Assert(out, qt.Contains, "[1] Groceries (")

	_, err = runCmd(t, "", "--file", file, "add", "--title", "Standup")
	c.Assert(err, qt.IsNil)

	notes := readNotes(c, file)
	c.Assert(notes, qt.HasLen, 2)
	c.Assert(notes[1].ID, qt.Equals, 2)
	c.Assert(notes[1].Body, qt.Equals, "")

	out, err = runCmd(t, "", "--file", file, "list")
	c.Assert(err, qt.IsNil)
	c.Assert(strings.Index(out, "Groceries") < strings.Index(out, "Standup"), qt.IsTrue)
	c.Assert(out, qt.Contains, "    Milk, eggs\n")

	out, err = runCmd(t, "", "--file", file, "show", "2")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "[2] Standup")
	c.Assert(out, qt.Not(qt.Contains), "Groceries")
}

func TestAdd_FailurePath(t *testing.T) {
	c := qt.New(t)
	file := isolate(t)

	_, err := runCmd(t, "", "--file", file, "add", "--body", "no title")
	c.Assert(err, qt.ErrorMatches, `.*required flag.*title.*`)

	c.Run("corrupt file is reported and left alone", func(c *qt.C) {
		c.Assert(os.WriteFile(file, []byte(`{"not":"an array"}`), 0o600), qt.IsNil)
		_, err := runCmd(t, "", "--file", file, "add", "--title", "x")
		c.Assert(err, qt.ErrorMatches, `.*notes file is corrupt.*`)

		data, err := os.ReadFile(file)
		c.Assert(err, qt.IsNil)
		c.Assert(string(data), qt.Equals, `{"not":"an array"}`)
	})
}

func TestList_Empty_HappyPath(t *testing.T) {
	c := qt.New(t)
	file := isolate(t)

	out, err := runCmd(t, "", "--file", file, "list")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "No notes available.\n")

	_, err = os.Stat(file)
	c.Assert(os.IsNotExist(err), qt.IsTrue)
}

func TestShow_FailurePath(t *testing.T) {
	c := qt.New(t)
	file := isolate(t)

	out, err := runCmd(t, "", "--file", file, "show", "5")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "Note with ID 5 not found.\n")

	_, err = runCmd(t, "", "--file", file, "show", "five")
	c.Assert(err, qt.ErrorMatches, `invalid note id "five": must be a number`)
}

// ---------------------------------------------------------------------------
// Edit / delete
// ---------------------------------------------------------------------------

func TestEdit_HappyPath(t *testing.T) {
	c := qt.New(t)
	file := isolate(t)

	_, err := runCmd(t, "", "--file", file, "add", "--title", "old", "--body", "old body")
	c.Assert(err, qt.IsNil)

	out, err := runCmd(t, "", "--file", file, "edit", "1", "--title", "new", "--body", "")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Note 1 edited successfully:")

	notes := readNotes(c, file)
	c.Assert(notes[0].Title, qt.Equals, "new")
	c.Assert(notes[0].Body, qt.Equals, "")
}

func TestEdit_FailurePath(t *testing.T) {
	c := qt.New(t)
	file := isolate(t)

	_, err := runCmd(t, "", "--file", file, "add", "--title", "keep")
	c.Assert(err, qt.IsNil)
	before, err := os.ReadFile(file)
	c.Assert(err, qt.IsNil)

	_, err = runCmd(t, "", "--file", file, "edit", "9", "--title", "x", "--body", "y")
	c.Assert(err, qt.ErrorMatches, `Edit: note not found.*`)

	after, err := os.ReadFile(file)
	c.Assert(err, qt.IsNil)
	c.Assert(after, qt.DeepEquals, before)
}

func TestDelete_HappyPath(t *testing.T) {
	c := qt.New(t)
	file := isolate(t)

	for _, title := range []string{"a", "b", "c"} {
		_, err := runCmd(t, "", "--file", file, "add", "--title", title)
		c.Assert(err, qt.IsNil)
	}

	out, err := runCmd(t, "", "--file", file, "delete", "2")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "Note 2 deleted successfully.\n")

	notes := readNotes(c, file)
	c.Assert(notes, qt.HasLen, 2)
	c.Assert(notes[0].ID, qt.Equals, 1)
	c.Assert(notes[1].ID, qt.Equals, 3)

	c.Run("add after delete repeats count+1", func(c *qt.C) {
		_, err := runCmd(t, "", "--file", file, "add", "--title", "d")
		c.Assert(err, qt.IsNil)
		notes := readNotes(c, file)
		c.Assert(notes[2].ID, qt.Equals, 3)
	})
}

func TestDelete_NotFound_HappyPath(t *testing.T) {
	c := qt.New(t)
	file := isolate(t)

	out, err := runCmd(t, "", "--file", file, "delete", "42")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "No note found with ID 42.\n")
	c.Assert(readNotes(c, file), qt.HasLen, 0)
}

// ---------------------------------------------------------------------------
// Filter
// ---------------------------------------------------------------------------

func TestFilter_HappyPath(t *testing.T) {
	c := qt.New(t)
	file := isolate(t)

	seed := `[
  {"note_id": 1, "title": "jan", "body": "", "timestamp": "2024-01-15 09:00:00"},
  {"note_id": 2, "title": "feb", "body": "", "timestamp": "2024-02-15 09:00:00"},
  {"note_id": 3, "title": "mar", "body": "", "timestamp": "2024-03-15 09:00:00"}
]`
	c.Assert(os.WriteFile(file, []byte(seed), 0o600), qt.IsNil)

	out, err := runCmd(t, "", "--file", file, "filter", "2024-02-15 09:00:00", "2024-03-15 09:00:00")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "[2] feb (2024-02-15 09:00:00)\n[3] mar (2024-03-15 09:00:00)\n")

	out, err = runCmd(t, "", "--file", file, "filter", "2025-01-01 00:00:00", "2025-12-31 00:00:00")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "No notes found within the specified date range.\n")
}

func TestFilter_FailurePath(t *testing.T) {
	c := qt.New(t)
	file := isolate(t)

	_, err := runCmd(t, "", "--file", file, "filter", "2024-01-01", "2024-12-31 00:00:00")
	c.Assert(err, qt.ErrorMatches, `FilterByDate: invalid date format.*`)

	_, err = runCmd(t, "", "--file", file, "filter", "2024-01-01 00:00:00")
	c.Assert(err, qt.IsNotNil)
}

// ---------------------------------------------------------------------------
// Search / export
// ---------------------------------------------------------------------------

func TestSearch_HappyPath(t *testing.T) {
	c := qt.New(t)
	file := isolate(t)

	_, err := runCmd(t, "", "--file", file, "add", "--title", "Groceries", "--body", "Milk, eggs")
	c.Assert(err, qt.IsNil)
	_, err = runCmd(t, "", "--file", file, "add", "--title", "Standup", "--body", "release plan")
	c.Assert(err, qt.IsNil)

	out, err := runCmd(t, "", "--file", file, "search", "milk")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Results (1 found)")
	c.Assert(out, qt.Contains, "[1] Groceries")

	out, err = runCmd(t, "", "--file", file, "search", "nothing-matches-this")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "No results found.\n")
}

func TestExport_HappyPath(t *testing.T) {
	c := qt.New(t)
	file := isolate(t)

	_, err := runCmd(t, "", "--file", file, "add", "--title", "Groceries", "--body", "Milk")
	c.Assert(err, qt.IsNil)

	out, err := runCmd(t, "", "--file", file, "export")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "# Notes")
	c.Assert(out, qt.Contains, "### Groceries")

	dest := filepath.Join(t.TempDir(), "notes.md")
	out, err = runCmd(t, "", "--file", file, "export", "--out", dest)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "Exported 1 notes to "+dest+"\n")
	data, err := os.ReadFile(dest)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Contains, "count: 1")
}

// ---------------------------------------------------------------------------
// Config / file resolution
// ---------------------------------------------------------------------------

func TestConfig_HappyPath(t *testing.T) {
	c := qt.New(t)
	isolate(t)
	target := filepath.Join(t.TempDir(), "persisted.json")

	out, err := runCmd(t, "", "config", "set-file", target)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Persisted notes file: "+target)

	out, err = runCmd(t, "", "config")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "notes_file: "+target)
	c.Assert(out, qt.Contains, "notes_file_source: config")

	_, err = runCmd(t, "", "add", "--title", "via config")
	c.Assert(err, qt.IsNil)
	c.Assert(readNotes(c, target), qt.HasLen, 1)

	c.Run("env overrides config", func(c *qt.C) {
		envFile := filepath.Join(t.TempDir(), "env.json")
		c.Setenv("NOTES_FILE", envFile)
		out, err := runCmd(t, "", "config")
		c.Assert(err, qt.IsNil)
		c.Assert(out, qt.Contains, "notes_file_source: env")
	})

	out, err = runCmd(t, "", "config", "clear-file")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Cleared persisted notes file setting.")

	out, err = runCmd(t, "", "config", "clear-file")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "No persisted notes file setting was found.")
}

func TestConfigInit_HappyPath(t *testing.T) {
	c := qt.New(t)
	isolate(t)

	out, err := runCmd(t, "", "config", "init")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Created ")

	out, err = runCmd(t, "", "config", "init")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Use --force to overwrite.")

	out, err = runCmd(t, "", "config")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "level: warn")
	c.Assert(out, qt.Contains, "notes_file_source: default")
}

func TestLogLevel_FailurePath(t *testing.T) {
	c := qt.New(t)
	file := isolate(t)

	_, err := runCmd(t, "", "--file", file, "--log-level", "loud", "list")
	c.Assert(err, qt.ErrorMatches, `invalid --log-level "loud"`)
}
