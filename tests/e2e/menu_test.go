package e2e_test

import (
	"os"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

// menuInput joins scripted answers into one stdin stream.
func menuInput(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestMenu_HappyPath(t *testing.T) {
	c := qt.New(t)
	file := isolate(t)

	out, err := runCmd(t, menuInput(
		"1", "Groceries", "Milk, eggs",
		"1", "Standup", "",
		"3", "2", "Standup moved", "Now at 10",
		"4", "1",
		"2",
		"6",
	), "--file", file)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Note added successfully:")
	c.Assert(out, qt.Contains, "Note 2 edited successfully:")
	c.Assert(out, qt.Contains, "Note 1 deleted successfully.")
	c.Assert(out, qt.HasSuffix, "Exiting the Notes App. Goodbye!\n")

	notes := readNotes(c, file)
	c.Assert(notes, qt.HasLen, 1)
	c.Assert(notes[0].ID, qt.Equals, 2)
	c.Assert(notes[0].Title, qt.Equals, "Standup moved")
	c.Assert(notes[0].Body, qt.Equals, "Now at 10")
}

func TestMenu_PersistsAcrossRuns(t *testing.T) {
	c := qt.New(t)
	file := isolate(t)

	_, err := runCmd(t, menuInput("1", "First", "body", "6"), "--file", file)
	c.Assert(err, qt.IsNil)

	out, err := runCmd(t, menuInput("2", "6"), "--file", file)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "[1] First (")
	c.Assert(out, qt.Contains, "    body\n")
}

func TestMenu_FailurePath(t *testing.T) {
	c := qt.New(t)

	c.Run("invalid input keeps the loop running until EOF", func(c *qt.C) {
		file := isolate(t)
		out, err := runCmd(t, menuInput("9", "3", "abc", "5", "bad", "bad"), "--file", file)
		c.Assert(err, qt.IsNil)
		c.Assert(out, qt.Contains, "Invalid command. Please choose a valid option.")
		c.Assert(out, qt.Contains, `Invalid ID "abc". Please enter a number.`)
		c.Assert(out, qt.Contains, "Invalid date format. Use YYYY-MM-DD HH:MM:SS.")
		c.Assert(out, qt.HasSuffix, "Goodbye!\n")
	})

	c.Run("corrupt file stops before the menu starts", func(c *qt.C) {
		file := isolate(t)
		c.Assert(os.WriteFile(file, []byte("not json"), 0o600), qt.IsNil)
		out, err := runCmd(t, menuInput("6"), "--file", file)
		c.Assert(err, qt.ErrorMatches, `.*notes file is corrupt.*`)
		c.Assert(out, qt.Equals, "")
	})
}
