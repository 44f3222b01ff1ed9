// Package menu implements the interactive, line-oriented command loop.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-ports/notekeeper/internal/display"
	"github.com/go-ports/notekeeper/internal/models"
	"github.com/go-ports/notekeeper/internal/store"
)

// maxLine bounds a single line of input.
const maxLine = 1 << 20

// Notebook is the set of note operations the menu dispatches to.
type Notebook interface {
	Add(title, body string) (models.Note, error)
	List() []models.Note
	Edit(id int, title, body string) (models.Note, error)
	Delete(id int) (int, error)
	FilterByDate(start, end string) ([]models.Note, error)
}

// Menu reads choices from in and writes results and errors to out.
type Menu struct {
	nb  Notebook
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Menu over nb.
func New(nb Notebook, in io.Reader, out io.Writer) *Menu {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 4096), maxLine)
	return &Menu{nb: nb, in: sc, out: out}
}

// errEOF signals that input ended while a prompt was waiting.
var errEOF = errors.New("end of input")

// Run loops until the user picks Exit, input ends, or ctx is cancelled.
// Operation errors are printed and never end the loop.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printCommands()
		choice, err := m.prompt("Enter the command number: ")
		if errors.Is(err, errEOF) {
			m.goodbye()
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = m.add()
		case "2":
			m.view()
		case "3":
			err = m.edit()
		case "4":
			err = m.delete()
		case "5":
			err = m.filter()
		case "6":
			m.goodbye()
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid command. Please choose a valid option.")
		}

		if errors.Is(err, errEOF) {
			m.goodbye()
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) printCommands() {
	fmt.Fprint(m.out, "\nCommands:\n"+
		"1. Add Note\n"+
		"2. View Notes\n"+
		"3. Edit Note\n"+
		"4. Delete Note\n"+
		"5. Search\n"+
		"6. Exit\n")
}

func (m *Menu) goodbye() {
	fmt.Fprintln(m.out, "Exiting the Notes App. Goodbye!")
}

// prompt writes label and returns the next input line without its line
// ending. Returns errEOF when input is exhausted.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", fmt.Errorf("menu: read input: %w", err)
		}
		return "", errEOF
	}
	return strings.TrimRight(m.in.Text(), "\r"), nil
}

// promptID reads a note id. ok is false when the input is not an integer;
// the error has already been reported to the user in that case.
func (m *Menu) promptID(label string) (id int, ok bool, err error) {
	raw, err := m.prompt(label)
	if err != nil {
		return 0, false, err
	}
	id, convErr := strconv.Atoi(strings.TrimSpace(raw))
	if convErr != nil {
		fmt.Fprintf(m.out, "Invalid ID %q. Please enter a number.\n", raw)
		return 0, false, nil
	}
	return id, true, nil
}

// ---------------------------------------------------------------------------
// Choices
// ---------------------------------------------------------------------------

func (m *Menu) add() error {
	title, err := m.prompt("Enter note title: ")
	if err != nil {
		return err
	}
	body, err := m.prompt("Enter note body: ")
	if err != nil {
		return err
	}

	n, err := m.nb.Add(title, body)
	if err != nil {
		m.reportError(err)
		return nil
	}
	fmt.Fprintln(m.out, "Note added successfully:")
	display.Note(m.out, n)
	return nil
}

func (m *Menu) view() {
	display.Notes(m.out, m.nb.List(), "No notes available.")
}

func (m *Menu) edit() error {
	id, ok, err := m.promptID("Enter the ID of the note to edit: ")
	if err != nil || !ok {
		return err
	}
	title, err := m.prompt("Enter new title: ")
	if err != nil {
		return err
	}
	body, err := m.prompt("Enter new body: ")
	if err != nil {
		return err
	}

	n, err := m.nb.Edit(id, title, body)
	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintf(m.out, "Note with ID %d not found.\n", id)
		return nil
	}
	if err != nil {
		m.reportError(err)
		return nil
	}
	fmt.Fprintf(m.out, "Note %d edited successfully:\n", id)
	display.Note(m.out, n)
	return nil
}

func (m *Menu) delete() error {
	id, ok, err := m.promptID("Enter the ID of the note to delete: ")
	if err != nil || !ok {
		return err
	}

	// The success message is printed even when no note had this id.
	if _, err := m.nb.Delete(id); err != nil {
		m.reportError(err)
		return nil
	}
	fmt.Fprintf(m.out, "Note %d deleted successfully.\n", id)
	return nil
}

func (m *Menu) filter() error {
	start, err := m.prompt("Enter the start date (YYYY-MM-DD HH:MM:SS): ")
	if err != nil {
		return err
	}
	end, err := m.prompt("Enter the end date (YYYY-MM-DD HH:MM:SS): ")
	if err != nil {
		return err
	}

	notes, err := m.nb.FilterByDate(start, end)
	if errors.Is(err, store.ErrInvalidDateFormat) {
		fmt.Fprintln(m.out, "Invalid date format. Use YYYY-MM-DD HH:MM:SS.")
		return nil
	}
	if err != nil {
		m.reportError(err)
		return nil
	}
	display.Notes(m.out, notes, "No notes found within the specified date range.")
	return nil
}

func (m *Menu) reportError(err error) {
	fmt.Fprintf(m.out, "Error: %v\n", err)
}
