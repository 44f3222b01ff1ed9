// Package store implements the NoteStore: an ordered, in-memory sequence of
// notes mirrored to a single JSON file that is rewritten on every mutation.
//
// Store is not safe for concurrent use. Two processes pointed at the same
// file do not coordinate; the last writer wins.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-ports/notekeeper/internal/models"
)

// filePerm is applied to the backing file when it is (re)written.
const filePerm = 0o600

// Store owns the note sequence and its backing file.
type Store struct {
	path   string
	notes  []models.Note
	now    func() time.Time
	atomic bool
}

// Option customises a Store at Open time.
type Option func(*Store)

// WithClock overrides the time source used for note timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithAtomicWrite makes Save write through a temp file and rename instead of
// truncating the backing file in place.
func WithAtomicWrite(enabled bool) Option {
	return func(s *Store) { s.atomic = enabled }
}

// Open loads the store from path. A missing file yields an empty store and
// is not created until the first mutation.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:  path,
		notes: make([]models.Note, 0),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Len returns the number of notes currently held.
func (s *Store) Len() int { return len(s.notes) }

// ---------------------------------------------------------------------------
// Persistence
// ---------------------------------------------------------------------------

// record mirrors models.Note with pointer fields so that missing keys can be
// told apart from zero values.
type record struct {
	ID        *int    `json:"note_id"`
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	Timestamp *string `json:"timestamp"`
}

func (r *record) note() (models.Note, bool) {
	if r.ID == nil || r.Title == nil || r.Body == nil || r.Timestamp == nil {
		return models.Note{}, false
	}
	return models.Note{ID: *r.ID, Title: *r.Title, Body: *r.Body, Timestamp: *r.Timestamp}, true
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("store: no notes file, starting empty", "path", s.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrIO, s.path, err)
	}

	notes, err := decode(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDataCorruption, s.path, err)
	}
	s.notes = notes
	slog.Debug("store: loaded notes", "path", s.path, "count", len(notes))
	return nil
}

// decode parses a JSON array of note records, rejecting anything that does
// not match the record shape exactly.
func decode(data []byte) ([]models.Note, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("expected a JSON array of notes")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var records []*record
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after notes array")
	}

	notes := make([]models.Note, 0, len(records))
	for i, r := range records {
		if r == nil {
			return nil, fmt.Errorf("record %d is null", i)
		}
		n, ok := r.note()
		if !ok {
			return nil, fmt.Errorf("record %d is missing a required field", i)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// Save serialises the whole sequence and overwrites the backing file.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.notes, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrIO, err)
	}
	data = append(data, '\n')

	if s.atomic {
		err = writeFileAtomic(s.path, data, filePerm)
	} else {
		err = os.WriteFile(s.path, data, filePerm)
	}
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, s.path, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Add appends a note with id = current count + 1 and persists it. When the
// write fails the note is dropped again so memory keeps matching the file.
func (s *Store) Add(title, body string) (models.Note, error) {
	n := models.Note{
		ID:        len(s.notes) + 1,
		Title:     title,
		Body:      body,
		Timestamp: models.FormatTimestamp(s.now()),
	}
	s.notes = append(s.notes, n)
	if err := s.Save(); err != nil {
		s.notes = s.notes[:len(s.notes)-1]
		return models.Note{}, err
	}
	slog.Debug("store: added note", "id", n.ID)
	return n, nil
}

// List returns a copy of the notes in insertion order.
func (s *Store) List() []models.Note {
	out := make([]models.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Get returns the first note with the given id.
func (s *Store) Get(id int) (models.Note, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Note{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s.notes[i], nil
}

// Edit replaces the title and body of the first note with the given id,
// refreshes its timestamp and persists. An unknown id changes nothing and
// writes nothing.
func (s *Store) Edit(id int, title, body string) (models.Note, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Note{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	prev := s.notes[i]
	s.notes[i].Title = title
	s.notes[i].Body = body
	s.notes[i].Timestamp = models.FormatTimestamp(s.now())
	if err := s.Save(); err != nil {
		s.notes[i] = prev
		return models.Note{}, err
	}
	slog.Debug("store: edited note", "id", id)
	return s.notes[i], nil
}

// Delete removes every note with the given id and persists, returning how
// many were removed. Deleting an unknown id is not an error.
func (s *Store) Delete(id int) (int, error) {
	prev := s.notes
	kept := make([]models.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.notes = kept
	if err := s.Save(); err != nil {
		s.notes = prev
		return 0, err
	}
	removed := len(prev) - len(kept)
	slog.Debug("store: deleted notes", "id", id, "removed", removed)
	return removed, nil
}

// FilterByDate returns the notes whose timestamp lies within [start, end],
// both given in models.TimestampLayout, preserving insertion order.
func (s *Store) FilterByDate(start, end string) ([]models.Note, error) {
	from, err := models.ParseTimestamp(start)
	if err != nil {
		return nil, fmt.Errorf("%w: start %q", ErrInvalidDateFormat, start)
	}
	to, err := models.ParseTimestamp(end)
	if err != nil {
		return nil, fmt.Errorf("%w: end %q", ErrInvalidDateFormat, end)
	}

	out := make([]models.Note, 0)
	for _, n := range s.notes {
		ok, err := n.InRange(from, to)
		if err != nil {
			return nil, fmt.Errorf("%w: note %d has timestamp %q", ErrDataCorruption, n.ID, n.Timestamp)
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *Store) indexOf(id int) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
