// Package service implements the notes Service orchestrator that wires
// together configuration, the note store, the search index and export.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-ports/notekeeper/internal/config"
	"github.com/go-ports/notekeeper/internal/index"
	"github.com/go-ports/notekeeper/internal/markdown"
	"github.com/go-ports/notekeeper/internal/models"
	"github.com/go-ports/notekeeper/internal/store"
)

// Service is the single entry point used by the menu, the CLI commands and
// the MCP server. It is not safe for concurrent use.
type Service struct {
	NotesFile string
	Source    string // how NotesFile was resolved: flag, env, config, default
	Config    *config.NotesConfig

	store *store.Store
	idx   *index.Index
	stale bool
	now   func() time.Time
}

// New initialises a Service backed by notesFile. When notesFile is empty it
// is resolved through config.ResolveNotesFile.
func New(notesFile string, opts ...store.Option) (*Service, error) {
	cfgPath, err := config.Path()
	if err != nil {
		return nil, fmt.Errorf("service.New: config path: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("service.New: load config: %w", err)
	}
	return NewWithConfig(notesFile, cfg, opts...)
}

// NewWithConfig is New with an already loaded configuration.
func NewWithConfig(notesFile string, cfg *config.NotesConfig, opts ...store.Option) (*Service, error) {
	path, source := config.ResolveNotesFile(notesFile, cfg)

	opts = append([]store.Option{store.WithAtomicWrite(cfg.Storage.AtomicWrite)}, opts...)
	st, err := store.Open(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("service.New: open store: %w", err)
	}
	slog.Debug("service: opened notes", "file", path, "source", source, "count", st.Len())

	return &Service{
		NotesFile: path,
		Source:    source,
		Config:    cfg,
		store:     st,
		stale:     true,
		now:       time.Now,
	}, nil
}

// Close releases the search index if one was built.
func (s *Service) Close() error {
	if s.idx == nil {
		return nil
	}
	err := s.idx.Close()
	s.idx = nil
	return err
}

// Init writes an empty notes file, creating parent directories, when none
// exists yet. Reports whether a file was created.
func (s *Service) Init() (bool, error) {
	if _, err := os.Stat(s.NotesFile); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("Init: %w: %w", store.ErrIO, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.NotesFile), 0o755); err != nil {
		return false, fmt.Errorf("Init: %w: %w", store.ErrIO, err)
	}
	if err := s.store.Save(); err != nil {
		return false, fmt.Errorf("Init: %w", err)
	}
	return true, nil
}

// ---------------------------------------------------------------------------
// Store operations
// ---------------------------------------------------------------------------

// Add creates a note.
func (s *Service) Add(title, body string) (models.Note, error) {
	n, err := s.store.Add(title, body)
	if err != nil {
		return models.Note{}, fmt.Errorf("Add: %w", err)
	}
	s.stale = true
	return n, nil
}

// List returns all notes in insertion order.
func (s *Service) List() []models.Note {
	return s.store.List()
}

// Get returns the note with the given id.
func (s *Service) Get(id int) (models.Note, error) {
	n, err := s.store.Get(id)
	if err != nil {
		return models.Note{}, fmt.Errorf("Get: %w", err)
	}
	return n, nil
}

// Edit replaces a note's title and body.
func (s *Service) Edit(id int, title, body string) (models.Note, error) {
	n, err := s.store.Edit(id, title, body)
	if err != nil {
		return models.Note{}, fmt.Errorf("Edit: %w", err)
	}
	s.stale = true
	return n, nil
}

// Delete removes every note with the given id and reports how many were
// removed. An unknown id removes nothing and is not an error.
func (s *Service) Delete(id int) (int, error) {
	removed, err := s.store.Delete(id)
	if err != nil {
		return 0, fmt.Errorf("Delete: %w", err)
	}
	if removed > 0 {
		s.stale = true
	}
	return removed, nil
}

// FilterByDate returns notes with start <= timestamp <= end.
func (s *Service) FilterByDate(start, end string) ([]models.Note, error) {
	notes, err := s.store.FilterByDate(start, end)
	if err != nil {
		return nil, fmt.Errorf("FilterByDate: %w", err)
	}
	return notes, nil
}

// ---------------------------------------------------------------------------
// Search
// ---------------------------------------------------------------------------

// Search runs a keyword search over titles and bodies and returns matching
// notes in insertion order. limit <= 0 means no limit.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]models.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	notes := s.store.List()
	idx, err := s.searchIndex(notes)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}

	positions, err := idx.Search(query, limit)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}

	out := make([]models.Note, 0, len(positions))
	for _, pos := range positions {
		if pos < 1 || pos > len(notes) {
			slog.Warn("Search: index position out of range", "pos", pos, "notes", len(notes))
			continue
		}
		out = append(out, notes[pos-1])
	}
	return out, nil
}

// searchIndex returns the index, opening it on first use and rebuilding it
// from notes when a mutation happened since the last build.
func (s *Service) searchIndex(notes []models.Note) (*index.Index, error) {
	if s.idx == nil {
		idx, err := index.Open()
		if err != nil {
			return nil, err
		}
		s.idx = idx
		s.stale = true
	}
	if s.stale {
		if err := s.idx.Rebuild(notes); err != nil {
			return nil, err
		}
		s.stale = false
		slog.Debug("service: rebuilt search index", "count", len(notes))
	}
	return s.idx, nil
}

// ---------------------------------------------------------------------------
// Export
// ---------------------------------------------------------------------------

// Export writes all notes as a Markdown document to w.
func (s *Service) Export(w io.Writer) error {
	if err := markdown.Write(w, s.store.List(), s.NotesFile, s.now()); err != nil {
		return fmt.Errorf("Export: %w", err)
	}
	return nil
}
