// Package index maintains a throwaway in-memory SQLite FTS4 index over a
// snapshot of notes. The JSON backing file stays the source of truth; the
// index is rebuilt from it whenever it is needed and never written to disk.
package index

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver with database/sql

	"github.com/go-ports/notekeeper/internal/models"
)

// Index wraps an in-memory *sql.DB holding the notes_fts table.
type Index struct {
	db *sql.DB
}

// Open creates an empty in-memory index.
func Open() (*Index, error) {
	sqldb, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("index.Open: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	sqldb.SetMaxOpenConns(1)

	idx := &Index{db: sqldb}
	if err := idx.createSchema(); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("index.Open createSchema: %w", err)
	}
	return idx, nil
}

// Close releases the database.
func (idx *Index) Close() error {
	return idx.db.Close()
}

func (idx *Index) createSchema() error {
	_, err := idx.db.Exec(`CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts4(title, body, tokenize=unicode61)`)
	return err
}

// Rebuild replaces the indexed content with notes. The rowid of each row is
// the note's 1-based position in notes, since ids are not guaranteed unique.
func (idx *Index) Rebuild(notes []models.Note) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return fmt.Errorf("Rebuild: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM notes_fts`); err != nil {
		return fmt.Errorf("Rebuild: clear: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO notes_fts (rowid, title, body) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("Rebuild: prepare: %w", err)
	}
	defer stmt.Close()

	for i, n := range notes {
		if _, err := stmt.Exec(i+1, n.Title, n.Body); err != nil {
			return fmt.Errorf("Rebuild: insert note %d: %w", n.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Rebuild: commit: %w", err)
	}
	return nil
}

// Search returns the 1-based positions of notes matching any term of query
// (prefix match, case-insensitive), in ascending position order. limit <= 0
// means no limit.
func (idx *Index) Search(query string, limit int) ([]int, error) {
	match := buildMatch(query)
	if match == "" {
		return nil, nil
	}

	q := `SELECT rowid FROM notes_fts WHERE notes_fts MATCH ? ORDER BY rowid`
	params := []any{match}
	if limit > 0 {
		q += ` LIMIT ?`
		params = append(params, limit)
	}

	rows, err := idx.db.Query(q, params...)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	defer rows.Close()

	var positions []int
	for rows.Next() {
		var pos int
		if err := rows.Scan(&pos); err != nil {
			return nil, fmt.Errorf("Search: scan: %w", err)
		}
		positions = append(positions, pos)
	}
	return positions, rows.Err()
}

// buildMatch turns free text into a `term1* OR term2*` FTS expression.
// Characters that FTS treats as syntax are dropped.
func buildMatch(query string) string {
	var terms []string
	for _, field := range strings.Fields(query) {
		term := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return unicode.ToLower(r)
			}
			return -1
		}, field)
		if term != "" {
			terms = append(terms, term+"*")
		}
	}
	return strings.Join(terms, " OR ")
}
