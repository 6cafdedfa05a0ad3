// Package store persists reading-list entries in a single SQLite file.
//
// A Store is opened once per invocation and must be closed before the
// process exits. Every mutating operation commits before it returns and
// is all-or-nothing: a failed operation leaves the store unchanged. An
// advisory file lock next to the database keeps overlapping invocations
// from corrupting the file.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/rlist/rlist/internal/entry"
)

// Store is a durable keyed collection of entries.
type Store struct {
	path string
	db   *sql.DB
	lock *flock.Flock
}

const schema = `
	CREATE TABLE IF NOT EXISTS entries (
		id          TEXT PRIMARY KEY,
		url         TEXT NOT NULL,
		title       TEXT NOT NULL,
		author      TEXT,
		topics_json TEXT NOT NULL,
		added       TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_author ON entries(author) WHERE author IS NOT NULL;
	CREATE INDEX IF NOT EXISTS idx_entries_added ON entries(added);
`

// Open opens or creates the store file at path, taking the advisory
// lock. The caller must Close the returned store.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, storageErr("creating store directory", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, storageErr("locking store", err)
	}
	if !locked {
		return nil, fmt.Errorf("store %s is in use by another process: %w", path, ErrStorage)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		lock.Unlock()
		return nil, storageErr("opening database", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		lock.Unlock()
		return nil, storageErr("creating schema", err)
	}

	return &Store{path: path, db: db, lock: lock}, nil
}

// Path returns the store file location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database handle and the advisory lock.
func (s *Store) Close() error {
	dbErr := s.db.Close()
	lockErr := s.lock.Unlock()
	if dbErr != nil {
		return storageErr("closing database", dbErr)
	}
	if lockErr != nil {
		return storageErr("unlocking store", lockErr)
	}
	return nil
}

// Create adds a new entry. Fails with ErrDuplicateIdentifier if the
// identifier is already used.
func (s *Store) Create(e entry.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("beginning transaction", err)
	}
	defer tx.Rollback()

	exists, err := idExists(tx, e.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("creating %q: %w", e.ID, ErrDuplicateIdentifier)
	}

	if err := insertEntry(tx, e); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageErr("committing create", err)
	}
	return nil
}

// Get returns the entry with the given identifier.
func (s *Store) Get(id string) (entry.Entry, error) {
	row := s.db.QueryRow(
		`SELECT id, url, title, author, topics_json, added FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entry.Entry{}, fmt.Errorf("entry %q: %w", id, ErrNotFound)
	}
	return e, err
}

// Update applies a partial field change to an existing entry. The added
// date and identifier are never touched; identifiers change only via
// Rename.
func (s *Store) Update(id string, p entry.Patch) (entry.Entry, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return entry.Entry{}, storageErr("beginning transaction", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(
		`SELECT id, url, title, author, topics_json, added FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entry.Entry{}, fmt.Errorf("entry %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return entry.Entry{}, err
	}

	e.URL = p.URL.Apply(e.URL)
	e.Title = p.Title.Apply(e.Title)
	e.Author = p.Author.Apply(e.Author)
	e.Topics = p.ApplyTopics(e.Topics)

	if err := e.Validate(); err != nil {
		return entry.Entry{}, fmt.Errorf("patch produces invalid entry: %w", err)
	}

	topicsJSON, err := marshalTopics(e.Topics)
	if err != nil {
		return entry.Entry{}, err
	}
	_, err = tx.Exec(
		`UPDATE entries SET url = ?, title = ?, author = ?, topics_json = ? WHERE id = ?`,
		e.URL, e.Title, nullableString(e.Author), topicsJSON, id)
	if err != nil {
		return entry.Entry{}, storageErr("updating entry", err)
	}

	if err := tx.Commit(); err != nil {
		return entry.Entry{}, storageErr("committing update", err)
	}
	return e, nil
}

// Rename atomically changes an entry's identifier, preserving all other
// fields. Renaming an entry to its own identifier is a no-op success.
func (s *Store) Rename(oldID, newID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("beginning transaction", err)
	}
	defer tx.Rollback()

	exists, err := idExists(tx, oldID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("entry %q: %w", oldID, ErrNotFound)
	}

	if oldID == newID {
		return nil
	}

	taken, err := idExists(tx, newID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("renaming %q to %q: %w", oldID, newID, ErrDuplicateIdentifier)
	}

	if _, err := tx.Exec(`UPDATE entries SET id = ? WHERE id = ?`, newID, oldID); err != nil {
		return storageErr("renaming entry", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("committing rename", err)
	}
	return nil
}

// Delete removes the entry with the given identifier.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return storageErr("deleting entry", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("deleting entry", err)
	}
	if n == 0 {
		return fmt.Errorf("entry %q: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteByTopics removes every entry whose topic set intersects topics
// and returns the removed entries. Zero matches is not an error.
func (s *Store) DeleteByTopics(topics []string) ([]entry.Entry, error) {
	topics = entry.NormalizeTopics(topics)
	if len(topics) == 0 {
		return nil, nil
	}

	all, err := s.ListAll()
	if err != nil {
		return nil, err
	}

	var doomed []entry.Entry
	for _, e := range all {
		if e.HasAnyTopic(topics) {
			doomed = append(doomed, e)
		}
	}
	if len(doomed) == 0 {
		return nil, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, storageErr("beginning transaction", err)
	}
	defer tx.Rollback()

	for _, e := range doomed {
		if _, err := tx.Exec(`DELETE FROM entries WHERE id = ?`, e.ID); err != nil {
			return nil, storageErr("deleting entry", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr("committing delete", err)
	}
	return doomed, nil
}

// ListAll returns every entry in stable identifier order. The returned
// slice is a snapshot, not a live view.
func (s *Store) ListAll() ([]entry.Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, url, title, author, topics_json, added FROM entries ORDER BY id`)
	if err != nil {
		return nil, storageErr("listing entries", err)
	}
	defer rows.Close()

	var entries []entry.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("listing entries", err)
	}
	return entries, nil
}

// Count returns the number of entries in the store.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, storageErr("counting entries", err)
	}
	return n, nil
}

// ImportAll applies a batch of entries in a single transaction. With
// overwrite false the first colliding identifier aborts the whole batch
// with ErrDuplicateIdentifier; with overwrite true existing entries are
// replaced. Either every entry lands or none does.
func (s *Store) ImportAll(entries []entry.Entry, overwrite bool) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("beginning transaction", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		exists, err := idExists(tx, e.ID)
		if err != nil {
			return err
		}
		if exists {
			if !overwrite {
				return fmt.Errorf("importing %q: %w", e.ID, ErrDuplicateIdentifier)
			}
			if _, err := tx.Exec(`DELETE FROM entries WHERE id = ?`, e.ID); err != nil {
				return storageErr("replacing entry", err)
			}
		}
		if err := insertEntry(tx, e); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("committing import", err)
	}
	return nil
}

// execer is satisfied by *sql.Tx and *sql.DB.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

func idExists(q execer, id string) (bool, error) {
	var one int
	err := q.QueryRow(`SELECT 1 FROM entries WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, storageErr("checking identifier", err)
	}
	return true, nil
}

func insertEntry(q execer, e entry.Entry) error {
	topicsJSON, err := marshalTopics(e.Topics)
	if err != nil {
		return err
	}
	_, err = q.Exec(
		`INSERT INTO entries (id, url, title, author, topics_json, added) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.URL, e.Title, nullableString(e.Author), topicsJSON, e.Added.String())
	if err != nil {
		return storageErr("inserting entry", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (entry.Entry, error) {
	var (
		e          entry.Entry
		author     sql.NullString
		topicsJSON string
		added      string
	)
	if err := row.Scan(&e.ID, &e.URL, &e.Title, &author, &topicsJSON, &added); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entry.Entry{}, err
		}
		return entry.Entry{}, storageErr("scanning entry", err)
	}
	e.Author = author.String

	if err := json.Unmarshal([]byte(topicsJSON), &e.Topics); err != nil {
		return entry.Entry{}, storageErr(fmt.Sprintf("parsing topics for %q", e.ID), err)
	}

	date, err := entry.ParseDate(added)
	if err != nil {
		return entry.Entry{}, storageErr(fmt.Sprintf("parsing date for %q", e.ID), err)
	}
	e.Added = date

	return e, nil
}

func marshalTopics(topics []string) (string, error) {
	if len(topics) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(topics)
	if err != nil {
		return "", storageErr("encoding topics", err)
	}
	return string(data), nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
