// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package userstore persists per-user reading preferences and activity
// counters in a SQLite database. Credentials and sessions are out of
// scope; accounts are keyed by username only.
package userstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/news-engine/pkg/types"
)

const (
	dbFile         = "news.db"
	defaultDataDir = "data"
)

// ErrUserExists is returned by Register when the username is taken.
var ErrUserExists = errors.New("user already exists")

// ErrUserNotFound is returned when the named user has no account.
var ErrUserNotFound = errors.New("user not found")

// Preferences are the per-user defaults applied to fetch and summarize
// operations when the user does not specify them explicitly.
type Preferences struct {
	DefaultCountry  string `json:"default_country" yaml:"default_country"`
	DefaultCategory string `json:"default_category" yaml:"default_category"`
	DefaultLanguage string `json:"default_language" yaml:"default_language"`
	SummaryStyle    string `json:"summary_style" yaml:"summary_style"`
}

// DefaultPreferences returns the preferences assigned to a new account.
func DefaultPreferences() Preferences {
	return Preferences{
		DefaultCountry:  "worldwide",
		DefaultCategory: "general",
		DefaultLanguage: "en",
		SummaryStyle:    "concise",
	}
}

// Stats summarizes one user's activity.
type Stats struct {
	SummariesGenerated  int       `json:"summaries_generated" yaml:"summaries_generated"`
	FactChecksPerformed int       `json:"fact_checks_performed" yaml:"fact_checks_performed"`
	MemberSince         time.Time `json:"member_since" yaml:"member_since"`
}

// Store manages the user SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the user database at dataDir/news.db,
// creating the schema if it does not exist.
func NewStore(cfg types.UserStoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY,
		email TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		default_country TEXT NOT NULL,
		default_category TEXT NOT NULL,
		default_language TEXT NOT NULL,
		summary_style TEXT NOT NULL,
		summaries_generated INTEGER NOT NULL DEFAULT 0,
		fact_checks_performed INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Register creates a new account with default preferences. It returns
// ErrUserExists when the username is taken.
func (s *Store) Register(username, email string) error {
	prefs := DefaultPreferences()
	_, err := s.db.Exec(`INSERT INTO users
		(username, email, created_at,
		 default_country, default_category, default_language, summary_style)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		username, email, time.Now().UTC().Format(time.RFC3339),
		prefs.DefaultCountry, prefs.DefaultCategory, prefs.DefaultLanguage, prefs.SummaryStyle)
	if err != nil {
		var exists int
		if lookupErr := s.db.QueryRow(
			`SELECT COUNT(*) FROM users WHERE username = ?`, username,
		).Scan(&exists); lookupErr == nil && exists > 0 {
			return fmt.Errorf("registering %q: %w", username, ErrUserExists)
		}
		return fmt.Errorf("registering %q: %w", username, err)
	}
	return nil
}

// Preferences returns the user's stored defaults.
func (s *Store) Preferences(username string) (Preferences, error) {
	var p Preferences
	err := s.db.QueryRow(
		`SELECT default_country, default_category, default_language, summary_style
		 FROM users WHERE username = ?`, username,
	).Scan(&p.DefaultCountry, &p.DefaultCategory, &p.DefaultLanguage, &p.SummaryStyle)
	if errors.Is(err, sql.ErrNoRows) {
		return Preferences{}, fmt.Errorf("loading preferences for %q: %w", username, ErrUserNotFound)
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("loading preferences for %q: %w", username, err)
	}
	return p, nil
}

// UpdatePreferences replaces the user's stored defaults.
func (s *Store) UpdatePreferences(username string, p Preferences) error {
	res, err := s.db.Exec(
		`UPDATE users SET default_country = ?, default_category = ?,
		 default_language = ?, summary_style = ? WHERE username = ?`,
		p.DefaultCountry, p.DefaultCategory, p.DefaultLanguage, p.SummaryStyle, username)
	if err != nil {
		return fmt.Errorf("updating preferences for %q: %w", username, err)
	}
	return s.requireRow(res, username)
}

// Stats returns the user's activity counters.
func (s *Store) Stats(username string) (Stats, error) {
	var st Stats
	var createdAt string
	err := s.db.QueryRow(
		`SELECT summaries_generated, fact_checks_performed, created_at
		 FROM users WHERE username = ?`, username,
	).Scan(&st.SummariesGenerated, &st.FactChecksPerformed, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Stats{}, fmt.Errorf("loading stats for %q: %w", username, ErrUserNotFound)
	}
	if err != nil {
		return Stats{}, fmt.Errorf("loading stats for %q: %w", username, err)
	}

	st.MemberSince, _ = time.Parse(time.RFC3339, createdAt)
	return st, nil
}

// RecordSummary bumps the summaries counter. The increment runs inside
// the database so concurrent processes never lose an update.
func (s *Store) RecordSummary(username string) error {
	return s.increment(username, "summaries_generated")
}

// RecordFactCheck bumps the verification counter.
func (s *Store) RecordFactCheck(username string) error {
	return s.increment(username, "fact_checks_performed")
}

func (s *Store) increment(username, column string) error {
	// column comes from the two callers above, never from user input.
	res, err := s.db.Exec(
		`UPDATE users SET `+column+` = `+column+` + 1 WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("incrementing %s for %q: %w", column, username, err)
	}
	return s.requireRow(res, username)
}

// Delete removes the account and everything stored about it.
func (s *Store) Delete(username string) error {
	res, err := s.db.Exec(`DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("deleting %q: %w", username, err)
	}
	return s.requireRow(res, username)
}

// Usernames lists all registered accounts, sorted.
func (s *Store) Usernames() ([]string, error) {
	rows, err := s.db.Query(`SELECT username FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) requireRow(res sql.Result, username string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", username, ErrUserNotFound)
	}
	return nil
}
