package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Sentinel errors shared by the repositories.
var (
	// ErrNotFound is returned when a requested row does not exist,
	// including a random draw from an empty nouns table.
	ErrNotFound = errors.New("not found")
	// ErrAttemptClosed is returned when trying to grade an attempt
	// that has already been answered or removed.
	ErrAttemptClosed = errors.New("attempt already closed")
)

// Connect establishes a connection to the database. Postgres is used
// when DATABASE_URL is set, otherwise a local SQLite file.
func Connect() error {
	var db *sqlx.DB
	var err error

	if url := os.Getenv("DATABASE_URL"); url != "" {
		db, err = sqlx.Connect("postgres", url)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
	} else {
		dbPath := os.Getenv("SQLITE_PATH")
		if dbPath == "" {
			dbPath = filepath.Join("data", "genderbot.db")
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}

		db, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}

		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db
	return initializeSchema(DB)
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(db *sqlx.DB) error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	_, err := db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS players (
			id %s,
			telegram_id BIGINT UNIQUE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, serial))
	if err != nil {
		return fmt.Errorf("failed to create players table: %v", err)
	}

	_, err = db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS nouns (
			id %s,
			english TEXT NOT NULL,
			spanish TEXT NOT NULL,
			gender TEXT NOT NULL,
			UNIQUE(spanish)
		)
	`, serial))
	if err != nil {
		return fmt.Errorf("failed to create nouns table: %v", err)
	}

	_, err = db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS attempts (
			id %s,
			player_id BIGINT NOT NULL,
			noun_id BIGINT NOT NULL,
			answer BOOLEAN,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (player_id) REFERENCES players(id),
			FOREIGN KEY (noun_id) REFERENCES nouns(id)
		)
	`, serial))
	if err != nil {
		return fmt.Errorf("failed to create attempts table: %v", err)
	}

	return nil
}
