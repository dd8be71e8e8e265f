package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/genderbot/pkg/models"
	"github.com/jmoiron/sqlx"
)

// NounRepository handles database operations for nouns
type NounRepository struct {
	db *sqlx.DB
}

// NewNounRepository creates a new repository instance
func NewNounRepository() *NounRepository {
	return &NounRepository{db: DB}
}

// GetByID returns a noun by ID
func (r *NounRepository) GetByID(id int64) (*models.Noun, error) {
	var noun models.Noun
	query := r.db.Rebind("SELECT id, english, spanish, gender FROM nouns WHERE id = ?")
	err := r.db.Get(&noun, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("noun %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get noun by ID: %v", err)
	}
	return &noun, nil
}

// GetBySpanish returns the noun with the given Spanish text, or nil if
// it has not been imported.
func (r *NounRepository) GetBySpanish(spanish string) (*models.Noun, error) {
	var noun models.Noun
	query := r.db.Rebind("SELECT id, english, spanish, gender FROM nouns WHERE spanish = ?")
	err := r.db.Get(&noun, query, spanish)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get noun: %v", err)
	}
	return &noun, nil
}

// GetRandom draws one noun uniformly at random from the full set.
// Repeats of a recently asked noun are possible.
func (r *NounRepository) GetRandom() (*models.Noun, error) {
	var noun models.Noun
	err := r.db.Get(&noun, "SELECT id, english, spanish, gender FROM nouns ORDER BY RANDOM() LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no nouns in the database: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get random noun: %v", err)
	}
	return &noun, nil
}

// Create inserts a new noun
func (r *NounRepository) Create(noun *models.Noun) error {
	var query string
	if r.db.DriverName() == "postgres" {
		query = "INSERT INTO nouns (english, spanish, gender) VALUES ($1, $2, $3) RETURNING id"
		return r.db.QueryRow(query, noun.English, noun.Spanish, noun.Gender).Scan(&noun.ID)
	}

	query = "INSERT INTO nouns (english, spanish, gender) VALUES (?, ?, ?)"
	result, err := r.db.Exec(query, noun.English, noun.Spanish, noun.Gender)
	if err != nil {
		return fmt.Errorf("failed to create noun: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	noun.ID = id
	return nil
}

// Count returns the number of nouns available to the game
func (r *NounRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, "SELECT COUNT(*) FROM nouns")
	if err != nil {
		return 0, fmt.Errorf("failed to count nouns: %v", err)
	}
	return count, nil
}
