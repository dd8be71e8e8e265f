package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/genderbot/pkg/models"
	"github.com/jmoiron/sqlx"
)

// AttemptRepository handles database operations for attempts
type AttemptRepository struct {
	db *sqlx.DB
}

// NewAttemptRepository creates a new repository instance
func NewAttemptRepository() *AttemptRepository {
	return &AttemptRepository{db: DB}
}

// GetOpenForPlayer returns the player's most recent unanswered attempt,
// or nil if the player has no open question.
func (r *AttemptRepository) GetOpenForPlayer(playerID int64) (*models.Attempt, error) {
	var attempt models.Attempt
	query := r.db.Rebind(`
		SELECT id, player_id, noun_id, answer, created_at
		FROM attempts
		WHERE player_id = ? AND answer IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT 1`)
	err := r.db.Get(&attempt, query, playerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open attempt: %v", err)
	}
	return &attempt, nil
}

// Create inserts an open attempt for the given player and noun and
// returns its ID.
func (r *AttemptRepository) Create(playerID, nounID int64) (int64, error) {
	if r.db.DriverName() == "postgres" {
		var id int64
		err := r.db.QueryRow(
			"INSERT INTO attempts (player_id, noun_id) VALUES ($1, $2) RETURNING id",
			playerID, nounID,
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("failed to create attempt: %v", err)
		}
		return id, nil
	}

	result, err := r.db.Exec("INSERT INTO attempts (player_id, noun_id) VALUES (?, ?)", playerID, nounID)
	if err != nil {
		return 0, fmt.Errorf("failed to create attempt: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %v", err)
	}
	return id, nil
}

// Close records the grading outcome of an open attempt. The guard on
// answer IS NULL makes sure an answered attempt is never rewritten;
// hitting one returns ErrAttemptClosed.
func (r *AttemptRepository) Close(id int64, correct bool) error {
	query := r.db.Rebind("UPDATE attempts SET answer = ? WHERE id = ? AND answer IS NULL")
	result, err := r.db.Exec(query, correct, id)
	if err != nil {
		return fmt.Errorf("failed to close attempt: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %v", err)
	}
	if rows == 0 {
		return fmt.Errorf("attempt %d: %w", id, ErrAttemptClosed)
	}
	return nil
}

// Delete removes an attempt. Used only to discard an unanswered
// question on /start and /stop.
func (r *AttemptRepository) Delete(id int64) error {
	query := r.db.Rebind("DELETE FROM attempts WHERE id = ?")
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete attempt: %v", err)
	}
	return nil
}

// StalePlayers returns the players whose open attempt was created
// before the cutoff. Used by the reminder scheduler.
func (r *AttemptRepository) StalePlayers(cutoff time.Time) ([]models.Player, error) {
	var players []models.Player
	query := r.db.Rebind(`
		SELECT DISTINCT p.id, p.telegram_id, p.created_at
		FROM players p
		JOIN attempts a ON a.player_id = p.id
		WHERE a.answer IS NULL AND a.created_at < ?`)
	// CURRENT_TIMESTAMP is stored as UTC "2006-01-02 15:04:05" text in
	// SQLite; bind the cutoff in the same shape so both drivers compare
	// timestamps correctly.
	err := r.db.Select(&players, query, cutoff.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return nil, fmt.Errorf("failed to get stale players: %v", err)
	}
	return players, nil
}
