package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/genderbot/pkg/models"
	"github.com/jmoiron/sqlx"
)

// PlayerRepository handles database operations for players
type PlayerRepository struct {
	db *sqlx.DB
}

// NewPlayerRepository creates a new repository instance
func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{db: DB}
}

// GetByTelegramID returns the player with the given Telegram user ID,
// or nil if no such player exists yet.
func (r *PlayerRepository) GetByTelegramID(telegramID int64) (*models.Player, error) {
	var player models.Player
	query := r.db.Rebind("SELECT id, telegram_id, created_at FROM players WHERE telegram_id = ?")
	err := r.db.Get(&player, query, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %v", err)
	}
	return &player, nil
}

// Create inserts a player row for the given Telegram user ID. Inserting
// an already known ID is a no-op, so the call is safe to retry.
func (r *PlayerRepository) Create(telegramID int64) error {
	var query string
	if r.db.DriverName() == "postgres" {
		query = "INSERT INTO players (telegram_id) VALUES ($1) ON CONFLICT (telegram_id) DO NOTHING"
	} else {
		query = "INSERT OR IGNORE INTO players (telegram_id) VALUES (?)"
	}
	if _, err := r.db.Exec(query, telegramID); err != nil {
		return fmt.Errorf("failed to create player: %v", err)
	}
	return nil
}

// GetOrCreate bootstraps the player on first contact and returns the
// stored row either way.
func (r *PlayerRepository) GetOrCreate(telegramID int64) (*models.Player, error) {
	player, err := r.GetByTelegramID(telegramID)
	if err != nil || player != nil {
		return player, err
	}
	if err := r.Create(telegramID); err != nil {
		return nil, err
	}
	player, err = r.GetByTelegramID(telegramID)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, fmt.Errorf("player %d missing after insert", telegramID)
	}
	return player, nil
}
