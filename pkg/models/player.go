package models

import "time"

// Player represents a Telegram user playing the game. Created on first
// contact and never deleted.
type Player struct {
	ID         int64     `json:"id" db:"id"`
	TelegramID int64     `json:"telegram_id" db:"telegram_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
