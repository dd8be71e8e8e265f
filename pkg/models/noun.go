package models

// Noun is one vocabulary entry. Reference data: seeded by the importer,
// never modified by the game.
type Noun struct {
	ID      int64  `json:"id" db:"id"`
	English string `json:"english" db:"english"`
	Spanish string `json:"spanish" db:"spanish"`
	Gender  Gender `json:"gender" db:"gender"`
}
